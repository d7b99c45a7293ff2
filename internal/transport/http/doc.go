// Package http implements the HTTP handlers of the participant dashboard.
//
// Handlers stay thin: they parse the request, call the dashboard service and
// render the result. Three surfaces share the same pipeline:
//
//	GET /tablero?taller=N|todos            server-rendered dashboard
//	GET /api/dashboard/{workshop}          JSON dashboard
//	GET /api/dashboard/{workshop}/export.xlsx
//	GET /api/dashboard/{workshop}/undecided.csv
//
// API errors follow RFC 7807 problem details. HTML errors render the error
// page, except a missing workshop column, which keeps the dashboard layout
// and lists the candidate columns.
package http
