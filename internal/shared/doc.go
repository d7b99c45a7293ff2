// Package shared groups helpers used by more than one package of the
// dashboard. Today that is only testutil, which provides a buffered slog
// handler for asserting on log output and a five-row fixture of the
// registration form responses.
package shared
