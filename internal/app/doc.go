// Package app wires the participant dashboard together and runs it.
//
// New builds every component from a loaded configuration: logger and
// OpenTelemetry providers, the survey source and its cache, the dashboard
// and health services, the access gate and the chi router. Run starts the
// HTTP server and shuts it down gracefully on SIGINT or SIGTERM.
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return app.Run()
package app
