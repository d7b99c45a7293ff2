// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the survey pipeline so that handlers
// never touch sources or tables directly.
//
// # Available Services
//
//   - DashboardService: runs one pipeline (load, resolve, filter, aggregate)
//     per request over the memoized response table
//   - HealthService: liveness, readiness and version reporting
//
// # Error Handling
//
// Services return the survey and source sentinels unchanged. AsAPIError maps
// them onto the API errors rendered as problem details:
//
//	dashboard, err := svc.Build(ctx, 3)
//	if err != nil {
//	    errorHandler.HandleError(w, r, services.AsAPIError(err, "3"))
//	    return
//	}
//
// # Testing
//
// Services are tested by mocking their loaders:
//
//	loader := new(services.MockTableLoader)
//	loader.On("Load", mock.Anything, mock.Anything).Return(table, nil)
//	svc := services.NewDashboardService(src, loader, nil, nil, logger)
package services
