// Package survey holds the domain core of the participant dashboard: the
// response table as loaded from the registration form, the column resolver
// that finds each workshop's attendance question, the typed schema mapping
// built once per table, the filter engine and the aggregations rendered by
// the presentation layer.
//
// Every user interaction is one independent Run over an immutable Table:
//
//	run, err := survey.NewRun(table, survey.Selection{Workshop: 4})
//	if err != nil {
//		// *ColumnNotFoundError carries the candidate columns
//	}
//	dashboard := run.Dashboard()
//
// Nothing in this package performs I/O or keeps process-wide state; loading
// and caching the table is the job of the source package.
package survey
