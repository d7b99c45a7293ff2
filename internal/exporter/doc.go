// Package exporter writes dashboard results in formats organizers open
// outside the browser.
//
// CSVWriter writes worklists (undecided contacts, children, motivations) with a
// UTF-8 BOM for Excel compatibility. WorkbookWriter renders a whole dashboard
// as an XLSX workbook with one sheet per section.
//
// Example usage:
//
//	dashboard, err := svc.Build(ctx, 1)
//	if err != nil {
//	    return err
//	}
//	err = exporter.NewWorkbookWriter(logger).SaveAs("taller-1.xlsx", dashboard)
package exporter
