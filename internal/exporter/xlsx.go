package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetSummary     = "Resumen"
	SheetAttendance  = "Asistencia"
	SheetUndecided   = "Por confirmar"
	SheetChildcare   = "Infancias"
	SheetKnowledge   = "Conocimiento"
	SheetRecycling   = "Reciclaje"
	SheetMotivations = "Motivaciones"
)

// WorkbookWriter renders a dashboard as an XLSX workbook, one sheet per section
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

type workbook struct {
	f      *excelize.File
	header int
}

// Write streams the workbook for d to w
func (ww *WorkbookWriter) Write(w io.Writer, d *domain.Dashboard) error {
	f, err := ww.build(d)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook for d to path
func (ww *WorkbookWriter) SaveAs(path string, d *domain.Dashboard) error {
	f, err := ww.build(d)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	ww.logger.Info("Workbook saved",
		slog.String("path", path),
		slog.String("selection", d.Selection.Label))
	return nil
}

// Sheets lists the sheets a workbook for d contains, in order
func Sheets(d *domain.Dashboard) []string {
	sheets := []string{SheetSummary}
	if d.Attendance != nil {
		sheets = append(sheets, SheetAttendance, SheetUndecided)
	}
	sheets = append(sheets, SheetChildcare)
	if d.Knowledge.HasStats() {
		sheets = append(sheets, SheetKnowledge)
	}
	if d.Recycling.HasStats() {
		sheets = append(sheets, SheetRecycling)
	}
	return append(sheets, SheetMotivations)
}

func (ww *WorkbookWriter) build(d *domain.Dashboard) (*excelize.File, error) {
	if d == nil {
		return nil, fmt.Errorf("no dashboard to export")
	}

	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wb := &workbook{f: f, header: header}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	steps := []func(*domain.Dashboard) error{
		wb.summary,
		wb.attendance,
		wb.childcare,
		func(d *domain.Dashboard) error { return wb.knowledge(SheetKnowledge, d.Knowledge) },
		func(d *domain.Dashboard) error { return wb.knowledge(SheetRecycling, d.Recycling) },
		wb.motivations,
	}
	for _, step := range steps {
		if err := step(d); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// table writes headers and rows starting at row start, returning the next free row
func (wb *workbook) table(sheet string, start int, headers []string, rows [][]interface{}) (int, error) {
	if len(headers) > 0 {
		cell, err := excelize.CoordinatesToCellName(1, start)
		if err != nil {
			return 0, err
		}
		values := make([]interface{}, len(headers))
		for i, h := range headers {
			values[i] = h
		}
		if err := wb.f.SetSheetRow(sheet, cell, &values); err != nil {
			return 0, err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), start)
		if err := wb.f.SetCellStyle(sheet, cell, last, wb.header); err != nil {
			return 0, err
		}
		start++
	}

	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, start)
		if err != nil {
			return 0, err
		}
		row := row
		if err := wb.f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, err
		}
		start++
	}
	return start, nil
}

func (wb *workbook) sheet(name string, widths ...float64) error {
	if _, err := wb.f.NewSheet(name); err != nil {
		return err
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetColWidth(name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) summary(d *domain.Dashboard) error {
	if err := wb.f.SetColWidth(SheetSummary, "A", "A", 32); err != nil {
		return err
	}
	if err := wb.f.SetColWidth(SheetSummary, "B", "B", 60); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Selección", d.Selection.Label},
		{"Columna", d.Selection.Column},
		{"Respuestas totales", d.TotalRows},
		{"Respuestas filtradas", d.FilteredRows},
		{"Generado", d.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if d.Workshop != nil {
		rows = append(rows,
			[]interface{}{"Taller", d.Workshop.Heading},
			[]interface{}{"Horario", d.Workshop.Schedule})
	}
	if d.Attendance != nil {
		rows = append(rows,
			[]interface{}{"Asistentes confirmados", d.Attendance.AttendeesTotal},
			[]interface{}{"Por confirmar", d.Attendance.NotSure})
	}
	for _, missing := range d.MissingColumns {
		rows = append(rows, []interface{}{"Columna faltante", missing})
	}

	_, err := wb.table(SheetSummary, 1, []string{"Indicador", "Valor"}, rows)
	return err
}

func (wb *workbook) attendance(d *domain.Dashboard) error {
	a := d.Attendance
	if a == nil {
		return nil
	}

	if err := wb.sheet(SheetAttendance, 30, 12, 12); err != nil {
		return err
	}
	if _, err := wb.table(SheetAttendance, 1, []string{"Respuesta", "Personas", "%"}, categoryRows(a.Categories)); err != nil {
		return err
	}

	if err := wb.sheet(SheetUndecided, 8, 30, 18, 32, 20); err != nil {
		return err
	}
	_, err := wb.table(SheetUndecided, 1, UndecidedHeaders, interfaceRows(UndecidedRecords(a.Undecided)))
	return err
}

func (wb *workbook) childcare(d *domain.Dashboard) error {
	if err := wb.sheet(SheetChildcare, 30, 30, 40); err != nil {
		return err
	}
	next, err := wb.table(SheetChildcare, 1, []string{"Categoría", "Personas", "%"}, categoryRows(d.Childcare.Categories))
	if err != nil {
		return err
	}
	_, err = wb.table(SheetChildcare, next+1, ChildrenHeaders, interfaceRows(ChildrenRecords(d.Childcare.Children)))
	return err
}

func (wb *workbook) knowledge(sheet string, k domain.KnowledgeBreakdown) error {
	if !k.HasStats() {
		return nil
	}
	if err := wb.sheet(sheet, 24, 30, 16, 20, 10); err != nil {
		return err
	}

	next, err := wb.table(sheet, 1, []string{"Tema", "Promedio", "Respuestas válidas"}, [][]interface{}{
		{k.Topic, k.Mean, k.Count},
	})
	if err != nil {
		return err
	}

	levels := make([][]interface{}, 0, len(k.Distribution))
	for _, l := range k.Distribution {
		levels = append(levels, []interface{}{l.Level, l.Count, l.Percentage})
	}
	if next, err = wb.table(sheet, next+1, []string{"Nivel", "Personas", "%"}, levels); err != nil {
		return err
	}

	respondents := func(label string, list []domain.KnowledgeRespondent) [][]interface{} {
		rows := make([][]interface{}, 0, len(list))
		for _, r := range list {
			rows = append(rows, []interface{}{label, r.Name, r.Gender, r.Territory, r.Level})
		}
		return rows
	}
	rows := append(respondents("Alto (≥4)", k.High), respondents("Bajo (≤2)", k.Low)...)
	_, err = wb.table(sheet, next+1, []string{"Grupo", "Participante", "Género", "Territorio", "Nivel"}, rows)
	return err
}

func (wb *workbook) motivations(d *domain.Dashboard) error {
	if err := wb.sheet(SheetMotivations, 8, 30, 90); err != nil {
		return err
	}
	_, err := wb.table(SheetMotivations, 1, MotivationHeaders, interfaceRows(MotivationRecords(d.Motivations)))
	return err
}

func categoryRows(categories []domain.CategoryCount) [][]interface{} {
	rows := make([][]interface{}, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []interface{}{c.Category, c.Count, c.Percentage})
	}
	return rows
}

func interfaceRows(records [][]string) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows
}
