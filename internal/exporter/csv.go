package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 output
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Worklist column headers
var (
	UndecidedHeaders  = []string{"Fila", "Participante", "Contacto", "Correo", "Territorio"}
	ChildrenHeaders   = []string{"Fila", "Participante", "Nombre y edad de niños/as"}
	MotivationHeaders = []string{"Fila", "Participante", "Comentario"}
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// CSVWriter writes worklists for follow-up outreach
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// Write streams the records to w
func (cw *CSVWriter) Write(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the records to filePath, creating parent directories
func (cw *CSVWriter) WriteFile(filePath string, options WriteOptions) error {
	cw.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := cw.Write(file, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteUndecided writes the "not sure yet" worklist of an attendance breakdown
func (cw *CSVWriter) WriteUndecided(w io.Writer, contacts []domain.Contact) error {
	return cw.Write(w, WriteOptions{
		Headers:   UndecidedHeaders,
		Records:   UndecidedRecords(contacts),
		BOMPrefix: true,
	})
}

// UndecidedRecords flattens contacts in row order
func UndecidedRecords(contacts []domain.Contact) [][]string {
	records := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, []string{fmt.Sprint(c.Row), c.Name, c.Phone, c.Email, c.Territory})
	}
	return records
}

// ChildrenRecords flattens the childcare detail list
func ChildrenRecords(children []domain.ChildrenDetail) [][]string {
	records := make([][]string, 0, len(children))
	for _, c := range children {
		records = append(records, []string{fmt.Sprint(c.Row), c.Name, c.Children})
	}
	return records
}

// MotivationRecords flattens the motivations listing
func MotivationRecords(motivations []domain.Motivation) [][]string {
	records := make([][]string, 0, len(motivations))
	for _, m := range motivations {
		records = append(records, []string{fmt.Sprint(m.Row), m.Name, m.Comment})
	}
	return records
}
