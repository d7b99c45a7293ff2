package source

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// ParseCSV reads a response table from CSV. The first record is the header.
func ParseCSV(r io.Reader) (*survey.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, survey.ErrEmptyTable
	}
	if err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return survey.NewTable(header, records)
}
