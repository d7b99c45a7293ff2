package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// FileSource reads a downloaded copy of the responses, as .csv or as the
// first sheet of an .xlsx workbook.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource validates the extension of path.
func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	if path == "" {
		return nil, apierrors.NewConfigError("file source requires a path", nil)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
	default:
		return nil, apierrors.NewConfigError(fmt.Sprintf("unsupported file type %q", filepath.Ext(path)), nil)
	}
	return &FileSource{path: path, logger: infrastructure.WithComponent(logger, "file_source")}, nil
}

func (s *FileSource) Key() string  { return KindFile + ":" + s.path }
func (s *FileSource) Kind() string { return KindFile }

// Load reads the file.
func (s *FileSource) Load(ctx context.Context) (*survey.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		table *survey.Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(s.path), ".xlsx") {
		table, err = s.loadXLSX()
	} else {
		table, err = s.loadCSV()
	}
	if err != nil {
		return nil, &FetchError{Kind: KindFile, Location: s.path, Err: err}
	}

	s.logger.DebugContext(ctx, "file read",
		slog.String("path", s.path),
		slog.Int("rows", table.Len()))
	return table, nil
}

func (s *FileSource) loadCSV() (*survey.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apierrors.NewAppError(apierrors.ErrTypeNotFound, "failed to open file", err)
	}
	defer f.Close()

	table, err := ParseCSV(f)
	if err != nil {
		return nil, apierrors.NewParsingError("invalid csv", err)
	}
	return table, nil
}

func (s *FileSource) loadXLSX() (*survey.Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, apierrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheetsList := f.GetSheetList()
	if len(sheetsList) == 0 {
		return nil, apierrors.NewParsingError("workbook has no sheets", survey.ErrEmptyTable)
	}

	rows, err := f.GetRows(sheetsList[0])
	if err != nil {
		return nil, apierrors.NewParsingError("failed to read sheet", err)
	}
	if len(rows) == 0 {
		return nil, apierrors.NewParsingError("sheet is empty", survey.ErrEmptyTable)
	}

	table, err := survey.NewTable(rows[0], rows[1:])
	if err != nil {
		return nil, apierrors.NewParsingError("invalid sheet", err)
	}
	return table, nil
}
