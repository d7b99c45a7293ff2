package source

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// SheetsSource reads the table through the Sheets API with a service account.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	logger        *slog.Logger
}

// NewSheetsSource creates the Sheets client. opts usually carry the service
// account credentials.
func NewSheetsSource(ctx context.Context, spreadsheetID, readRange string, logger *slog.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        infrastructure.WithComponent(logger, "sheets_source"),
	}, nil
}

func (s *SheetsSource) Key() string {
	return KindSheets + ":" + s.spreadsheetID + "!" + s.readRange
}

func (s *SheetsSource) Kind() string { return KindSheets }

// Load reads the configured range. Its first row is the header.
func (s *SheetsSource) Load(ctx context.Context) (*survey.Table, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, s.fail(apierrors.NewNetworkError("failed to read from sheets", err))
	}
	if len(resp.Values) == 0 {
		return nil, s.fail(apierrors.NewParsingError("range is empty", survey.ErrEmptyTable))
	}

	header := cells(resp.Values[0])
	records := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		records = append(records, cells(row))
	}

	table, err := survey.NewTable(header, records)
	if err != nil {
		return nil, s.fail(apierrors.NewParsingError("invalid sheet", err))
	}

	s.logger.DebugContext(ctx, "sheet range read",
		slog.String("spreadsheet_id", s.spreadsheetID),
		slog.String("range", resp.Range),
		slog.Int("rows", table.Len()))

	return table, nil
}

func (s *SheetsSource) fail(err error) error {
	return &FetchError{Kind: KindSheets, Location: s.spreadsheetID, Err: err}
}

func cells(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			out[i] = str
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
