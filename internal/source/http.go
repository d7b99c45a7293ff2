package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// HTTPSource downloads the table as CSV, typically the export link of the
// response sheet.
type HTTPSource struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSource creates a source that GETs url. A nil client uses
// http.DefaultClient.
func NewHTTPSource(url string, client *http.Client, logger *slog.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		url:    url,
		client: client,
		logger: infrastructure.WithComponent(logger, "http_source"),
	}
}

func (s *HTTPSource) Key() string  { return KindCSV + ":" + s.url }
func (s *HTTPSource) Kind() string { return KindCSV }

// URL returns the download location.
func (s *HTTPSource) URL() string { return s.url }

// Load fetches and parses the CSV. Any non-2xx status is a failure.
func (s *HTTPSource) Load(ctx context.Context) (*survey.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, s.fail(apierrors.NewConfigError("invalid source url", err))
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.fail(apierrors.NewNetworkError("request failed", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.fail(apierrors.NewNetworkError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).
			WithContext("status", resp.StatusCode))
	}

	table, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, s.fail(apierrors.NewParsingError("invalid csv", err))
	}

	s.logger.DebugContext(ctx, "csv downloaded",
		slog.String("url", s.url),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

func (s *HTTPSource) fail(err error) error {
	return &FetchError{Kind: KindCSV, Location: s.url, Err: err}
}
