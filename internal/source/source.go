// Package source loads the survey response table from where the registration
// form stores it: the CSV export of a shared Google Sheet, the Sheets API, or
// a local CSV/XLSX file. Cache memoizes loaded tables for the process
// lifetime.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"google.golang.org/api/option"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// Source kinds
const (
	KindCSV    = "csv"
	KindSheets = "sheets"
	KindFile   = "file"
)

// ErrSourceUnavailable is returned, wrapped in a *FetchError, whenever the
// table cannot be fetched or parsed.
var ErrSourceUnavailable = errors.New("survey source unavailable")

// Source loads the response table.
type Source interface {
	Load(ctx context.Context) (*survey.Table, error)
	// Key identifies the table for caching
	Key() string
	Kind() string
}

// FetchError describes a failed load.
type FetchError struct {
	Kind     string
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load %s source %s: %v", e.Kind, e.Location, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// New builds the source described by cfg.
func New(ctx context.Context, cfg config.SourceConfig, logger *slog.Logger) (Source, error) {
	switch cfg.Kind {
	case KindCSV, "":
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return NewHTTPSource(ExportURL(cfg.SheetURL), client, logger), nil

	case KindSheets:
		id, err := SpreadsheetID(cfg.SheetURL)
		if err != nil {
			return nil, err
		}
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			credentials, err := os.ReadFile(cfg.CredentialsFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read sheets credentials: %w", err)
			}
			opts = append(opts, option.WithCredentialsJSON(credentials))
		}
		return NewSheetsSource(ctx, id, cfg.SheetRange, logger, opts...)

	case KindFile:
		return NewFileSource(cfg.FilePath, logger)

	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}

// ExportURL rewrites the share link of a Google Sheet into its CSV export
// link. Other URLs are returned unchanged.
func ExportURL(sheetURL string) string {
	u, err := url.Parse(sheetURL)
	if err != nil || !strings.HasSuffix(u.Host, "docs.google.com") {
		return sheetURL
	}

	i := strings.LastIndex(u.Path, "/edit")
	if i < 0 || !strings.Contains(u.Path, "/spreadsheets/d/") {
		return sheetURL
	}

	u.Path = u.Path[:i] + "/export"
	q := url.Values{}
	q.Set("format", "csv")
	if gid := gidOf(u); gid != "" {
		q.Set("gid", gid)
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

func gidOf(u *url.URL) string {
	if gid := u.Query().Get("gid"); gid != "" {
		return gid
	}
	if strings.HasPrefix(u.Fragment, "gid=") {
		return strings.TrimPrefix(u.Fragment, "gid=")
	}
	return ""
}

// SpreadsheetID extracts the spreadsheet id from a Google Sheets URL.
func SpreadsheetID(sheetURL string) (string, error) {
	const marker = "/spreadsheets/d/"
	i := strings.Index(sheetURL, marker)
	if i < 0 {
		return "", fmt.Errorf("no spreadsheet id in %q", sheetURL)
	}
	id := sheetURL[i+len(marker):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return "", fmt.Errorf("no spreadsheet id in %q", sheetURL)
	}
	return id, nil
}
