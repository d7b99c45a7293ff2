package survey

import (
	"errors"
	"fmt"
	"strings"
)

// Survey errors
var (
	ErrEmptyTable             = errors.New("response table has no header")
	ErrWorkshopColumnNotFound = errors.New("workshop column not found")
	ErrUnknownWorkshop        = errors.New("unknown workshop")
)

// ColumnNotFoundError reports a workshop whose attendance column is absent
// from the table, together with every column that looks like a workshop.
type ColumnNotFoundError struct {
	Workshop   int
	Candidates []string
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no column found for Taller %d (no workshop columns detected)", e.Workshop)
	}
	return fmt.Sprintf("no column found for Taller %d (detected: %s)", e.Workshop, strings.Join(e.Candidates, "; "))
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrWorkshopColumnNotFound
}
