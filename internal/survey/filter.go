package survey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LinFrancis/escuela-aucca/internal/config"
)

// Selection is the view requested by the user. Workshop 0 selects every
// workshop.
type Selection struct {
	Workshop int
}

// AllWorkshops is the all-workshops selection.
func AllWorkshops() Selection {
	return Selection{}
}

// All reports whether the selection is the all-workshops view.
func (s Selection) All() bool {
	return s.Workshop == 0
}

// Label returns the catalog title of the selected workshop.
func (s Selection) Label() string {
	if s.All() {
		return config.AllWorkshopsLabel
	}
	return Topic(s.Workshop).Label()
}

// Validate checks the workshop against the catalog.
func (s Selection) Validate() error {
	if s.All() {
		return nil
	}
	if _, ok := config.WorkshopByNumber(s.Workshop); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWorkshop, s.Workshop)
	}
	return nil
}

// allAliases are accepted for the all-workshops view.
var allAliases = map[string]bool{
	"":      true,
	"todos": true,
	"todo":  true,
	"all":   true,
	"0":     true,
}

// ParseSelection reads a selection from a URL parameter: a workshop number,
// a workshop title or one of the all-workshops aliases.
func ParseSelection(raw string) (Selection, error) {
	value := strings.TrimSpace(raw)
	if allAliases[strings.ToLower(value)] || value == config.AllWorkshopsLabel {
		return AllWorkshops(), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		if n, err = WorkshopNumber(value); err != nil {
			return Selection{}, err
		}
	}

	sel := Selection{Workshop: n}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// IsPositiveAttendance reports whether an attendance answer declares the
// person will come, with or without children. The match is a permissive
// case-insensitive substring test.
func IsPositiveAttendance(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return strings.Contains(a, "participaré") || strings.Contains(a, "asistiré")
}

// Filter narrows responses to the selection. The all-workshops view keeps
// every response; a single workshop keeps the positive attendance answers of
// its column and fails with *ColumnNotFoundError when the column is absent.
func Filter(responses []Response, sel Selection, s Schema) ([]Response, error) {
	if sel.All() {
		return responses, nil
	}

	if _, ok := s.WorkshopColumn(sel.Workshop); !ok {
		return nil, &ColumnNotFoundError{Workshop: sel.Workshop, Candidates: s.Candidates}
	}

	filtered := make([]Response, 0, len(responses))
	for _, r := range responses {
		if IsPositiveAttendance(r.Attendance[sel.Workshop]) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
