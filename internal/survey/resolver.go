package survey

import (
	"fmt"
	"strconv"
	"strings"
)

const workshopPrefix = "taller"

// WorkshopNumber extracts the workshop number from a selection title such as
// "Taller 4: Carpintería": the last token before the colon must be an
// integer. A bare number is accepted as well.
func WorkshopNumber(title string) (int, error) {
	head, _, _ := strings.Cut(title, ":")
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWorkshop, title)
	}

	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWorkshop, title)
	}
	return n, nil
}

// ResolveWorkshopColumn returns the first column whose normalized label starts
// with "taller {n}:".
func ResolveWorkshopColumn(t *Table, n int) (string, bool) {
	return resolveWorkshopColumn(t.Columns, n)
}

func resolveWorkshopColumn(columns []string, n int) (string, bool) {
	prefix := fmt.Sprintf("%s %d:", workshopPrefix, n)
	for _, c := range columns {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c)), prefix) {
			return c, true
		}
	}
	return "", false
}

// WorkshopColumnCandidates lists, in table order, every column that looks
// like a workshop attendance question.
func WorkshopColumnCandidates(t *Table) []string {
	return workshopColumnCandidates(t.Columns)
}

func workshopColumnCandidates(columns []string) []string {
	candidates := []string{}
	for _, c := range columns {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c)), workshopPrefix) {
			candidates = append(candidates, c)
		}
	}
	return candidates
}
