package survey

import (
	"strings"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

const undecidedMarker = "no estoy seguro"

// Attendance counts the answers to workshop n over every response, not only
// the filtered ones. Answers outside the four canonical categories are
// counted as missing. Percentages are relative to the categorized answers.
func Attendance(responses []Response, n int, column string) domain.AttendanceBreakdown {
	counts := make(map[domain.AttendanceCategory]int, len(domain.AttendanceCategories))
	b := domain.AttendanceBreakdown{
		Workshop:  n,
		Column:    column,
		Undecided: []domain.Contact{},
	}

	for _, r := range responses {
		answer := r.Attendance[n]
		if category, ok := attendanceCategory(answer); ok {
			counts[category]++
			b.Total++
		} else {
			b.Missing++
		}

		if strings.Contains(strings.ToLower(answer), undecidedMarker) {
			b.Undecided = append(b.Undecided, domain.Contact{
				Row:       r.Row(),
				Name:      r.Name,
				Phone:     r.Phone,
				Email:     r.Email,
				Territory: r.Territory,
			})
		}
	}

	b.Categories = make([]domain.CategoryCount, 0, len(domain.AttendanceCategories))
	for _, category := range domain.AttendanceCategories {
		b.Categories = append(b.Categories, domain.CategoryCount{
			Category:   string(category),
			Count:      counts[category],
			Percentage: percentage(counts[category], b.Total),
		})
	}

	b.WillAttend = counts[domain.AttendanceWillAttend]
	b.WithChildren = counts[domain.AttendanceWithChildren]
	b.WillNotAttend = counts[domain.AttendanceWillNotAttend]
	b.NotSure = counts[domain.AttendanceNotSure]
	b.AttendeesTotal = b.WillAttend + b.WithChildren

	return b
}

func attendanceCategory(answer string) (domain.AttendanceCategory, bool) {
	a := strings.TrimSpace(answer)
	for _, category := range domain.AttendanceCategories {
		if a == string(category) {
			return category, true
		}
	}
	return "", false
}
