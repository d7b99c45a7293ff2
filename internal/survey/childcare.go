package survey

import (
	"strings"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Childcare chart categories
const (
	CategoryWithChildren    = "Con infancias (Sí)"
	CategoryWithoutChildren = "Sin infancias (No)"
)

// ComesWithChildren reports whether the caregiver answer contains "sí",
// case-insensitively. Blank and other answers count as without children.
func ComesWithChildren(caregiver string) bool {
	return strings.Contains(strings.ToLower(caregiver), "sí")
}

// Childcare splits the responses by whether the person comes with children
// and lists the children registered by those who do.
func Childcare(responses []Response) domain.ChildcareBreakdown {
	b := domain.ChildcareBreakdown{
		Total:    len(responses),
		Children: []domain.ChildrenDetail{},
	}

	for _, r := range responses {
		if !ComesWithChildren(r.Caregiver) {
			continue
		}
		b.WithChildren++
		if r.Children != "" {
			b.Children = append(b.Children, domain.ChildrenDetail{
				Row:      r.Row(),
				Name:     r.Name,
				Children: r.Children,
			})
		}
	}

	b.WithoutChildren = b.Total - b.WithChildren
	b.WithChildrenPct = percentage(b.WithChildren, b.Total)
	b.WithoutChildrenPct = complement(b.WithChildrenPct, b.Total)
	b.Categories = []domain.CategoryCount{
		{Category: CategoryWithChildren, Count: b.WithChildren, Percentage: b.WithChildrenPct},
		{Category: CategoryWithoutChildren, Count: b.WithoutChildren, Percentage: b.WithoutChildrenPct},
	}

	return b
}
