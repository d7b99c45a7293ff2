package survey

import (
	"unicode/utf8"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Motivations lists the free-text comments longer than one character, in
// response order.
func Motivations(responses []Response) []domain.Motivation {
	out := []domain.Motivation{}
	for _, r := range responses {
		if utf8.RuneCountInString(r.Motivation) <= 1 {
			continue
		}
		out = append(out, domain.Motivation{
			Row:     r.Row(),
			Name:    r.Name,
			Comment: r.Motivation,
		})
	}
	return out
}
