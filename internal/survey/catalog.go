package survey

import (
	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Catalog returns the workshop programme in selection order.
func Catalog() []domain.WorkshopDescriptor {
	out := make([]domain.WorkshopDescriptor, 0, len(config.Workshops))
	for _, w := range config.Workshops {
		out = append(out, descriptor(w))
	}
	return out
}

// Descriptor returns the catalog entry of workshop n.
func Descriptor(n int) (*domain.WorkshopDescriptor, bool) {
	w, ok := config.WorkshopByNumber(n)
	if !ok {
		return nil, false
	}
	d := descriptor(w)
	return &d, true
}

func descriptor(w config.Workshop) domain.WorkshopDescriptor {
	return domain.WorkshopDescriptor{
		Number:      w.Number,
		Title:       w.Title,
		Heading:     w.Heading,
		Schedule:    w.Schedule,
		Description: w.Description,
	}
}
