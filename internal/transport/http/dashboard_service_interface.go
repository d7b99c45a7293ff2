package http

import (
	"context"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// DashboardServiceInterface defines the operations the handlers need
type DashboardServiceInterface interface {
	Catalog() []domain.WorkshopDescriptor
	Build(ctx context.Context, workshop int) (*domain.Dashboard, error)
}
