package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LinFrancis/escuela-aucca/internal/shared/testutil"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Catalog() []domain.WorkshopDescriptor {
	args := m.Called()
	return args.Get(0).([]domain.WorkshopDescriptor)
}

func (m *MockDashboardService) Build(ctx context.Context, workshop int) (*domain.Dashboard, error) {
	args := m.Called(ctx, workshop)
	dashboard, _ := args.Get(0).(*domain.Dashboard)
	return dashboard, args.Error(1)
}

func fixtureDashboard(t *testing.T, workshop int) *domain.Dashboard {
	t.Helper()
	table, err := survey.NewTable(testutil.ResponseHeader(), testutil.ResponseRecords())
	require.NoError(t, err)
	run, err := survey.NewRun(table, survey.Selection{Workshop: workshop})
	require.NoError(t, err)
	return run.Dashboard()
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	return decodeJSON(t, rec)
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	return renderer
}
