package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/internal/services"
	"github.com/LinFrancis/escuela-aucca/internal/shared/testutil"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

func newHTMLHandler(t *testing.T, svc *MockDashboardService) (*HTMLHandler, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	return NewHTMLHandler(svc, newTestRenderer(t), logger), logs
}

func TestHTMLHandler_Dashboard(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		workshop int
		contains []string
		excludes []string
	}{
		{
			name:     "defaults to the first workshop",
			query:    "",
			workshop: 1,
			contains: []string{
				"Mostrando resultados para: <strong>Taller 1",
				"Columna real detectada: <code>" + testutil.Taller1Column,
				"Total Asistentes",
				"Personas que aún no confirman su participación",
				"Carla Rojas",
				"Promedio de conocimiento",
				"4.00/5",
				"/api/dashboard/1/undecided.csv",
				`<option value="1" selected>`,
			},
		},
		{
			name:     "all workshops",
			query:    "?taller=todos",
			workshop: 0,
			contains: []string{
				"Selecciona un taller específico para analizar la participación declarada.",
				"Este taller no tiene preguntas asociadas de conocimiento.",
				`<option value="todos" selected>`,
				"/api/dashboard/todos/export.xlsx",
			},
			excludes: []string{"undecided.csv", "Total Asistentes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			svc.On("Catalog").Return(survey.Catalog())
			svc.On("Build", mock.Anything, tt.workshop).Return(fixtureDashboard(t, tt.workshop), nil)
			handler, _ := newHTMLHandler(t, svc)

			rec := httptest.NewRecorder()
			handler.Dashboard(rec, httptest.NewRequest(http.MethodGet, DashboardPath+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, body, s)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHTMLHandler_BarLabels(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Catalog").Return(survey.Catalog())
	svc.On("Build", mock.Anything, 1).Return(fixtureDashboard(t, 1), nil)
	handler, _ := newHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	handler.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/tablero?taller=1", nil))

	// Taller 1: 2 of 5 answered "Participaré"
	assert.Contains(t, rec.Body.String(), "2 personas (40.0%)")
	assert.Contains(t, rec.Body.String(), "width: 40.0%")
}

func TestHTMLHandler_DashboardErrors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		buildErr   error
		wantStatus int
		contains   []string
	}{
		{
			name:       "unknown workshop",
			query:      "?taller=9",
			wantStatus: http.StatusBadRequest,
			contains:   []string{"Taller desconocido"},
		},
		{
			name:  "column not found keeps the dashboard",
			query: "?taller=2",
			buildErr: &survey.ColumnNotFoundError{
				Workshop:   2,
				Candidates: []string{testutil.Taller1Column},
			},
			wantStatus: http.StatusNotFound,
			contains: []string{
				"No se encontró la columna del Taller 2",
				testutil.Taller1Column,
				`<select id="taller" name="taller">`,
			},
		},
		{
			name:       "source failure halts",
			query:      "?taller=1",
			buildErr:   fmt.Errorf("%w: timeout", services.ErrSourceUnavailable),
			wantStatus: http.StatusBadGateway,
			contains:   []string{"No se pudo cargar la base de datos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			svc.On("Catalog").Return(survey.Catalog())
			if tt.buildErr != nil {
				svc.On("Build", mock.Anything, mock.Anything).Return(nil, tt.buildErr)
			}
			handler, _ := newHTMLHandler(t, svc)

			rec := httptest.NewRecorder()
			handler.Dashboard(rec, httptest.NewRequest(http.MethodGet, DashboardPath+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestRedirectToDashboard(t *testing.T) {
	rec := httptest.NewRecorder()
	RedirectToDashboard(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, DashboardPath, rec.Header().Get("Location"))
}

func TestStaticHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".bar-track")
}

func TestRenderer_UnknownPage(t *testing.T) {
	err := newTestRenderer(t).Render(httptest.NewRecorder(), http.StatusOK, "missing", nil)
	assert.Error(t, err)
}

func TestBarHelpers(t *testing.T) {
	assert.Equal(t, "3 personas (60.0%)", barLabel(3, 60))
	assert.Equal(t, "width: 0.0%", string(barWidth(-5)))
	assert.Equal(t, "width: 100.0%", string(barWidth(130)))
	assert.Equal(t, config.AppTitle, newPage(false).Title)
}
