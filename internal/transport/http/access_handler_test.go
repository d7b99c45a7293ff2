package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/internal/middleware"
	"github.com/LinFrancis/escuela-aucca/internal/shared/testutil"
)

func newAccessRouter(t *testing.T) (http.Handler, *middleware.AccessGate, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	gate, err := middleware.NewAccessGate(config.SecurityConfig{AccessCode: "compost"}, logger)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewAccessHandler(gate, newTestRenderer(t), logger).Routes(r)
	return r, gate, logs
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAccessHandler_Form(t *testing.T) {
	router, _, _ := newAccessRouter(t)

	rec := serve(router, http.MethodGet, "/acceso?next=%2Ftablero%3Ftaller%3D3")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Acceso restringido")
	assert.Contains(t, body, "Introduce el código de acceso:")
	assert.Contains(t, body, `value="/tablero?taller=3"`)
	assert.NotContains(t, body, AccessDeniedMessage)
	assert.NotContains(t, body, `action="/salir"`)
}

func TestAccessHandler_Submit(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		next       string
		wantStatus int
		wantLoc    string
		wantCookie bool
	}{
		{name: "correct code", code: "compost", next: "/tablero?taller=2", wantStatus: http.StatusSeeOther, wantLoc: "/tablero?taller=2", wantCookie: true},
		{name: "external next is ignored", code: "compost", next: "https://evil.example", wantStatus: http.StatusSeeOther, wantLoc: "/", wantCookie: true},
		{name: "wrong code", code: "abono", next: "/tablero", wantStatus: http.StatusUnauthorized},
		{name: "empty code", code: "", next: "/tablero", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, logs := newAccessRouter(t)

			rec := postForm(router, "/acceso", url.Values{"codigo": {tt.code}, "next": {tt.next}})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantCookie, len(rec.Result().Cookies()) == 1)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "Ingrese el código correcto para acceder a la información.")
				assert.True(t, logs.ContainsMessage("wrong access code"))
			}
		})
	}
}

func TestAccessHandler_AuthorizedVisitorSkipsForm(t *testing.T) {
	router, gate, _ := newAccessRouter(t)

	granted := httptest.NewRecorder()
	gate.Grant(granted, httptest.NewRequest(http.MethodPost, "/acceso", nil))

	req := httptest.NewRequest(http.MethodGet, "/acceso?next=%2Ftablero", nil)
	req.AddCookie(granted.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tablero", rec.Header().Get("Location"))
}

func TestAccessHandler_Logout(t *testing.T) {
	router, _, _ := newAccessRouter(t)

	rec := serve(router, http.MethodPost, "/salir")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
