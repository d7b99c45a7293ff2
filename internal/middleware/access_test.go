package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/shared/testutil"
)

func newTestGate(t *testing.T, cfg config.SecurityConfig) *AccessGate {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	gate, err := NewAccessGate(cfg, logger)
	require.NoError(t, err)
	return gate
}

func TestAccessGate_Verify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("semillas"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  config.SecurityConfig
		code string
		want bool
	}{
		{name: "plain match", cfg: config.SecurityConfig{AccessCode: "compost"}, code: "compost", want: true},
		{name: "surrounding spaces", cfg: config.SecurityConfig{AccessCode: "compost"}, code: "  compost ", want: true},
		{name: "plain mismatch", cfg: config.SecurityConfig{AccessCode: "compost"}, code: "Compost", want: false},
		{name: "empty", cfg: config.SecurityConfig{AccessCode: "compost"}, code: "", want: false},
		{name: "hash match", cfg: config.SecurityConfig{AccessCodeHash: string(hash)}, code: "semillas", want: true},
		{name: "hash wins over plain", cfg: config.SecurityConfig{AccessCode: "compost", AccessCodeHash: string(hash)}, code: "compost", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newTestGate(t, tt.cfg).Verify(tt.code))
		})
	}
}

func TestNewAccessGate_Errors(t *testing.T) {
	_, err := NewAccessGate(config.SecurityConfig{}, nil)
	assert.Error(t, err)

	_, err = NewAccessGate(config.SecurityConfig{AccessCodeHash: "not-a-hash"}, nil)
	assert.Error(t, err)
}

func TestAccessGate_Handler(t *testing.T) {
	gate := newTestGate(t, config.SecurityConfig{AccessCode: "compost"})
	handler := gate.Handler(http.HandlerFunc(okHandler))

	tests := []struct {
		name       string
		path       string
		header     map[string]string
		wantStatus int
		wantLoc    string
	}{
		{name: "excluded health", path: "/api/health", wantStatus: http.StatusOK},
		{name: "excluded login page", path: "/acceso", wantStatus: http.StatusOK},
		{name: "excluded static", path: "/static/app.css", wantStatus: http.StatusOK},
		{name: "browser redirected", path: "/tablero?taller=2", wantStatus: http.StatusSeeOther, wantLoc: "/acceso?next=%2Ftablero%3Ftaller%3D2"},
		{name: "api unauthorized", path: "/api/dashboard/1", wantStatus: http.StatusUnauthorized},
		{name: "json client unauthorized", path: "/tablero", header: map[string]string{"Accept": "application/json"}, wantStatus: http.StatusUnauthorized},
		{name: "api with header", path: "/api/dashboard/1", header: map[string]string{AccessCodeHeader: "compost"}, wantStatus: http.StatusOK},
		{name: "api with wrong header", path: "/api/dashboard/1", header: map[string]string{AccessCodeHeader: "abono"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
			if tt.wantStatus == http.StatusUnauthorized {
				problem := decodeProblem(t, rec)
				assert.Equal(t, LoginPath, problem["login_url"])
				assert.Equal(t, apierrors.TypeUnauthorized, problem["type"])
				assert.Equal(t, "An access code is required", problem["detail"])
			}
		})
	}
}

func TestAccessGate_CookieLifecycle(t *testing.T) {
	gate := newTestGate(t, config.SecurityConfig{AccessCode: "compost", CookieName: "acceso", CookieMaxAge: time.Hour})
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	gate.Grant(rec, httptest.NewRequest(http.MethodPost, "/acceso", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "acceso", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/tablero", nil)
	req.AddCookie(cookie)
	assert.True(t, gate.Authorized(req))

	tampered := httptest.NewRequest(http.MethodGet, "/tablero", nil)
	tampered.AddCookie(&http.Cookie{Name: "acceso", Value: cookie.Value + "0"})
	assert.False(t, gate.Authorized(tampered))

	forged := httptest.NewRequest(http.MethodGet, "/tablero", nil)
	forged.AddCookie(&http.Cookie{Name: "acceso", Value: "9999999999.deadbeef"})
	assert.False(t, gate.Authorized(forged))

	now = now.Add(2 * time.Hour)
	assert.False(t, gate.Authorized(req), "expired cookie")

	revoked := httptest.NewRecorder()
	gate.Revoke(revoked)
	cleared := revoked.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestAccessGate_CookiesFromAnotherProcessAreRejected(t *testing.T) {
	a := newTestGate(t, config.SecurityConfig{AccessCode: "compost"})
	b := newTestGate(t, config.SecurityConfig{AccessCode: "compost"})

	rec := httptest.NewRecorder()
	a.Grant(rec, httptest.NewRequest(http.MethodPost, "/acceso", nil))

	req := httptest.NewRequest(http.MethodGet, "/tablero", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	assert.True(t, a.Authorized(req))
	assert.False(t, b.Authorized(req))
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"/tablero?taller=2":    "/tablero?taller=2",
		"":                     "/",
		"https://evil.example": "/",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeNext(in), in)
	}
}
