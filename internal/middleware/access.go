package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
)

// AccessCodeHeader lets API clients present the access code without a cookie
const AccessCodeHeader = "X-Access-Code"

// LoginPath is the access form the gate redirects browsers to
const LoginPath = "/acceso"

// AccessGate keeps the dashboard behind a shared access code. A correct code
// earns a signed cookie valid for the configured max age.
type AccessGate struct {
	code            []byte
	hash            []byte
	cookieName      string
	maxAge          time.Duration
	key             []byte
	excludePaths    []string
	excludePrefixes []string
	logger          *slog.Logger
	problems        *apierrors.ErrorHandler
	now             func() time.Time
}

// NewAccessGate creates the gate from the security configuration. When a
// bcrypt hash is configured it takes precedence over the plain code.
func NewAccessGate(cfg config.SecurityConfig, logger *slog.Logger) (*AccessGate, error) {
	if cfg.AccessCode == "" && cfg.AccessCodeHash == "" {
		return nil, apierrors.NewConfigError("no access code configured", nil)
	}
	if cfg.AccessCodeHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.AccessCodeHash)); err != nil {
			return nil, apierrors.NewConfigError("invalid access code hash", err)
		}
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate cookie key: %w", err)
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "aucca_acceso"
	}
	maxAge := cfg.CookieMaxAge
	if maxAge <= 0 {
		maxAge = 12 * time.Hour
	}

	return &AccessGate{
		code:       []byte(cfg.AccessCode),
		hash:       []byte(cfg.AccessCodeHash),
		cookieName: cookieName,
		maxAge:     maxAge,
		key:        key,
		excludePaths: []string{
			"/",
			LoginPath,
			"/salir",
			"/api/health",
			"/api/health/ready",
			"/api/health/live",
			"/api/version",
			"/metrics",
			"/favicon.ico",
			"/robots.txt",
		},
		excludePrefixes: []string{
			"/static/",
		},
		logger:   infrastructure.WithComponent(logger, "access_gate"),
		problems: apierrors.NewErrorHandler(logger, false),
		now:      time.Now,
	}, nil
}

// Verify reports whether code is the configured access code
func (g *AccessGate) Verify(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if len(g.hash) > 0 {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare(g.code, []byte(code)) == 1
}

// Grant sets the access cookie on w
func (g *AccessGate) Grant(w http.ResponseWriter, r *http.Request) {
	expires := g.now().Add(g.maxAge)
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    g.sign(expires),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(g.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Revoke clears the access cookie
func (g *AccessGate) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authorized reports whether r carries a valid cookie or access code header
func (g *AccessGate) Authorized(r *http.Request) bool {
	if code := r.Header.Get(AccessCodeHeader); code != "" {
		return g.Verify(code)
	}
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return false
	}
	return g.valid(cookie.Value)
}

// Handler returns the middleware handler function
func (g *AccessGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if g.shouldExcludePath(r.URL.Path) || g.Authorized(r) {
			next.ServeHTTP(w, r)
			return
		}

		denial := apierrors.NewAccessError("An access code is required")
		g.logger.InfoContext(ctx, "access denied",
			slog.String("error", denial.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("api", isAPIRequest(r)))

		if isAPIRequest(r) {
			problem := g.problems.ErrorToProblem(denial, r).
				WithExtension("trace_id", GetRequestID(ctx)).
				WithExtension("login_url", LoginPath)
			apierrors.WriteProblem(w, problem)
			return
		}

		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, LoginPath+"?next="+url.QueryEscape(target), http.StatusSeeOther)
	})
}

// SafeNext returns next when it is a local path, "/" otherwise
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (g *AccessGate) shouldExcludePath(path string) bool {
	for _, excluded := range g.excludePaths {
		if path == excluded {
			return true
		}
	}
	for _, prefix := range g.excludePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// sign produces "<unix expiry>.<hex mac>"
func (g *AccessGate) sign(expires time.Time) string {
	payload := strconv.FormatInt(expires.Unix(), 10)
	return payload + "." + hex.EncodeToString(g.mac(payload))
}

func (g *AccessGate) valid(value string) bool {
	payload, sig, ok := strings.Cut(value, ".")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil || !hmac.Equal(got, g.mac(payload)) {
		return false
	}
	expires, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return false
	}
	return g.now().Unix() < expires
}

func (g *AccessGate) mac(payload string) []byte {
	h := hmac.New(sha256.New, g.key)
	h.Write([]byte(payload))
	return h.Sum(nil)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
