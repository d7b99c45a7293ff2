package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LinFrancis/escuela-aucca/internal/middleware"
)

// AccessDeniedMessage is shown when the submitted code is wrong
const AccessDeniedMessage = "⚠️ Ingrese el código correcto para acceder a la información."

// AccessPage is the view model of the access form
type AccessPage struct {
	Page
	Next    string
	Warning string
}

// AccessHandler serves the access form that unlocks the dashboard
type AccessHandler struct {
	gate     *middleware.AccessGate
	renderer *Renderer
	logger   *slog.Logger
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(gate *middleware.AccessGate, renderer *Renderer, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		gate:     gate,
		renderer: renderer,
		logger:   logger.With(slog.String("handler", "access")),
	}
}

// Routes mounts the access endpoints on r
func (h *AccessHandler) Routes(r chi.Router) {
	r.Get(middleware.LoginPath, h.Form)
	r.Post(middleware.LoginPath, h.Submit)
	r.Post("/salir", h.Logout)
}

// Form handles GET /acceso
func (h *AccessHandler) Form(w http.ResponseWriter, r *http.Request) {
	next := middleware.SafeNext(r.URL.Query().Get("next"))
	if h.gate.Authorized(r) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, next, "")
}

// Submit handles POST /acceso
func (h *AccessHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "/", AccessDeniedMessage)
		return
	}
	next := middleware.SafeNext(r.PostFormValue("next"))

	if !h.gate.Verify(r.PostFormValue("codigo")) {
		h.logger.WarnContext(ctx, "wrong access code",
			slog.String("request_id", middleware.GetRequestID(ctx)))
		h.render(w, r, http.StatusUnauthorized, next, AccessDeniedMessage)
		return
	}

	h.gate.Grant(w, r)
	h.logger.InfoContext(ctx, "access granted",
		slog.String("request_id", middleware.GetRequestID(ctx)))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles POST /salir
func (h *AccessHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Revoke(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (h *AccessHandler) render(w http.ResponseWriter, r *http.Request, status int, next, warning string) {
	page := AccessPage{
		Page:    newPage(false),
		Next:    next,
		Warning: warning,
	}
	if err := h.renderer.Render(w, status, "access", page); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render access page",
			slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}
