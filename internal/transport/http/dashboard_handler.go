package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/exporter"
	"github.com/LinFrancis/escuela-aucca/internal/middleware"
	"github.com/LinFrancis/escuela-aucca/internal/services"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type selectionKey struct{}

// DashboardHandler serves the dashboard as JSON and as downloadable exports
type DashboardHandler struct {
	service      DashboardServiceInterface
	csv          *exporter.CSVWriter
	workbook     *exporter.WorkbookWriter
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		csv:          exporter.NewCSVWriter(logger),
		workbook:     exporter.NewWorkbookWriter(logger),
		validate:     validator.New(),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard API routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/workshops", h.ListWorkshops)

	r.Route("/dashboard/{workshop}", func(r chi.Router) {
		r.Use(h.WorkshopCtx)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.GetDashboard)
		r.Get("/export.xlsx", h.ExportWorkbook)
		r.Get("/undecided.csv", h.ExportUndecided)
	})

	return r
}

// WorkshopCtx validates the {workshop} parameter and stores the selection
func (h *DashboardHandler) WorkshopCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "workshop")
		if err := h.validate.Var(raw, "required,max=120"); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workshop", "must be 1-6 or todos"))
			return
		}

		sel, err := survey.ParseSelection(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, services.AsAPIError(err, raw))
			return
		}

		ctx := context.WithValue(r.Context(), selectionKey{}, sel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListWorkshops handles GET /api/workshops
func (h *DashboardHandler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   catalog,
		"count":  len(catalog),
	})
}

// GetDashboard handles GET /api/dashboard/{workshop}
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)

	h.logger.InfoContext(r.Context(), "building dashboard",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.Int("workshop", sel.Workshop))

	dashboard, err := h.service.Build(r.Context(), sel.Workshop)
	if err != nil {
		h.errorHandler.HandleError(w, r, services.AsAPIError(err, services.WorkshopParam(sel.Workshop)))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dashboard,
	})
}

// ExportWorkbook handles GET /api/dashboard/{workshop}/export.xlsx
func (h *DashboardHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)

	dashboard, err := h.service.Build(r.Context(), sel.Workshop)
	if err != nil {
		h.errorHandler.HandleError(w, r, services.AsAPIError(err, services.WorkshopParam(sel.Workshop)))
		return
	}

	// Buffered so a failure can still be answered with a problem
	var buf bytes.Buffer
	if err := h.workbook.Write(&buf, dashboard); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write workbook",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.attachment(w, xlsxContentType, exportName(sel, "xlsx"))
	_, _ = w.Write(buf.Bytes())
}

// ExportUndecided handles GET /api/dashboard/{workshop}/undecided.csv
func (h *DashboardHandler) ExportUndecided(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	if sel.All() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workshop", "the undecided list needs a single workshop"))
		return
	}

	dashboard, err := h.service.Build(r.Context(), sel.Workshop)
	if err != nil {
		h.errorHandler.HandleError(w, r, services.AsAPIError(err, services.WorkshopParam(sel.Workshop)))
		return
	}

	var buf bytes.Buffer
	if err := h.csv.WriteUndecided(&buf, dashboard.Attendance.Undecided); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.attachment(w, "text/csv; charset=utf-8", fmt.Sprintf("por-confirmar-taller-%d.csv", sel.Workshop))
	_, _ = w.Write(buf.Bytes())
}

func (h *DashboardHandler) attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}

func selectionFrom(r *http.Request) survey.Selection {
	sel, _ := r.Context().Value(selectionKey{}).(survey.Selection)
	return sel
}

func exportName(sel survey.Selection, ext string) string {
	if sel.All() {
		return "tablero-todos." + ext
	}
	return fmt.Sprintf("tablero-taller-%d.%s", sel.Workshop, ext)
}
