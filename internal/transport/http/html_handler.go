package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/internal/middleware"
	"github.com/LinFrancis/escuela-aucca/internal/services"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DashboardPath is the HTML dashboard
const DashboardPath = "/tablero"

// attendanceColors follows the category order of domain.AttendanceCategories
var attendanceColors = map[string]string{
	string(domain.AttendanceWillAttend):    "#4CAF50",
	string(domain.AttendanceWithChildren):  "#81C784",
	string(domain.AttendanceWillNotAttend): "#B0B0B0",
	string(domain.AttendanceNotSure):       "#FFB74D",
}

var childcareColors = []string{"#57C785", "#B0B0B0"}

// Renderer executes the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"barLabel": barLabel,
		"barWidth": barWidth,
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"mean": func(v float64) string {
			return fmt.Sprintf("%.2f/5", v)
		},
		"attendanceColor": func(category string) string {
			return attendanceColors[category]
		},
		"childcareColor": func(i int) string {
			return childcareColors[i%len(childcareColors)]
		},
		"workshopParam": services.WorkshopParam,
		"lines": func(s string) []string {
			return strings.Split(s, "\n")
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{"dashboard", "access", "error"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page with the given status. The page is rendered into a
// buffer first so a template error still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Page carries the values every template shares
type Page struct {
	Title    string
	Subtitle string
	Version  string
	LoggedIn bool
}

func newPage(loggedIn bool) Page {
	return Page{
		Title:    config.AppTitle,
		Subtitle: config.AppSubtitle,
		Version:  config.AppVersion,
		LoggedIn: loggedIn,
	}
}

// SelectOption is one entry of the workshop selector
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// DashboardPage is the view model of the dashboard template
type DashboardPage struct {
	Page
	Options     []SelectOption
	Selection   survey.Selection
	Dashboard   *domain.Dashboard
	ColumnError *survey.ColumnNotFoundError
	ExportURL   string
	CSVURL      string
}

// ErrorPage is the view model of the halting error template
type ErrorPage struct {
	Page
	Heading string
	Message string
	TraceID string
}

// HTMLHandler serves the server-rendered dashboard
type HTMLHandler struct {
	service  DashboardServiceInterface
	renderer *Renderer
	logger   *slog.Logger
}

// NewHTMLHandler creates a new HTML handler
func NewHTMLHandler(service DashboardServiceInterface, renderer *Renderer, logger *slog.Logger) *HTMLHandler {
	return &HTMLHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.With(slog.String("handler", "html")),
	}
}

// Dashboard handles GET /tablero?taller=N|todos. Without a selection the
// first workshop is shown.
func (h *HTMLHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("taller")
	if raw == "" {
		raw = strconv.Itoa(config.Workshops[0].Number)
	}

	sel, err := survey.ParseSelection(raw)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Taller desconocido",
			fmt.Sprintf("No existe el taller %q. Elige uno de la lista.", raw))
		return
	}

	page := DashboardPage{
		Page:      newPage(true),
		Options:   h.options(sel),
		Selection: sel,
		ExportURL: "/api/dashboard/" + services.WorkshopParam(sel.Workshop) + "/export.xlsx",
	}
	if !sel.All() {
		page.CSVURL = "/api/dashboard/" + services.WorkshopParam(sel.Workshop) + "/undecided.csv"
	}

	dashboard, err := h.service.Build(ctx, sel.Workshop)
	status := http.StatusOK
	var notFound *survey.ColumnNotFoundError
	switch {
	case err == nil:
		page.Dashboard = dashboard
	case errors.As(err, &notFound):
		page.ColumnError = notFound
		status = http.StatusNotFound
	case errors.Is(err, services.ErrSourceUnavailable), errors.Is(err, survey.ErrEmptyTable):
		h.logger.ErrorContext(ctx, "survey source unavailable",
			slog.String("error", err.Error()))
		h.renderError(w, r, http.StatusBadGateway, "No se pudo cargar la base de datos",
			"No fue posible leer las respuestas del formulario. Intenta nuevamente en unos minutos.")
		return
	default:
		h.logger.ErrorContext(ctx, "dashboard failed",
			slog.String("error", err.Error()))
		h.renderError(w, r, http.StatusInternalServerError, "Error inesperado",
			"Ocurrió un error al preparar el tablero.")
		return
	}

	if err := h.renderer.Render(w, status, "dashboard", page); err != nil {
		h.logger.ErrorContext(ctx, "failed to render dashboard",
			slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

// RedirectToDashboard redirects root requests to the dashboard
func RedirectToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

// StaticHandler serves the embedded stylesheet under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (h *HTMLHandler) options(sel survey.Selection) []SelectOption {
	catalog := h.service.Catalog()
	options := make([]SelectOption, 0, len(catalog)+1)
	for _, w := range catalog {
		options = append(options, SelectOption{
			Value:    strconv.Itoa(w.Number),
			Label:    w.Title,
			Selected: w.Number == sel.Workshop,
		})
	}
	return append(options, SelectOption{
		Value:    "todos",
		Label:    config.AllWorkshopsLabel,
		Selected: sel.All(),
	})
}

func (h *HTMLHandler) renderError(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	page := ErrorPage{
		Page:    newPage(true),
		Heading: heading,
		Message: message,
		TraceID: middleware.GetRequestID(r.Context()),
	}
	if err := h.renderer.Render(w, status, "error", page); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error page",
			slog.String("error", err.Error()))
		http.Error(w, message, status)
	}
}

func barLabel(count int, pct float64) string {
	return fmt.Sprintf("%d personas (%.1f%%)", count, pct)
}

func barWidth(pct float64) template.CSS {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return template.CSS(fmt.Sprintf("width: %.1f%%", pct))
}
