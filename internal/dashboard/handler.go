package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/climate-map/internal/adapter/plotly"
	"github.com/couchcryptid/climate-map/internal/domain"
)

// FigurePath is the route the page script fetches figures from.
const FigurePath = "/api/figure"

// Handler serves the dashboard page and its JSON API.
type Handler struct {
	app    *App
	logger *slog.Logger
}

// NewHandler creates a Handler over app.
func NewHandler(app *App, logger *slog.Logger) *Handler {
	return &Handler{app: app, logger: logger}
}

// Register mounts the dashboard routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handlePage)
	mux.HandleFunc("GET /api/years", h.handleYears)
	mux.HandleFunc("GET "+FigurePath, h.handleFigure)
	mux.HandleFunc("GET /api/frame", h.handleFrame)
	mux.HandleFunc("GET "+BoundariesPath, h.handleBoundaries)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	years := h.app.Renderer.Years()
	def, _ := years.Default()

	templ.Handler(layout(pageData{
		Page:      h.app.Page,
		Years:     years.Years(),
		Default:   def,
		FigureURL: FigurePath,
		PlotlyURL: PlotlyURL,
	})).ServeHTTP(w, r)
}

func (h *Handler) handleYears(w http.ResponseWriter, _ *http.Request) {
	years := h.app.Renderer.Years()
	def, _ := years.Default()
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"years":   years.Years(),
		"default": def,
	})
}

func (h *Handler) handleFigure(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.renderRequested(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := plotly.Encode(w, plotly.NewFigure(frame, h.app.Map)); err != nil {
		h.logger.Warn("write figure failed", "year", frame.Year, "error", err)
	}
}

func (h *Handler) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.renderRequested(w, r)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, frame)
}

func (h *Handler) handleBoundaries(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(h.app.Boundaries.Raw()) //nolint:errcheck // client went away
}

// renderRequested parses ?year=, checks it against the year index and renders
// the frame. It writes the error response itself and reports false on failure.
func (h *Handler) renderRequested(w http.ResponseWriter, r *http.Request) (domain.Frame, bool) {
	raw := r.URL.Query().Get("year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", raw))
		return domain.Frame{}, false
	}
	if !h.app.Renderer.Years().Contains(year) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("year %d not available", year))
		return domain.Frame{}, false
	}

	frame, err := h.app.Renderer.Render(r.Context(), year)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusInternalServerError, cfgErr.Error())
			return domain.Frame{}, false
		}
		writeError(w, http.StatusInternalServerError, "render failed")
		return domain.Frame{}, false
	}
	return frame, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
