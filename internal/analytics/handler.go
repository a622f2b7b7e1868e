package analytics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sudepo/sudepo/internal/platform/httpx"
)

// Handler serves the dashboard report.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler creates a new handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/report", h.report)
}

// report resolves ?window=today|7d|30d|all|custom with ?start/?end dates
// for the custom window.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	window, err := ParseWindow(q.Get("window"), q.Get("start"), q.Get("end"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.Report(r.Context(), window))
}
