package couriers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
)

// Handler manages courier HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	couriers := h.service.List(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{
		"couriers": couriers,
		"total":    len(couriers),
	})
}

// Ranked drives the assignment dropdown: couriers sorted best-first for
// the neighborhood passed as a query parameter.
func (h *Handler) Ranked(w http.ResponseWriter, r *http.Request) {
	neighborhood := r.URL.Query().Get("neighborhood")
	couriers := h.service.Ranked(r.Context(), neighborhood)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"couriers":     couriers,
		"neighborhood": neighborhood,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	courier, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courier)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourierRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	courier, err := h.service.Create(r.Context(), req.toDomain())
	if err != nil {
		h.logger.Error("create courier", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, courier)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCourierRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	courier, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courier)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	courier, err := h.service.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.CourierStatus(req.Status))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courier)
}

func (h *Handler) ReportInventory(w http.ResponseWriter, r *http.Request) {
	var req ReportInventoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	courier, err := h.service.ReportInventory(r.Context(), chi.URLParam(r, "id"), req.FullInventory, req.EmptyInventory)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courier)
}
