package inventory

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
)

// ItemRequest is the create/update payload for an inventory item.
type ItemRequest struct {
	Name      string  `json:"name" validate:"required,max=160"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Unit      string  `json:"unit" validate:"required,max=20"`
	CostPrice float64 `json:"costPrice" validate:"gte=0"`
	SalePrice float64 `json:"salePrice" validate:"gte=0"`
	IsActive  bool    `json:"isActive"`
	IsCore    bool    `json:"isCore"`
	Category  string  `json:"category" validate:"max=80"`
	ImageURL  string  `json:"imageUrl" validate:"omitempty,url,max=500"`
}

func (r ItemRequest) toDomain() domain.InventoryItem {
	return domain.InventoryItem{
		Name:      r.Name,
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		CostPrice: r.CostPrice,
		SalePrice: r.SalePrice,
		IsActive:  r.IsActive,
		IsCore:    r.IsCore,
		Category:  r.Category,
		ImageURL:  r.ImageURL,
	}
}

// Handler manages inventory HTTP endpoints.
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

// MountRoutes registers routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.show)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// List also serves the public catalogue through the /api/catalog alias.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items := h.service.List(r.Context(), activeOnly)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	item, err := h.service.Create(r.Context(), req.toDomain())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
