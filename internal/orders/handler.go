package orders

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/observability"
	"github.com/sudepo/sudepo/internal/platform/httpx"
)

// Handler manages order HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler creates a new handler. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	source := domain.OrderSource(r.URL.Query().Get("source"))
	orders := h.service.List(r.Context(), status, source)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  len(orders),
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	draft, customerDraft := req.toDraft()
	order := h.service.Create(r.Context(), draft, customerDraft)
	if h.metrics != nil {
		h.metrics.OrderCreated(string(order.Source))
	}
	h.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("source", string(order.Source)),
		slog.Float64("total", order.TotalAmount))
	httpx.JSON(w, http.StatusCreated, order)
}

// UpdateStatus never errors on an unknown order; the mutation is simply
// skipped and the caller gets an empty body back.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	order, ok := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req ReassignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	order, ok := h.service.ReassignCourier(r.Context(), chi.URLParam(r, "id"), req.CourierID)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	order, ok := h.service.SetPayment(r.Context(), chi.URLParam(r, "id"), domain.PaymentMethod(req.PaymentMethod))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
