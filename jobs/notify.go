package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/sudepo/sudepo/internal/domain"
)

// NotificationChannel is the redis pub/sub channel dashboard clients
// subscribe to for new-order popups.
const NotificationChannel = "sudepo.notifications"

// Notifier enqueues new-order notification tasks. It satisfies the order
// service's Notifier interface.
type Notifier struct {
	client *asynq.Client
}

// NewNotifier wraps an asynq client.
func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyNewOrder enqueues the notification task for the order.
func (n *Notifier) NotifyNewOrder(ctx context.Context, order domain.Order) error {
	task, err := NewOrderNotifyTask(order)
	if err != nil {
		return fmt.Errorf("jobs: build notify task: %w", err)
	}
	if _, err := n.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("jobs: enqueue notify task: %w", err)
	}
	return nil
}

// NotifyHandler processes order:notify tasks by publishing the payload to
// the notification channel.
type NotifyHandler struct {
	redis  *redis.Client
	logger *slog.Logger
}

// NewNotifyHandler constructs a NotifyHandler.
func NewNotifyHandler(client *redis.Client, logger *slog.Logger) *NotifyHandler {
	return &NotifyHandler{redis: client, logger: logger}
}

// Handle processes one order:notify task.
func (h *NotifyHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload OrderNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	if err := h.redis.Publish(ctx, NotificationChannel, t.Payload()).Err(); err != nil {
		return fmt.Errorf("jobs: publish notification: %w", err)
	}

	h.logger.Info("new order notification",
		slog.String("order_id", payload.OrderID),
		slog.String("neighborhood", payload.Neighborhood),
		slog.String("source", payload.Source),
		slog.Float64("total", payload.TotalAmount))
	return nil
}
