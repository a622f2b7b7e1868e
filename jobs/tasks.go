// Package jobs defines the asynq background tasks: office notifications
// for new orders and the nightly report snapshot.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sudepo/sudepo/internal/domain"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeOrderNotify announces a newly created order to the office.
	TaskTypeOrderNotify = "order:notify"
	// TaskTypeReportSnapshot renders the nightly dashboard report.
	TaskTypeReportSnapshot = "report:snapshot"
)

// OrderNotifyPayload is the slim order summary the notification carries.
type OrderNotifyPayload struct {
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Neighborhood string    `json:"neighborhood"`
	TotalAmount  float64   `json:"totalAmount"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewOrderNotifyTask constructs the notification task for an order.
func NewOrderNotifyTask(order domain.Order) (*asynq.Task, error) {
	payload := OrderNotifyPayload{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Neighborhood: order.Neighborhood(),
		TotalAmount:  order.TotalAmount,
		Source:       string(order.Source),
		CreatedAt:    order.CreatedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeOrderNotify, data), nil
}

// NewReportSnapshotTask constructs the nightly snapshot task.
func NewReportSnapshotTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReportSnapshot, nil)
}
