package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudepo/sudepo/internal/analytics"
	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/store"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewOrderNotifyTaskPayload(t *testing.T) {
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	task, err := NewOrderNotifyTask(domain.Order{
		ID:           "o1",
		CustomerName: "Ayşe",
		Address:      "Çankaya, Kültür, No:5",
		TotalAmount:  100,
		Source:       domain.SourceGetir,
		CreatedAt:    created,
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeOrderNotify, task.Type())

	var payload OrderNotifyPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "o1", payload.OrderID)
	assert.Equal(t, "Kültür", payload.Neighborhood)
	assert.Equal(t, string(domain.SourceGetir), payload.Source)
	assert.Equal(t, created, payload.CreatedAt)
}

func TestNotifyHandlerPublishes(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, NotificationChannel)
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	task, err := NewOrderNotifyTask(domain.Order{ID: "o1", CustomerName: "Ayşe", TotalAmount: 100})
	require.NoError(t, err)

	handler := NewNotifyHandler(client, slog.Default())
	require.NoError(t, handler.Handle(ctx, task))

	select {
	case msg := <-sub.Channel():
		var payload OrderNotifyPayload
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &payload))
		assert.Equal(t, "o1", payload.OrderID)
	case <-ctx.Done():
		t.Fatal("notification not published")
	}
}

func TestNotifyHandlerRejectsBadPayload(t *testing.T) {
	client, _ := newTestRedis(t)
	handler := NewNotifyHandler(client, slog.Default())

	err := handler.Handle(context.Background(), asynq.NewTask(TaskTypeOrderNotify, []byte("{broken")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReportSnapshotJobStoresReport(t *testing.T) {
	client, mr := newTestRedis(t)

	st := store.New(nil, nil, nil)
	st.InsertOrder(domain.Order{
		ID:          "o1",
		Status:      domain.OrderStatusDelivered,
		Source:      domain.SourceWeb,
		TotalAmount: 150,
		CreatedAt:   time.Now().Add(-time.Hour),
	})

	job := NewReportSnapshotJob(analytics.NewService(st), client, slog.Default())
	require.NoError(t, job.Handle(context.Background(), NewReportSnapshotTask()))

	stored, err := mr.Get(ReportSnapshotKey)
	require.NoError(t, err)

	var report analytics.Report
	require.NoError(t, json.Unmarshal([]byte(stored), &report))
	assert.Equal(t, 1, report.TotalOrders)
	assert.InDelta(t, 150, report.TotalRevenue, 1e-9)

	ttl := mr.TTL(ReportSnapshotKey)
	assert.Equal(t, 48*time.Hour, ttl)
}
