package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/sudepo/sudepo/internal/analytics"
)

const (
	// ReportSnapshotKey stores the latest nightly report in redis.
	ReportSnapshotKey = "sudepo:report:nightly"
	// ReportSnapshotCron fires the snapshot shortly before the office
	// opens (scheduler runs in UTC).
	ReportSnapshotCron = "0 3 * * *"

	reportSnapshotTTL = 48 * time.Hour
)

// ReportSnapshotJob renders the all-time report and caches it for the
// morning dashboard.
type ReportSnapshotJob struct {
	service *analytics.Service
	redis   *redis.Client
	logger  *slog.Logger
}

// NewReportSnapshotJob constructs the job.
func NewReportSnapshotJob(service *analytics.Service, client *redis.Client, logger *slog.Logger) *ReportSnapshotJob {
	return &ReportSnapshotJob{service: service, redis: client, logger: logger}
}

// Handle processes one report:snapshot task.
func (j *ReportSnapshotJob) Handle(ctx context.Context, t *asynq.Task) error {
	report := j.service.Report(ctx, analytics.Window{Kind: analytics.WindowAll})
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("jobs: marshal report: %w", err)
	}
	if err := j.redis.Set(ctx, ReportSnapshotKey, payload, reportSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("jobs: store report snapshot: %w", err)
	}

	j.logger.Info("report snapshot stored",
		slog.Int("orders", report.TotalOrders),
		slog.Float64("revenue", report.TotalRevenue))
	return nil
}
