package analytics

import (
	"context"
	"time"

	"github.com/sudepo/sudepo/internal/store"
)

// Service computes reports against the live entity store.
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Report builds the dashboard snapshot for the window. Results are only
// stable within this single call; any order mutation warrants a re-read.
func (s *Service) Report(ctx context.Context, window Window) Report {
	return Build(s.store.Snapshot(), window, s.now())
}
