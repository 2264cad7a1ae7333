package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/store"
)

// HousekeepingService periodically drops consumed handshakes whose token has
// expired. Once exp has passed the signature check alone rejects the token,
// so the ledger row is no longer needed.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Clock    func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass and reports how many rows were deleted.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	deleted, err := s.Store.Handshakes().DeleteExpiredHandshakes(ctx, s.Clock())
	if err != nil {
		s.Logger.Error("failed to delete expired handshakes", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted_handshakes", deleted)
	return deleted
}
