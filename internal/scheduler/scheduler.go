package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
	"github.com/krishaksaarthi/saarthi-backend/internal/weather"
)

// Scheduler periodically refreshes weather for tracked coordinates so
// history keeps accumulating without client traffic.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	tracked   []weather.Coordinate
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Scheduler.
func New(tracked []weather.Coordinate, interval time.Duration, service *weather.Service, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		tracked:   tracked,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. A no-op when nothing is tracked.
func (s *Scheduler) Start() error {
	if len(s.tracked) == 0 {
		s.logger.Info("scheduler: no tracked coordinates; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.metrics.ScheduledRefreshRun.Inc()

		var wg sync.WaitGroup
		for _, coord := range s.tracked {
			coord := coord
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := s.service.Refresh(ctx, coord); err != nil {
					s.logger.Error("scheduled refresh failed",
						"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
