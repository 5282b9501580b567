package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
)

const (
	historyLimit  = 10
	appendTimeout = 5 * time.Second
)

// Service orchestrates the advisory pipeline: validate the coordinate, fetch
// the raw forecast, normalize it, classify risk, persist a record off the
// request path, and return the composed report.
type Service struct {
	provider Provider
	store    RecordStore
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service. provider may be nil when the upstream
// credential is absent; lookups then fail with ErrNotConfigured instead of
// attempting calls that cannot succeed.
func NewService(provider Provider, store RecordStore, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  metrics,
	}
}

// GetCurrent fetches, normalizes, and classifies the weather for a
// coordinate. A record write is started in the background; its failure is
// logged and counted but never propagated, so a flaky store cannot take down
// the advisory path.
func (s *Service) GetCurrent(ctx context.Context, coord Coordinate) (Report, error) {
	if !coord.Valid() {
		return Report{}, ErrInvalidCoordinate
	}
	if s.provider == nil {
		return Report{}, ErrNotConfigured
	}

	raw, err := s.provider.FetchForecast(ctx, coord)
	if err != nil {
		s.logger.Error("upstream fetch failed",
			"provider", s.provider.Name(),
			"lat", coord.Latitude, "lon", coord.Longitude,
			"error", err)
		return Report{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	now := clock.Now().UTC()
	snapshot, forecast := Normalize(raw, now)
	advisory := BuildAdvisory(snapshot.RainProbability, snapshot.Humidity, snapshot.TempC)
	s.metrics.AdvisoriesServed.WithLabelValues(string(advisory.Level)).Inc()

	go s.appendRecord(coord, snapshot, advisory)

	return Report{
		Current:   snapshot,
		Forecast:  forecast,
		Advisory:  advisory,
		UpdatedAt: now,
	}, nil
}

// appendRecord persists a snapshot best-effort. Runs detached from the
// request with its own deadline.
func (s *Service) appendRecord(coord Coordinate, snap Snapshot, adv Advisory) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	rec := Record{
		ID:              uuid.New().String(),
		Latitude:        coord.Latitude,
		Longitude:       coord.Longitude,
		TemperatureC:    snap.TempC,
		Humidity:        snap.Humidity,
		RainProbability: snap.RainProbability,
		WindKmh:         snap.WindKmh,
		HeatZone:        snap.HeatZone.Zone,
		// the risk_level column carries the advisory severity
		RiskLevel:    RiskLevel(adv.Level),
		AdvisoryText: adv.Text,
		CreatedAt:    snap.CapturedAt,
	}

	if err := s.store.Append(ctx, rec); err != nil {
		s.metrics.RecordAppendErrors.Inc()
		s.logger.Error("weather record append failed",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return
	}
	s.metrics.RecordsAppended.Inc()
}

// GetHistory returns up to ten most recent records for a coordinate.
func (s *Service) GetHistory(ctx context.Context, coord Coordinate) ([]Record, error) {
	if !coord.Valid() {
		return nil, ErrInvalidCoordinate
	}
	return s.store.History(ctx, coord, historyLimit)
}

// GetLatest returns the newest record for a coordinate, or ErrNotFound when
// none exists. Not-found is a normal outcome, distinct from a store failure.
func (s *Service) GetLatest(ctx context.Context, coord Coordinate) (Record, error) {
	if !coord.Valid() {
		return Record{}, ErrInvalidCoordinate
	}
	return s.store.Latest(ctx, coord)
}

// Refresh runs the full lookup for a tracked coordinate so history keeps
// accumulating without client traffic. Used by the background scheduler.
func (s *Service) Refresh(ctx context.Context, coord Coordinate) error {
	_, err := s.GetCurrent(ctx, coord)
	if errors.Is(err, ErrNotConfigured) {
		// Nothing to refresh without a credential; not a per-cycle error.
		return nil
	}
	return err
}
