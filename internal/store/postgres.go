package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishaksaarthi/saarthi-backend/internal/weather"
)

// PostgresStore persists weather records in the weather_records table.
// Records are append-only; retention is an operational concern.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool. Connections are established
// lazily, so a database that is down at boot does not prevent the service
// from starting; the health endpoint reports reachability instead.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping reports database reachability for the health endpoint.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Append inserts one weather record.
func (s *PostgresStore) Append(ctx context.Context, rec weather.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO weather_records (
			id, latitude, longitude, temperature_c, humidity, rain_probability,
			wind_kmh, heat_zone, risk_level, advisory_text, created_at
		)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.Latitude, rec.Longitude, rec.TemperatureC, rec.Humidity,
		rec.RainProbability, rec.WindKmh, rec.HeatZone, rec.RiskLevel,
		rec.AdvisoryText, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert weather record: %w", err)
	}
	return nil
}

// History returns up to limit records for a coordinate, newest first.
// Coordinates are matched exactly; callers normalize before lookup.
func (s *PostgresStore) History(ctx context.Context, coord weather.Coordinate, limit int) ([]weather.Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, latitude, longitude, temperature_c, humidity, rain_probability,
		        wind_kmh, heat_zone, risk_level, advisory_text, created_at
		 FROM weather_records
		 WHERE latitude = $1 AND longitude = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		coord.Latitude, coord.Longitude, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query weather history: %w", err)
	}
	defer rows.Close()

	var result []weather.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read weather history: %w", err)
	}
	return result, nil
}

// Latest returns the newest record for a coordinate, or weather.ErrNotFound
// when no record exists.
func (s *PostgresStore) Latest(ctx context.Context, coord weather.Coordinate) (weather.Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, latitude, longitude, temperature_c, humidity, rain_probability,
		        wind_kmh, heat_zone, risk_level, advisory_text, created_at
		 FROM weather_records
		 WHERE latitude = $1 AND longitude = $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		coord.Latitude, coord.Longitude,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return weather.Record{}, weather.ErrNotFound
		}
		return weather.Record{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (weather.Record, error) {
	var rec weather.Record
	err := row.Scan(
		&rec.ID, &rec.Latitude, &rec.Longitude, &rec.TemperatureC, &rec.Humidity,
		&rec.RainProbability, &rec.WindKmh, &rec.HeatZone, &rec.RiskLevel,
		&rec.AdvisoryText, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return weather.Record{}, err
		}
		return weather.Record{}, fmt.Errorf("scan weather record: %w", err)
	}
	return rec, nil
}
