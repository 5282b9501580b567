package weather

import "context"

// Provider abstracts the upstream forecast API (Tomorrow.io in production).
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, coord Coordinate) (RawForecast, error)
}

// RecordStore is the contract the persistence backend must satisfy. Append
// is called off the request path and its failure must never surface to the
// advisory caller; History and Latest propagate store errors since the
// caller has no fallback on the read path.
type RecordStore interface {
	Append(ctx context.Context, rec Record) error
	History(ctx context.Context, coord Coordinate, limit int) ([]Record, error)
	Latest(ctx context.Context, coord Coordinate) (Record, error)
}
