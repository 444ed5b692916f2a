package usecase

import (
	"context"
	"time"
)

// MatchCache is the slice of the cache the usecases need. A nil cache
// is valid and means no caching.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
