package cache

import (
	"context"
	"errors"

	"github.com/Sarab71/fossnflories/internal/domain"
)

// CartCache sits in front of cart storage. Get reports an absent entry as
// ErrCacheMiss so callers can tell a miss from a transport failure.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
