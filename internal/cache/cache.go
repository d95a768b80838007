package cache

import (
	"context"
	"time"
)

// Cache fronts the interaction lookup endpoint; pipeline writes never go
// through it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// InteractionKey namespaces cached interaction rows.
func InteractionKey(interactionID string) string {
	return "interaction:" + interactionID
}
