package db

import (
	"context"
)

// DbInterface is a last-write-wins blob store keyed by string.
type DbInterface interface {
	Ping(ctx context.Context) error
	// Get returns *NotFoundError when nothing is stored under key
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
