// Package kv abstracts the single-blob snapshot slot behind a small
// key-value interface so the cart logic can target redis, an embedded
// JSON file, or an in-memory map without modification.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence surface the cart snapshot layer writes through.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
