// Package kv defines the key-value slots the application state is persisted in.
// Each slot holds one serialized value and is rewritten wholesale on save.
package kv

import (
	"context"
	"errors"
)

// Slot keys.
const (
	KeyTransactions = "zen_tracker_transactions"
	KeyTheme        = "zen_tracker_theme"
	KeyProfile      = "zen_tracker_profile"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

//go:generate mockgen -source=kv.go -destination=store_mock.go -package=kv
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
