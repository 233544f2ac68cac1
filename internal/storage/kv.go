// Package storage provides the durable key-value stores backing the ledger.
package storage

import "context"

// KeyValue is the boundary the persistence adapter writes through. A single
// key holds the whole serialized ledger; writes replace the entire value.
type KeyValue interface {
	// Get returns the stored value for key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	Close() error
}
