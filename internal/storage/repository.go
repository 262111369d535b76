package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is the synchronous key-value port the state store persists through.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by backends that can enumerate their entries.
type Lister interface {
	ListEntries(ctx context.Context, filter EntryListFilter) ([]Entry, error)
}
