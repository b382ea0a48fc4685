// Package prefs persists user preferences in a small key-value store.
package prefs

import (
	"context"
	"fmt"

	"github.com/username/chofshli/internal/holiday"
	"go.uber.org/zap"
)

// CategoryKey is the key holding the user category
const CategoryKey = "userCategory"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a string key-value store
type Store interface {
	// Get returns the value of key and whether it was set
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error

	Close() error
}

// Open opens the store for backend at path
func Open(backend, path string, logger *zap.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		fs := NewFileStore(path, logger)
		if err := fs.Load(); err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		return NewSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown preferences backend: %s", backend)
	}
}

// LoadCategory reads the stored user category. A missing key yields
// fallback, an unknown value yields citizen.
func LoadCategory(ctx context.Context, store Store, fallback holiday.Category) (holiday.Category, error) {
	value, ok, err := store.Get(ctx, CategoryKey)
	if err != nil {
		return fallback, fmt.Errorf("failed to read %s: %w", CategoryKey, err)
	}
	if !ok {
		return fallback, nil
	}
	return holiday.ParseCategory(value), nil
}

// SaveCategory stores the user category
func SaveCategory(ctx context.Context, store Store, category holiday.Category) error {
	if !category.Valid() {
		return fmt.Errorf("invalid category: %q", category)
	}
	if err := store.Set(ctx, CategoryKey, category.String()); err != nil {
		return fmt.Errorf("failed to save %s: %w", CategoryKey, err)
	}
	return nil
}
