package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Persistence.Read for keys never written.
	ErrNotFound = errors.New("store: key not found")

	// ErrCorrupt marks a persisted blob that could not be decoded.
	ErrCorrupt = errors.New("store: corrupt collection")
)

// Persistence is the key-value contract behind every collection. Each key
// holds one complete JSON blob and is always overwritten as a whole.
type Persistence interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Erase(ctx context.Context, key string) error
	Keys(ctx context.Context) []string
	Location() string
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Load opens the Persistence selected by cfg. A nil cfg reads the config
// file first.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Driver() {
	case "", DriverDiskv:
		return NewDiskv(cfg.BasePath()), nil
	case DriverSQLite:
		return NewSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}
