package store

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv keeps each key as one file under the base path.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv returns a diskv backed Persistence rooted at basePath.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{
		d: diskv.New(diskv.Options{
			// No read cache: other processes rewrite the same files.
			BasePath:     basePath,
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}
}

func (p *Diskv) Read(_ context.Context, key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *Diskv) Write(_ context.Context, key string, data []byte) error {
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Erase(_ context.Context, key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *Diskv) Location() string {
	return p.basePath
}

func (p *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, p.basePath, func(name string) string {
		if p.d.Has(name) {
			return name
		}
		return ""
	})
}

func (p *Diskv) Close() error {
	return nil
}
