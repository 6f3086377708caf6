package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/daybook/pkg/record"
)

// ErrNoRecord is returned when no record carries the requested id.
var ErrNoRecord = errors.New("store: no such record")

// Store is the in-memory ordered collection of one record kind, mirrored to a
// single key of a Persistence. Insertion order is preserved. Every mutation
// rewrites the whole blob and only takes effect in memory once the write
// succeeded.
type Store[T record.Keyed] struct {
	p    Persistence
	key  string
	recs []T
}

// New returns an empty store for kind. Call Load to read persisted records.
func New[T record.Keyed](p Persistence, kind record.Kind) *Store[T] {
	return &Store[T]{p: p, key: kind.Key()}
}

// Key is the persistence key of the store.
func (s *Store[T]) Key() string {
	return s.key
}

// Load replaces the in-memory records with the persisted blob. A missing key
// yields an empty store. A blob that does not decode also yields an empty
// store, and the returned error wraps ErrCorrupt.
func (s *Store[T]) Load(ctx context.Context) error {
	data, err := s.p.Read(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		s.recs = nil
		return nil
	}
	if err != nil {
		s.recs = nil
		return err
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		s.recs = nil
		return fmt.Errorf("%w %q: %v", ErrCorrupt, s.key, err)
	}
	s.recs = recs
	return nil
}

// Save overwrites the persisted blob with the current records.
func (s *Store[T]) Save(ctx context.Context) error {
	return s.commit(ctx, s.recs)
}

// All returns a copy of the records in store order.
func (s *Store[T]) All() []T {
	return clone(s.recs)
}

func (s *Store[T]) Len() int {
	return len(s.recs)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id record.ID) (T, bool) {
	if i := s.index(id); i >= 0 {
		return s.recs[i], true
	}
	var zero T
	return zero, false
}

// Append adds records to the end of the store and persists.
func (s *Store[T]) Append(ctx context.Context, recs ...T) error {
	next := append(clone(s.recs), recs...)
	return s.commit(ctx, next)
}

// Update applies fn to the record with the given id and persists. When fn
// returns an error nothing is written.
func (s *Store[T]) Update(ctx context.Context, id record.ID, fn func(*T) error) (T, error) {
	var zero T
	i := s.index(id)
	if i < 0 {
		return zero, ErrNoRecord
	}
	next := clone(s.recs)
	if err := fn(&next[i]); err != nil {
		return zero, err
	}
	if err := s.commit(ctx, next); err != nil {
		return zero, err
	}
	return next[i], nil
}

// Remove deletes the record with the given id and persists.
func (s *Store[T]) Remove(ctx context.Context, id record.ID) error {
	n, err := s.RemoveWhere(ctx, func(r T) bool { return r.Key() == id })
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}

// RemoveWhere deletes every record matching pred and persists when at least
// one record was removed.
func (s *Store[T]) RemoveWhere(ctx context.Context, pred func(T) bool) (int, error) {
	next := make([]T, 0, len(s.recs))
	for _, r := range s.recs {
		if !pred(r) {
			next = append(next, r)
		}
	}
	removed := len(s.recs) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store[T]) index(id record.ID) int {
	for i, r := range s.recs {
		if r.Key() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) commit(ctx context.Context, next []T) error {
	if next == nil {
		next = []T{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", s.key, err)
	}
	if err := s.p.Write(ctx, s.key, data); err != nil {
		return err
	}
	s.recs = next
	return nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
