package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/record"
)

type testConfig struct {
	path   string
	driver Driver
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Driver() Driver {
	return t.driver
}

func todo(id, text string) record.Todo {
	return record.Todo{ID: record.ID(id), Text: text}
}

func TestStoreMissingKeyLoadsEmpty(t *testing.T) {
	s := New[record.Todo](NewMemory(nil), record.KindTodo)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", s.Len())
	}
}

func TestStoreCorruptBlobLoadsEmpty(t *testing.T) {
	mem := NewMemory(map[string]string{"todos": "{not json"})
	s := New[record.Todo](mem, record.KindTodo)
	err := s.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after corrupt blob, got %d", s.Len())
	}

	// The first mutation replaces the corrupt blob.
	if err := s.Append(context.Background(), todo("a", "x")); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := mem.Read(context.Background(), "todos")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got []record.Todo
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("blob not valid json after append: %v", err)
	}
	if len(got) != 1 || got[0].Text != "x" {
		t.Fatalf("unexpected blob %s", raw)
	}
}

func TestStoreSaveEmptyWritesArray(t *testing.T) {
	mem := NewMemory(nil)
	s := New[record.Milestone](mem, record.KindMilestone)
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := mem.Read(context.Background(), "milestones")
	if string(raw) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestStoreMutationsPreserveOrder(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(nil)
	s := New[record.Todo](mem, record.KindTodo)

	if err := s.Append(ctx, todo("a", "one"), todo("b", "two"), todo("c", "three")); err != nil {
		t.Fatalf("append: %v", err)
	}
	updated, err := s.Update(ctx, "b", func(td *record.Todo) error {
		td.Completed = true
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected returned record to be completed")
	}
	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	reloaded := New[record.Todo](mem, record.KindTodo)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	all := reloaded.All()
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "c" {
		t.Fatalf("unexpected order after reload: %+v", all)
	}
	if !all[0].Completed {
		t.Fatalf("expected b to stay completed after reload")
	}
}

func TestStoreUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(nil)
	s := New[record.Todo](mem, record.KindTodo)
	if err := s.Append(ctx, todo("a", "one")); err != nil {
		t.Fatalf("append: %v", err)
	}
	writes := mem.Writes()

	if _, err := s.Update(ctx, "zzz", func(*record.Todo) error { return nil }); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("update: expected ErrNoRecord, got %v", err)
	}
	if err := s.Remove(ctx, "zzz"); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("remove: expected ErrNoRecord, got %v", err)
	}
	if mem.Writes() != writes {
		t.Fatalf("expected no writes for unknown id, got %d more", mem.Writes()-writes)
	}
}

func TestStoreFailedMutateKeepsMemory(t *testing.T) {
	ctx := context.Background()
	s := New[record.Todo](NewMemory(nil), record.KindTodo)
	if err := s.Append(ctx, todo("a", "one")); err != nil {
		t.Fatalf("append: %v", err)
	}
	boom := errors.New("boom")
	_, err := s.Update(ctx, "a", func(td *record.Todo) error {
		td.Text = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got, _ := s.Get("a"); got.Text != "one" {
		t.Fatalf("expected text to stay %q, got %q", "one", got.Text)
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New[record.Todo](NewMemory(nil), record.KindTodo)
	if err := s.Append(ctx, todo("a", "one")); err != nil {
		t.Fatalf("append: %v", err)
	}
	all := s.All()
	all[0].Text = "mutated"
	if got, _ := s.Get("a"); got.Text != "one" {
		t.Fatalf("All leaked internal slice")
	}
}

func TestStoreRemoveWhere(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(nil)
	s := New[record.Todo](mem, record.KindTodo)
	done := todo("b", "two")
	done.Completed = true
	if err := s.Append(ctx, todo("a", "one"), done); err != nil {
		t.Fatalf("append: %v", err)
	}
	n, err := s.RemoveWhere(ctx, func(td record.Todo) bool { return td.Completed })
	if err != nil || n != 1 {
		t.Fatalf("expected 1 removed, got %d (%v)", n, err)
	}
	writes := mem.Writes()
	n, err = s.RemoveWhere(ctx, func(td record.Todo) bool { return td.Completed })
	if err != nil || n != 0 {
		t.Fatalf("expected 0 removed, got %d (%v)", n, err)
	}
	if mem.Writes() != writes {
		t.Fatalf("expected no write when nothing matched")
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	for _, driver := range []Driver{DriverDiskv, DriverSQLite} {
		t.Run(string(driver), func(t *testing.T) {
			ctx := context.Background()
			p, err := Load(testConfig{path: t.TempDir(), driver: driver})
			if err != nil {
				t.Fatalf("load persistence: %v", err)
			}
			defer p.Close()

			if _, err := p.Read(ctx, "countdowns"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			s := New[record.Countdown](p, record.KindCountdown)
			c := record.Countdown{ID: "c1", Name: "Launch", Date: record.NewDate(2030, time.January, 5)}
			if err := s.Append(ctx, c); err != nil {
				t.Fatalf("append: %v", err)
			}

			again := New[record.Countdown](p, record.KindCountdown)
			if err := again.Load(ctx); err != nil {
				t.Fatalf("reload: %v", err)
			}
			got, ok := again.Get("c1")
			if !ok {
				t.Fatalf("countdown c1 missing after reload")
			}
			if got.Date.String() != "2030-01-05" {
				t.Fatalf("expected date 2030-01-05, got %s", got.Date)
			}

			if keys := p.Keys(ctx); len(keys) != 1 || keys[0] != "countdowns" {
				t.Fatalf("unexpected keys %v", keys)
			}
			if err := p.Erase(ctx, "countdowns"); err != nil {
				t.Fatalf("erase: %v", err)
			}
			if _, err := p.Read(ctx, "countdowns"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after erase, got %v", err)
			}
		})
	}
}

func TestLoadUnknownDriver(t *testing.T) {
	if _, err := Load(testConfig{path: t.TempDir(), driver: "bogus"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestParseDriver(t *testing.T) {
	tests := map[string]Driver{
		"":        DriverDiskv,
		"diskv":   DriverDiskv,
		" SQLite": DriverSQLite,
	}
	for in, want := range tests {
		got, err := ParseDriver(in)
		if err != nil {
			t.Fatalf("ParseDriver(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDriver(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseDriver("redis"); err == nil {
		t.Fatal("expected error for redis")
	}
}

func TestStoreLoadLeavesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(map[string]string{"todos": "{not json"})
	s := New[record.Todo](mem, record.KindTodo)
	if err := s.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if mem.Writes() != 0 {
		t.Fatalf("load wrote %d times", mem.Writes())
	}
	raw, _ := mem.Read(ctx, "todos")
	if string(raw) != "{not json" {
		t.Fatalf("corrupt blob replaced with %s", raw)
	}
}

func openBackend(t *testing.T, driver Driver, dir string) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: dir, driver: driver})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestBackendsSeeWritesFromAnotherInstance(t *testing.T) {
	for _, driver := range []Driver{DriverDiskv, DriverSQLite} {
		t.Run(string(driver), func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			a := New[record.Todo](openBackend(t, driver, dir), record.KindTodo)
			b := New[record.Todo](openBackend(t, driver, dir), record.KindTodo)

			if err := a.Append(ctx, todo("t1", "first")); err != nil {
				t.Fatalf("append: %v", err)
			}
			if err := b.Load(ctx); err != nil {
				t.Fatalf("load: %v", err)
			}
			if b.Len() != 1 {
				t.Fatalf("expected 1 todo, got %d", b.Len())
			}

			if err := a.Append(ctx, todo("t2", "second")); err != nil {
				t.Fatalf("append: %v", err)
			}
			if err := b.Load(ctx); err != nil {
				t.Fatalf("load: %v", err)
			}
			if b.Len() != 2 {
				t.Fatalf("stale read: expected 2 todos, got %d", b.Len())
			}
		})
	}
}
