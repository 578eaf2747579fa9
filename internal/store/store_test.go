package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestDisk(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDisk(filepath.Join(t.TempDir(), "kv"))
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	return s
}

// backends runs fn against both storage implementations.
func backends(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newTestStore(t)) })
	t.Run("diskv", func(t *testing.T) { fn(t, newTestDisk(t)) })
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != len(migrations) {
		t.Fatalf("expected user_version %d, got %d", len(migrations), version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/jast.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("focusflow-user-name", `"Sam"`); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migrations are not re-run.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.Get("focusflow-user-name")
	if err != nil {
		t.Fatal(err)
	}
	if v != `"Sam"` {
		t.Fatalf("expected persisted value, got %q", v)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "jast.db" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open("sqlite", filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatal(err)
	}
	b.Close()

	b, err = Open("diskv", filepath.Join(dir, "kv"))
	if err != nil {
		t.Fatal(err)
	}
	b.Close()

	if _, err := Open("redis", dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

// ============================================================
// Key/value
// ============================================================

func TestGetMissing(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		_, err := b.Get("focusflow-tasks")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSetGetOverwrite(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		if err := b.Set("focusflow-user-name", "Ana"); err != nil {
			t.Fatal(err)
		}
		if err := b.Set("focusflow-user-name", "Bea"); err != nil {
			t.Fatal(err)
		}
		v, err := b.Get("focusflow-user-name")
		if err != nil {
			t.Fatal(err)
		}
		if v != "Bea" {
			t.Fatalf("expected Bea, got %q", v)
		}
	})
}

func TestDelete(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		b.Set("focusflow-braindump", "[]")
		if err := b.Delete("focusflow-braindump"); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Get("focusflow-braindump"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		// Deleting again is not an error.
		if err := b.Delete("focusflow-braindump"); err != nil {
			t.Fatalf("second delete: %v", err)
		}
	})
}

func TestKeysSorted(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		b.Set("focusflow-tasks", "[]")
		b.Set("focusflow-backlog", "[]")
		b.RecordSession(60, "", time.Now())

		keys, err := b.Keys()
		if err != nil {
			t.Fatal(err)
		}
		if len(keys) != 2 {
			t.Fatalf("expected 2 keys, got %v", keys)
		}
		if keys[0] != "focusflow-backlog" || keys[1] != "focusflow-tasks" {
			t.Fatalf("unexpected order: %v", keys)
		}
	})
}

func TestJSONHelpers(t *testing.T) {
	type points struct {
		Total int `json:"total"`
	}
	backends(t, func(t *testing.T, b Backend) {
		if err := SetJSON(b, "focusflow-points", points{Total: 42}); err != nil {
			t.Fatal(err)
		}
		raw, _ := b.Get("focusflow-points")
		if raw != `{"total":42}` {
			t.Fatalf("unexpected encoding %q", raw)
		}

		var got points
		if err := GetJSON(b, "focusflow-points", &got); err != nil {
			t.Fatal(err)
		}
		if got.Total != 42 {
			t.Fatalf("expected 42, got %d", got.Total)
		}

		b.Set("focusflow-points", "{not json")
		err := GetJSON(b, "focusflow-points", &got)
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("expected decode error, got %v", err)
		}
	})
}

func TestGetString(t *testing.T) {
	s := newTestStore(t)
	if got := GetString(s, "focusflow-user-name", "Friend"); got != "Friend" {
		t.Fatalf("expected fallback, got %q", got)
	}
	s.Set("focusflow-user-name", "Kai")
	if got := GetString(s, "focusflow-user-name", "Friend"); got != "Kai" {
		t.Fatalf("expected Kai, got %q", got)
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestRecordSession(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
		fs, err := b.RecordSession(1500, "Write report", at)
		if err != nil {
			t.Fatal(err)
		}
		if fs.ID == "" {
			t.Fatal("expected an id")
		}
		if fs.Seconds != 1500 || fs.Task != "Write report" {
			t.Fatalf("unexpected session %+v", fs)
		}
		if !fs.CompletedAt.Equal(at) {
			t.Fatalf("expected %v, got %v", at, fs.CompletedAt)
		}
	})
}

func TestSessionStats(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		b.RecordSession(1500, "", day.Add(9*time.Hour))
		b.RecordSession(300, "", day.Add(14*time.Hour))
		b.RecordSession(900, "", day.Add(-time.Hour)) // previous day

		count, total, err := b.SessionStats(day, day.Add(24*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		if count != 2 {
			t.Fatalf("expected 2 sessions, got %d", count)
		}
		if total != 1800 {
			t.Fatalf("expected 1800 seconds, got %d", total)
		}
	})
}

func TestSessionStatsEmpty(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		count, total, err := b.SessionStats(time.Now().Add(-time.Hour), time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if count != 0 || total != 0 {
			t.Fatalf("expected zero stats, got %d/%d", count, total)
		}
	})
}
