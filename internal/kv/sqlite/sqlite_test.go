package sqlite

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = (%v, %v)", ok, err)
	}

	if err := s.Set("offline_cash_expenses_7", `[{"id":"cash_1"}]`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("offline_cash_expenses_7")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if v != `[{"id":"cash_1"}]` {
		t.Fatalf("got %q", v)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k", "first"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "second"); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := s.Get("k"); v != "second" {
		t.Fatalf("got %q after overwrite", v)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("key still present after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal("deleting an absent key must not error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	// Reopening runs migrations again (no-op) and keeps the data.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if v, ok, _ := s2.Get("k"); !ok || v != "v" {
		t.Fatalf("data lost across reopen: (%q, %v)", v, ok)
	}
}
