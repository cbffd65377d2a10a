package memory

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	s := New()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = (%v, %v)", ok, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get("k"); !ok || v != "v1" {
		t.Fatalf("got (%q, %v)", v, ok)
	}

	// Set is a full overwrite.
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := s.Get("k"); v != "v2" {
		t.Fatalf("got %q after overwrite", v)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("key still present after delete")
	}

	// Deleting an absent key is fine.
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
}
