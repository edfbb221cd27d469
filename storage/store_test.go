package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want absent", ok, err)
	}

	if err := store.Set("session", `{"username":"bob"}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	v, ok, err := store.Get("session")
	if err != nil || !ok {
		t.Fatalf("Get() after Set = ok=%v err=%v", ok, err)
	}
	if v != `{"username":"bob"}` {
		t.Fatalf("Get() = %q, want stored value", v)
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.Delete("k"); err != nil {
			t.Fatalf("Delete() #%d failed: %v", i+1, err)
		}
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Fatal("key still present after Delete")
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := store.Set("last_fetch", "1700000000000"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() reopen failed: %v", err)
	}
	v, ok, err := reopened.Get("last_fetch")
	if err != nil || !ok || v != "1700000000000" {
		t.Fatalf("reopened Get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestStoreRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to corrupt state file: %v", err)
	}

	if _, _, err := store.Get("k"); err == nil {
		t.Fatal("Get on corrupt file should report an error")
	}

	// A write rebuilds the file.
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set() on corrupt file failed: %v", err)
	}
	v, ok, err := store.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get after recovery = %q ok=%v err=%v", v, ok, err)
	}
}
