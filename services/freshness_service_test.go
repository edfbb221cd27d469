package services

import (
	"testing"
	"time"

	"smartfitness/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return store
}

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestFreshness(t *testing.T, store *storage.Store) (*FreshnessService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewFreshnessService(store)
	svc.now = clock.now
	return svc, clock
}

func TestShouldRefetchOnFreshStore(t *testing.T) {
	svc, _ := newTestFreshness(t, newTestStore(t))
	if !svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = false with no fetch recorded, want true")
	}
}

func TestMutationWithoutFetchKeepsRefetchRequired(t *testing.T) {
	svc, _ := newTestFreshness(t, newTestStore(t))
	svc.RecordMutation()
	if !svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = false after first mutation with no fetch, want true")
	}
}

func TestFetchMakesCacheAuthoritative(t *testing.T) {
	svc, _ := newTestFreshness(t, newTestStore(t))
	svc.RecordMutation()
	svc.RecordFetch()
	if svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = true after fetch newer than mutation, want false")
	}
}

func TestMutationAfterFetchInvalidatesUntilNextFetch(t *testing.T) {
	svc, _ := newTestFreshness(t, newTestStore(t))
	svc.RecordFetch()
	svc.RecordMutation()
	if !svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = false after mutation newer than fetch, want true")
	}
	svc.RecordFetch()
	if svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = true after the next fetch, want false")
	}
}

func TestMarkersSurviveRestart(t *testing.T) {
	store := newTestStore(t)
	svc, _ := newTestFreshness(t, store)
	svc.RecordFetch()

	// New service over the same store simulates a process restart.
	restarted := NewFreshnessService(store)
	if restarted.ShouldRefetch() {
		t.Fatal("restarted ShouldRefetch() = true, want false (fetch marker persisted)")
	}

	svc.RecordMutation()
	restarted = NewFreshnessService(store)
	if !restarted.ShouldRefetch() {
		t.Fatal("restarted ShouldRefetch() = false, want true (mutation marker persisted)")
	}
}

func TestMalformedMarkerTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Set("last_fetch", "not a number"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	svc := NewFreshnessService(store)
	if !svc.ShouldRefetch() {
		t.Fatal("ShouldRefetch() = false with malformed fetch marker, want true")
	}
}
