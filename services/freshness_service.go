package services

import (
	"strconv"
	"time"

	"smartfitness/logger"
	"smartfitness/storage"
)

const (
	lastMutationKey = "last_update"
	lastFetchKey    = "last_fetch"
)

// FreshnessService decides when the cached gallery must be refetched. It
// keeps two markers: the last local mutation (upload, delete, save) and the
// last successful full fetch. Two independent markers instead of a dirty
// flag means a mutation site only ever calls RecordMutation and nothing has
// to remember to reset anything.
//
// Markers are persisted immediately; a write failure degrades to an
// in-memory marker for the rest of the process.
type FreshnessService struct {
	store        *storage.Store
	lastMutation time.Time
	lastFetch    time.Time
	now          func() time.Time
}

func NewFreshnessService(store *storage.Store) *FreshnessService {
	s := &FreshnessService{store: store, now: time.Now}
	s.lastMutation = s.restore(lastMutationKey)
	s.lastFetch = s.restore(lastFetchKey)
	return s
}

// RecordMutation marks that server-side state changed on our behalf.
func (s *FreshnessService) RecordMutation() {
	s.lastMutation = s.now()
	s.persist(lastMutationKey, s.lastMutation)
}

// RecordFetch marks a fully successful gallery refetch. Callers must not
// record partial or failed fetches.
func (s *FreshnessService) RecordFetch() {
	s.lastFetch = s.now()
	s.persist(lastFetchKey, s.lastFetch)
}

// ShouldRefetch reports whether cached gallery data can no longer be
// trusted: no fetch has happened yet, or a mutation is strictly newer than
// the last fetch.
func (s *FreshnessService) ShouldRefetch() bool {
	if s.lastFetch.IsZero() {
		return true
	}
	return !s.lastMutation.IsZero() && s.lastMutation.After(s.lastFetch)
}

func (s *FreshnessService) restore(key string) time.Time {
	raw, ok, err := s.store.Get(key)
	if err != nil {
		logger.Warning("could not read freshness marker %s: %v", key, err)
		return time.Time{}
	}
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warning("freshness marker %s is malformed, ignoring", key)
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func (s *FreshnessService) persist(key string, t time.Time) {
	if err := s.store.Set(key, strconv.FormatInt(t.UnixMilli(), 10)); err != nil {
		logger.Warning("could not persist freshness marker %s: %v", key, err)
	}
}
