package services

import (
	"encoding/json"
	"sync"
	"time"

	"smartfitness/logger"
	"smartfitness/models"
	"smartfitness/storage"
)

// dayLabelLayout matches the date labels the mobile app showed
// (month/day/year, no leading zeros).
const dayLabelLayout = "1/2/2006"

const gallerySnapshotKey = "gallery_snapshot"

// GroupByDay turns the flat photo and recommendation collections into
// per-calendar-day aggregates, most recent day first.
//
// Each record's day is its timestamp formatted in loc. Photos keep their
// input order within a day; aggregates are created in discovery order and
// reversed at the end, which yields newest-first because the service
// delivers photos chronologically. A recommendation attaches only to a day
// that already has photos; when several share a day the last one wins.
func GroupByDay(photos []models.Photo, recs []models.Recommendation, loc *time.Location) []models.DayAggregate {
	if loc == nil {
		loc = time.Local
	}

	byLabel := make(map[string]int)
	var days []models.DayAggregate

	for _, photo := range photos {
		label := photo.Timestamp.In(loc).Format(dayLabelLayout)
		idx, ok := byLabel[label]
		if !ok {
			days = append(days, models.DayAggregate{
				DateLabel: label,
				Date:      photo.Timestamp.Time,
			})
			idx = len(days) - 1
			byLabel[label] = idx
		}
		days[idx].Photos = append(days[idx].Photos, photo)
	}

	for _, rec := range recs {
		label := rec.Timestamp.In(loc).Format(dayLabelLayout)
		if idx, ok := byLabel[label]; ok {
			days[idx].Recommendation = rec.FinalRecommendation
			days[idx].RecommendationLines = rec.RecommendationLines
		}
	}

	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// gallerySnapshot is the raw fetched state cached between runs. Only the
// source collections are stored; the day view is always re-derived.
type gallerySnapshot struct {
	Photos          []models.Photo          `json:"photos"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// GalleryService fetches the photo history and recommendations, groups them
// into the day view, and reuses the cached result as long as the freshness
// markers say it is still authoritative.
type GalleryService struct {
	api       *APIClient
	store     *storage.Store
	freshness *FreshnessService
	loc       *time.Location
}

func NewGalleryService(api *APIClient, store *storage.Store, freshness *FreshnessService, loc *time.Location) *GalleryService {
	if loc == nil {
		loc = time.Local
	}
	return &GalleryService{api: api, store: store, freshness: freshness, loc: loc}
}

// Refresh fetches photos and recommendations (concurrently, awaited
// jointly) and rebuilds the day view. The fetch marker is recorded only
// when both collections loaded, so a partial failure keeps the cache
// invalid and the next load retries.
func (s *GalleryService) Refresh(username string) ([]models.DayAggregate, error) {
	var (
		wg     sync.WaitGroup
		photos []models.Photo
		recs   []models.Recommendation
		perr   error
		rerr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		photos, perr = s.api.FetchPhotos(username)
	}()
	go func() {
		defer wg.Done()
		recs, rerr = s.api.FetchRecommendations(username)
	}()
	wg.Wait()

	if perr != nil {
		return nil, perr
	}
	if rerr != nil {
		return nil, rerr
	}

	s.saveSnapshot(gallerySnapshot{Photos: photos, Recommendations: recs})
	s.freshness.RecordFetch()
	return GroupByDay(photos, recs, s.loc), nil
}

// Load returns the day view, refetching only when the freshness cache
// demands it or no usable snapshot exists.
func (s *GalleryService) Load(username string) ([]models.DayAggregate, error) {
	if !s.freshness.ShouldRefetch() {
		if snap, ok := s.loadSnapshot(); ok {
			return GroupByDay(snap.Photos, snap.Recommendations, s.loc), nil
		}
	}
	return s.Refresh(username)
}

// DayDetail returns the aggregate for one date label.
func (s *GalleryService) DayDetail(username, label string) (*models.DayAggregate, error) {
	days, err := s.Load(username)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].DateLabel == label {
			return &days[i], nil
		}
	}
	return nil, &models.NotFoundError{Resource: "day " + label}
}

// ShouldRefetch exposes the freshness decision for callers that want to
// show whether the next load will hit the network.
func (s *GalleryService) ShouldRefetch() bool {
	return s.freshness.ShouldRefetch()
}

func (s *GalleryService) saveSnapshot(snap gallerySnapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		logger.Warning("could not serialize gallery snapshot: %v", err)
		return
	}
	if err := s.store.Set(gallerySnapshotKey, string(raw)); err != nil {
		logger.Warning("could not persist gallery snapshot: %v", err)
	}
}

func (s *GalleryService) loadSnapshot() (gallerySnapshot, bool) {
	var snap gallerySnapshot
	raw, ok, err := s.store.Get(gallerySnapshotKey)
	if err != nil || !ok {
		return snap, false
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		logger.Warning("gallery snapshot is malformed, refetching: %v", err)
		return snap, false
	}
	return snap, true
}
