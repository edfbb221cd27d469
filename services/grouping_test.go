package services

import (
	"encoding/json"
	"testing"
	"time"

	"smartfitness/models"
)

func photoAt(ts time.Time, meal string) models.Photo {
	return models.Photo{
		ImageURL:  "https://img.example.com/" + ts.Format("20060102-1504") + ".jpg",
		MealType:  meal,
		Timestamp: models.APITime{Time: ts},
	}
}

func recAt(ts time.Time, final string) models.Recommendation {
	return models.Recommendation{
		FinalRecommendation: final,
		Timestamp:           models.APITime{Time: ts},
	}
}

func TestGroupByDayTwoDayScenario(t *testing.T) {
	photos := []models.Photo{
		photoAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), models.MealBreakfast),
		photoAt(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), models.MealLunch),
		photoAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), models.MealBreakfast),
	}
	recs := []models.Recommendation{
		recAt(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), "Eat more fiber"),
	}

	days := GroupByDay(photos, recs, time.UTC)
	if len(days) != 2 {
		t.Fatalf("GroupByDay returned %d days, want 2", len(days))
	}

	if days[0].DateLabel != "1/2/2024" {
		t.Fatalf("days[0].DateLabel = %q, want most recent day first (1/2/2024)", days[0].DateLabel)
	}
	if len(days[0].Photos) != 1 || days[0].Recommendation != "" {
		t.Fatalf("days[0] = %d photos, rec %q; want 1 photo and no recommendation", len(days[0].Photos), days[0].Recommendation)
	}

	if days[1].DateLabel != "1/1/2024" {
		t.Fatalf("days[1].DateLabel = %q, want 1/1/2024", days[1].DateLabel)
	}
	if len(days[1].Photos) != 2 {
		t.Fatalf("days[1] has %d photos, want 2", len(days[1].Photos))
	}
	if days[1].Recommendation != "Eat more fiber" {
		t.Fatalf("days[1].Recommendation = %q, want %q", days[1].Recommendation, "Eat more fiber")
	}
	// Input order preserved within the day.
	if days[1].Photos[0].MealType != models.MealBreakfast || days[1].Photos[1].MealType != models.MealLunch {
		t.Fatal("photos within a day are not in input order")
	}
}

func TestGroupByDaySameDayDifferentTimesShareLabel(t *testing.T) {
	photos := []models.Photo{
		photoAt(time.Date(2024, 3, 5, 0, 15, 0, 0, time.UTC), models.MealBreakfast),
		photoAt(time.Date(2024, 3, 5, 23, 45, 0, 0, time.UTC), models.MealDinner),
	}
	days := GroupByDay(photos, nil, time.UTC)
	if len(days) != 1 {
		t.Fatalf("GroupByDay returned %d days, want 1", len(days))
	}
	if len(days[0].Photos) != 2 {
		t.Fatalf("day has %d photos, want 2", len(days[0].Photos))
	}
}

func TestGroupByDayRecommendationWithoutPhotosIsDropped(t *testing.T) {
	photos := []models.Photo{
		photoAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), models.MealBreakfast),
	}
	recs := []models.Recommendation{
		recAt(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), "Drink more water"),
	}

	days := GroupByDay(photos, recs, time.UTC)
	if len(days) != 1 {
		t.Fatalf("GroupByDay returned %d days, want 1", len(days))
	}
	for _, d := range days {
		if d.DateLabel == "1/3/2024" {
			t.Fatal("recommendation without photos produced an aggregate")
		}
	}
}

func TestGroupByDayEmptyPhotosYieldsEmptyOutput(t *testing.T) {
	recs := []models.Recommendation{
		recAt(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), "anything"),
	}
	if days := GroupByDay(nil, recs, time.UTC); len(days) != 0 {
		t.Fatalf("GroupByDay(nil photos) returned %d days, want 0", len(days))
	}
}

func TestGroupByDayLastRecommendationWins(t *testing.T) {
	photos := []models.Photo{
		photoAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), models.MealBreakfast),
	}
	recs := []models.Recommendation{
		recAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "first"),
		recAt(time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC), "second"),
	}
	days := GroupByDay(photos, recs, time.UTC)
	if len(days) != 1 || days[0].Recommendation != "second" {
		t.Fatalf("Recommendation = %q, want the later one in input order", days[0].Recommendation)
	}
}

func TestGroupByDayKeepsWallClockDayForNaiveTimestamps(t *testing.T) {
	// A client west of UTC: a zone-less service timestamp just after
	// midnight must stay on its own calendar day, as it did in the app.
	origLocal := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = origLocal }()

	var photo models.Photo
	raw := `{"image_url":"https://img/1.jpg","interpretation":"tostadas","meal_type":"desayuno","timestamp":"2024-01-01T00:30:00"}`
	if err := json.Unmarshal([]byte(raw), &photo); err != nil {
		t.Fatalf("Unmarshal photo failed: %v", err)
	}

	days := GroupByDay([]models.Photo{photo}, nil, time.Local)
	if len(days) != 1 {
		t.Fatalf("GroupByDay returned %d days, want 1", len(days))
	}
	if days[0].DateLabel != "1/1/2024" {
		t.Fatalf("DateLabel = %q, want 1/1/2024 (naive timestamp shifted across midnight)", days[0].DateLabel)
	}
	// The same day must resolve to the matching ISO date for deletes.
	if got := days[0].ISODate(time.Local); got != "2024-01-01" {
		t.Fatalf("ISODate = %q, want 2024-01-01", got)
	}
}

func TestGroupByDayIsDeterministic(t *testing.T) {
	photos := []models.Photo{
		photoAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), models.MealBreakfast),
		photoAt(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), models.MealLunch),
		photoAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), models.MealBreakfast),
	}
	recs := []models.Recommendation{
		recAt(time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), "more greens"),
	}

	a := GroupByDay(photos, recs, time.UTC)
	b := GroupByDay(photos, recs, time.UTC)
	if len(a) != len(b) {
		t.Fatalf("runs disagree on day count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].DateLabel != b[i].DateLabel || len(a[i].Photos) != len(b[i].Photos) || a[i].Recommendation != b[i].Recommendation {
			t.Fatalf("runs disagree at day %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
