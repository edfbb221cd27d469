package models

import "time"

// Meal types accepted by the service. The wire vocabulary is Spanish and is
// preserved verbatim.
const (
	MealBreakfast = "desayuno"
	MealLunch     = "almuerzo"
	MealDinner    = "cena"
	MealSnack     = "snack"
	MealExtra     = "comida_extra"
	MealDessert   = "postre"
)

var mealTypes = []string{
	MealBreakfast, MealLunch, MealDinner, MealSnack, MealExtra, MealDessert,
}

// ValidMealType reports whether t is one of the service's meal types.
func ValidMealType(t string) bool {
	for _, m := range mealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// MealTypes returns the accepted meal type values, for help text.
func MealTypes() []string {
	out := make([]string, len(mealTypes))
	copy(out, mealTypes)
	return out
}

// Photo is one interpreted meal photo as returned by GET /photos/{username}.
// Records are owned by the service and mirrored read-only here.
type Photo struct {
	ImageURL       string  `json:"image_url"`
	Interpretation string  `json:"interpretation"`
	MealType       string  `json:"meal_type"`
	Timestamp      APITime `json:"timestamp"`
}

// DayAggregate is the per-calendar-day view the gallery renders: every photo
// taken that day plus the day's recommendation, if one exists. It is derived
// on each grouping pass and never persisted.
type DayAggregate struct {
	DateLabel           string
	Date                time.Time
	Photos              []Photo
	Recommendation      string
	RecommendationLines []string
}

// ISODate renders the aggregate's calendar day as YYYY-MM-DD in loc, the
// format the delete-by-date endpoint expects.
func (d DayAggregate) ISODate(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return d.Date.In(loc).Format("2006-01-02")
}
