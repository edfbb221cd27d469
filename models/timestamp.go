package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// The service emits ISO-ish timestamps that are not always strict RFC 3339
// (FastAPI drops the zone suffix on naive datetimes), so decoding tries a
// few layouts before giving up. Zone-less layouts are interpreted as local
// wall-clock time, matching how the mobile app's Date parsing labeled days.
var apiTimeLayouts = []struct {
	layout string
	naive  bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.999999", true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02", true},
}

// APITime is a time.Time that tolerates the service's timestamp variants.
// Malformed timestamps fail decoding at the API-client boundary instead of
// leaking into the grouping logic.
type APITime struct {
	time.Time
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, l := range apiTimeLayouts {
		var parsed time.Time
		var err error
		if l.naive {
			parsed, err = time.ParseInLocation(l.layout, s, time.Local)
		} else {
			parsed, err = time.Parse(l.layout, s)
		}
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}
