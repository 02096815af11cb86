package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// FlexDate carries a date field exactly as the entity store held it. Records
// imported from older versions of the app contain a mix of RFC 3339 strings,
// bare dates, French dd/MM/yyyy strings, Firestore-style {"seconds": n}
// objects, nulls and the occasional piece of garbage. The raw value is kept
// so that malformed dates degrade at render time instead of failing a scan.
type FlexDate struct {
	raw json.RawMessage
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"02/01/2006",
}

func NewFlexDate(t time.Time) FlexDate {
	b, _ := json.Marshal(t.Format(time.RFC3339))
	return FlexDate{raw: b}
}

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	d.raw = append(d.raw[:0], b...)
	return nil
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// IsZero reports whether the field was absent or null.
func (d FlexDate) IsZero() bool {
	return len(d.raw) == 0 || bytes.Equal(d.raw, []byte("null"))
}

// Time parses the stored value. ok is false for unparseable values; callers
// decide how to present those.
func (d FlexDate) Time() (t time.Time, ok bool) {
	if d.IsZero() {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(d.raw, &s); err == nil {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	// Firestore timestamp object shape.
	var ts struct {
		Seconds *int64 `json:"seconds"`
	}
	if err := json.Unmarshal(d.raw, &ts); err == nil && ts.Seconds != nil {
		return time.Unix(*ts.Seconds, 0).UTC(), true
	}

	return time.Time{}, false
}
