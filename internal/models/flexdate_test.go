package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFlexDateParsesStoredFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2024-03-15T10:30:00Z"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"bare date", `"2024-03-15"`, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"french", `"15/03/2024"`, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"firestore seconds", `{"seconds": 1710500400}`, time.Unix(1710500400, 0).UTC()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d FlexDate
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &d))
			require.False(t, d.IsZero())

			got, ok := d.Time()
			require.True(t, ok)
			require.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestFlexDateGarbageIsNotZeroButUnparseable(t *testing.T) {
	for _, raw := range []string{`"pas une date"`, `42`, `{"nested": true}`, `""`} {
		var d FlexDate
		require.NoError(t, json.Unmarshal([]byte(raw), &d))
		require.False(t, d.IsZero(), "raw %s", raw)

		_, ok := d.Time()
		require.False(t, ok, "raw %s should not parse", raw)
	}
}

func TestFlexDateZeroStates(t *testing.T) {
	var absent FlexDate
	require.True(t, absent.IsZero())
	_, ok := absent.Time()
	require.False(t, ok)

	var null FlexDate
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	require.True(t, null.IsZero())
}

// Whatever the store held must survive a read-modify-write cycle untouched,
// including values we cannot parse.
func TestFlexDateMarshalRoundTripsRawValue(t *testing.T) {
	for _, raw := range []string{`"2024-03-15"`, `{"seconds":1710500400}`, `"n'importe quoi"`} {
		var d FlexDate
		require.NoError(t, json.Unmarshal([]byte(raw), &d))

		out, err := json.Marshal(d)
		require.NoError(t, err)
		require.JSONEq(t, raw, string(out))
	}

	var absent FlexDate
	out, err := json.Marshal(absent)
	require.NoError(t, err)
	require.Equal(t, "null", string(out))
}

func TestNewFlexDate(t *testing.T) {
	d := NewFlexDate(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	got, ok := d.Time()
	require.True(t, ok)
	require.Equal(t, 2026, got.Year())
	require.Equal(t, time.August, got.Month())
}
