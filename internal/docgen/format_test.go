package docgen

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMonthYearUsesFrenchMonthNames(t *testing.T) {
	require.Equal(t, "Janvier 2025", monthYear(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "Août 2026", monthYear(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "Décembre 2024", monthYear(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestMonthBounds(t *testing.T) {
	start, end := monthBounds(time.Date(2024, 2, 17, 12, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end) // leap year

	start, end = monthBounds(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.April, start.Month())
	require.Equal(t, 30, end.Day())
}

func TestEurosFormatting(t *testing.T) {
	require.Equal(t, "10.50 €", euros(decimal.RequireFromString("10.5")))
	require.Equal(t, "0.00 €", euros(decimal.Zero))
	require.Equal(t, "1234.00 €", euros(decimal.RequireFromString("1234")))
	require.Equal(t, "770.50 euros", eurosWord(decimal.RequireFromString("770.5")))
}
