package docgen

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

const (
	dateMissing = "N/A"
	dateInvalid = "Date invalide"
)

var frMonths = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// formatDate renders dd/MM/yyyy, or the placeholder texts for absent and
// unparseable values. Never panics, whatever the store held.
func formatDate(d models.FlexDate) string {
	if d.IsZero() {
		return dateMissing
	}
	t, ok := d.Time()
	if !ok {
		return dateInvalid
	}
	return t.Format("02/01/2006")
}

func formatTime(t time.Time) string {
	return t.Format("02/01/2006")
}

// monthYear renders "Août 2026" for the receipt period box.
func monthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", frMonths[t.Month()-1], t.Year())
}

// euros formats a monetary amount to exactly two decimals.
func euros(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// eurosWord is the in-sentence spelling used by legal paragraphs.
func eurosWord(d decimal.Decimal) string {
	return d.StringFixed(2) + " euros"
}

// monthBounds returns the first and last day of the period month.
func monthBounds(period time.Time) (time.Time, time.Time) {
	start := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, period.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
