// Package normalize turns raw spreadsheet rows into typed domain
// records. The source sheets are loosely structured; bad cells degrade
// per-field and bad rows are skipped, never fatal.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Number parses a generic numeric cell (quantity, price, total).
// Whitespace is stripped and comma decimal separators are converted to
// periods. Empty or unparsable cells degrade to 0 — in this domain a
// missing value is indistinguishable from a true zero.
func Number(cell string) float64 {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\u00a0' {
			return -1
		}
		return r
	}, strings.TrimSpace(cell))
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return 0
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// Odometer parses an odometer cell. Stricter than Number: a record
// whose odometer cannot be read cannot be placed on the maintenance
// timeline, so the caller must discard the whole row. Zero is also
// rejected — it is not a meaningful reading.
func Odometer(cell string) (int, bool) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\u00a0' || r == ',' {
			return -1
		}
		return r
	}, strings.TrimSpace(cell))
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}

// dateLayouts tried by Date, in order. Mirrors the source data: full
// ISO timestamps, dotted day-first dates, dashed ISO dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"2006-1-2",
}

// Date parses a date cell. The first layout that parses wins and the
// value is normalized to an ISO calendar date. When nothing parses the
// trimmed raw string is returned with ok=false; downstream day-delta
// math must check the flag instead of inheriting an invalid value.
func Date(cell string) (iso string, ok bool) {
	raw := strings.TrimSpace(cell)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return raw, false
}

// DaysBetween returns the whole days elapsed from an ISO date to the
// reference date. ok=false when the date string is not a valid ISO
// calendar date.
func DaysBetween(isoDate string, ref time.Time) (int, bool) {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return 0, false
	}
	return int(ref.Sub(t).Hours() / 24), true
}

// TimeLabel renders an elapsed-days value as the human label used in
// the UI: "{years}р {months}міс" with zero components dropped, or
// "{days}дн" when under a month.
func TimeLabel(days int) string {
	years := days / 365
	months := (days % 365) / 30

	var b strings.Builder
	if years > 0 {
		b.WriteString(strconv.Itoa(years))
		b.WriteString("р ")
	}
	if months > 0 {
		b.WriteString(strconv.Itoa(months))
		b.WriteString("міс")
	}
	if b.Len() == 0 {
		return strconv.Itoa(days) + "дн"
	}
	return strings.TrimSpace(b.String())
}
