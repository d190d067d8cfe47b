// Package dateparse normalizes user-facing date text to the canonical ISO
// YYYY-MM-DD form used as the daily_data primary key. The legacy DD-MM-YYYY
// format is accepted at the boundary but never stored going forward.
package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/domain"
)

// ISO is the canonical storage layout for dates.
const ISO = "2006-01-02"

var layouts = []string{
	ISO,
	"02-01-2006",      // legacy DD-MM-YYYY
	"2 January 2006",  // "26 July 2024"
	"January 2, 2006", // "July 26, 2024"
	"January 2006",    // "July 2024" -> first of month
}

// Normalize parses free-form date text and returns the ISO date string.
func Normalize(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("%w: empty text", domain.ErrBadDate)
	}
	// Month names are matched case-insensitively ("july 2024").
	title := titleCaseMonths(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, title); err == nil {
			return t.Format(ISO), nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrBadDate, text)
}

func titleCaseMonths(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		trimmed := strings.TrimSuffix(f, ",")
		lower := strings.ToLower(trimmed)
		if _, ok := monthNames[lower]; ok {
			fields[i] = strings.ToUpper(lower[:1]) + lower[1:] + strings.TrimPrefix(f, trimmed)
		}
	}
	return strings.Join(fields, " ")
}

var monthNames = map[string]struct{}{
	"january": {}, "february": {}, "march": {}, "april": {},
	"may": {}, "june": {}, "july": {}, "august": {},
	"september": {}, "october": {}, "november": {}, "december": {},
}
