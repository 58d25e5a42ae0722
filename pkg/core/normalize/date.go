package normalize

import (
	"strings"
	"time"
)

// dateFormats is the accepted set, tried in priority order. Day-first layouts
// come before month-first so ambiguous numeric dates resolve consistently.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
	"2006-01",
	"01/2006",
}

// parseDate tries each accepted format in order. Failure is per-row, not
// fatal for the document.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Timestamps from spreadsheet cells: keep the date part.
	if i := strings.IndexAny(s, "T "); i > 0 && strings.Count(s, ":") > 0 {
		s = s[:i]
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
