package ingest

import (
	"strconv"
	"strings"
	"time"
)

// parseFileDate accepts M/D/YY, M/D/YYYY and ISO dates. Two-digit years are
// in the 2000s. An empty value is a missing date, not a bad one.
func parseFileDate(s string) (date *time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, true
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	switch len(parts[2]) {
	case 2:
		year += 2000
	case 4:
	default:
		return nil, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 2/30 into March; reject instead.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil, false
	}
	return &t, true
}
