package utils

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
	layoutDateTime = "2006-01-02 15:04:05"
)

var (
	refMu  sync.RWMutex
	refLoc *time.Location
)

// ReferenceLocation returns the community's reference timezone. All
// "today" decisions are made in this zone. Defaults to Europe/Oslo
// until SetReferenceLocation installs the configured zone.
func ReferenceLocation() *time.Location {
	refMu.RLock()
	loc := refLoc
	refMu.RUnlock()
	if loc != nil {
		return loc
	}

	refMu.Lock()
	defer refMu.Unlock()
	if refLoc == nil {
		loc, err := time.LoadLocation("Europe/Oslo")
		if err != nil {
			log.Printf("warning: could not load Europe/Oslo tzdata, using CET offset: %v", err)
			loc = time.FixedZone("CET", 3600)
		}
		refLoc = loc
	}
	return refLoc
}

// SetReferenceLocation installs the timezone named in configuration.
// An empty name keeps the current zone.
func SetReferenceLocation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	refMu.Lock()
	refLoc = loc
	refMu.Unlock()
	return nil
}

// ParseFlexible parses a date or datetime string from the bestillinger
// tables. Values may be plain dates, naive datetimes, or carry an
// explicit offset. Naive values are interpreted as wall-clock time in
// loc; values with an offset are converted to loc.
func ParseFlexible(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	if loc == nil {
		loc = ReferenceLocation()
	}

	// Offset-carrying layouts first: the instant must be preserved.
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02 15:04:05Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}

	// Naive layouts: attach loc directly.
	for _, layout := range []string{"2006-01-02T15:04:05", layoutDateTime, layoutDate} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date value %q", s)
}

// ParseDate parses YYYY-MM-DD in the reference timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), ReferenceLocation())
}

// ParseClock parses HH:MM:SS (or HH:MM) into a time-of-day.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutTime, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// DayStart truncates t to midnight in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = ReferenceLocation()
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayStart(a, loc).Equal(DayStart(b, loc))
}

// FormatDate formats time to YYYY-MM-DD in the reference timezone.
func FormatDate(t time.Time) string {
	return t.In(ReferenceLocation()).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in the reference timezone.
func FormatDateTime(t time.Time) string {
	return t.In(ReferenceLocation()).Format(layoutDateTime)
}

// Now returns current time in the reference timezone.
func Now() time.Time {
	return time.Now().In(ReferenceLocation())
}
