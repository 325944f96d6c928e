package listing

import (
	"fmt"
	"time"
)

// Candidate is a performance as read from the listing, before it is resolved
// against storage.
type Candidate struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int

	// Location is the free-text venue; empty when the listing omits it.
	Location string
	// Category is the free-text category after remapping.
	Category string
	// HasCategory is false when the listing carries no category marker.
	HasCategory bool

	Title string
	// Description is empty, not absent, when the listing has none.
	Description string

	// Ticketed records whether a populated ticket link was present.
	Ticketed bool
}

// Begin combines the date and time fields into an instant in loc.
//
// A wall-clock time that does not exist in loc (skipped by a daylight-saving
// jump) is rejected. A wall-clock time that occurs twice resolves to the earlier
// instant.
func (c Candidate) Begin(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, loc)
	if t.Year() != c.Year || t.Month() != c.Month || t.Day() != c.Day ||
		t.Hour() != c.Hour || t.Minute() != c.Minute {
		return time.Time{}, &MalformedRecordError{
			Field: "begin",
			Text:  fmt.Sprintf("%04d-%02d-%02d %02d:%02d", c.Year, int(c.Month), c.Day, c.Hour, c.Minute),
		}
	}

	// Same wall clock one hour earlier means the time is ambiguous.
	if earlier := t.Add(-time.Hour); sameWallClock(earlier, t) {
		return earlier, nil
	}
	return t, nil
}

func sameWallClock(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay() &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute()
}
