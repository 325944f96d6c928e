package listing

import (
	"fmt"
	"time"
)

// Window is one month of the published schedule.
type Window struct {
	Year  int
	Month time.Month
}

// String returns the window as YYYY-MM.
func (w Window) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// Next returns the following month.
func (w Window) Next() Window {
	if w.Month == time.December {
		return Window{Year: w.Year + 1, Month: time.January}
	}
	return Window{Year: w.Year, Month: w.Month + 1}
}

// Windows returns the current and the next month for now, as seen in loc.
func Windows(now time.Time, loc *time.Location) []Window {
	if loc != nil {
		now = now.In(loc)
	}
	current := Window{Year: now.Year(), Month: now.Month()}
	return []Window{current, current.Next()}
}

// monthSlugs are the month names the primary listing endpoint expects.
var monthSlugs = [...]string{
	"",
	"januar",
	"februar",
	"marz",
	"april",
	"mai",
	"juni",
	"juli",
	"august",
	"september",
	"oktober",
	"november",
	"dezember",
}

// MonthSlug returns the listing endpoint's name for the window's month.
func (w Window) MonthSlug() string {
	if w.Month < time.January || w.Month > time.December {
		return ""
	}
	return monthSlugs[w.Month]
}
