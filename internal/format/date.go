package format

import (
	"fmt"
	"math"
	"time"

	"github.com/goodsign/monday"
)

const day = 24 * time.Hour

// DaysBetween is the absolute distance between a and b in whole days,
// rounded to the nearest day.
func DaysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(math.Round(float64(d) / float64(day)))
}

// DateLabel describes when a movement happened relative to now: "today",
// "yesterday", "N days ago" up to ten days, and the locale's numeric date
// after that. now must be read from the clock on every call.
func DateLabel(t, now time.Time, locale string) string {
	switch days := DaysBetween(now, t); {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days <= 10:
		return fmt.Sprintf("%d days ago", days)
	default:
		return Date(t, locale)
	}
}

// Date renders t as the locale's numeric day, month and year.
func Date(t time.Time, locale string) string {
	rules, _ := rulesFor(locale)
	return t.Format(rules.date)
}

// DateTime renders the "as of" label shown after login with localized
// weekday and month names.
func DateTime(t time.Time, locale string) string {
	rules, tag := rulesFor(locale)
	return monday.Format(t, rules.dateTime, mondayLocale(tag))
}

// Timer renders remaining seconds as MM:SS.
func Timer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
