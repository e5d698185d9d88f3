package hours

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayOf converts a time.Weekday, which starts on Sunday.
func WeekdayOf(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % DaysPerWeek)
}

// At returns the weekday and "HH:MM" clock of t in its own location.
func At(t time.Time) (Weekday, string) {
	return WeekdayOf(t.Weekday()), FormatClock(t.Hour()*60 + t.Minute())
}

// ResolveMoment turns a day and clock as typed on the command line into a
// weekday and canonical clock. Besides three-letter names, day accepts "today"
// and "tomorrow"; clock accepts "now". Both are case-insensitive and relative
// to now.
func ResolveMoment(day, clock string, now time.Time) (Weekday, string, error) {
	today, current := At(now)

	var d Weekday
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "", "today":
		d = today
	case "tomorrow":
		d = today.Next()
	default:
		var err error
		if d, err = LookupDay(day); err != nil {
			return 0, "", err
		}
	}

	switch c := strings.ToLower(strings.TrimSpace(clock)); c {
	case "", "now":
		return d, current, nil
	default:
		m, err := ParseClock(c)
		if err != nil {
			return 0, "", err
		}
		if m >= MinutesPerDay {
			return 0, "", fmt.Errorf("%w: %q is the end of the day, not a time of day", ErrFormat, clock)
		}
		return d, FormatClock(m), nil
	}
}
