package hours

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in a day.
const MinutesPerDay = 24 * 60

// Clock values for the two ends of a day.
const (
	StartOfDay = "00:00"
	EndOfDay   = "24:00"
)

// TimeOfDay is a minute of the day in [0, 1439].
type TimeOfDay int

// Clock renders t as "HH:MM".
func (t TimeOfDay) Clock() string {
	return FormatClock(int(t))
}

// TimeRange is an opening and closing time. A Close at or before Open is on the
// following day.
type TimeRange struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Overnight reports whether the range closes on the day after it opens.
func (r TimeRange) Overnight() bool {
	return r.Open > r.Close
}

// FormatClock converts minutes since midnight to "HH:MM". MinutesPerDay renders
// as "24:00"; values outside [0, MinutesPerDay] are clamped.
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		return EndOfDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
// "24:00" is accepted and returns MinutesPerDay.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("%w: clock %q must be in HH:MM format", ErrFormat, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: clock %q out of range", ErrFormat, s)
	}
	return h*60 + m, nil
}

// ResolveTimeRange parses "<h>[:<mm>] am|pm - <h>[:<mm>] am|pm" into an
// opening and closing minute of day.
func ResolveTimeRange(text string) (TimeRange, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: time range %q must have one '-'", ErrFormat, strings.TrimSpace(text))
	}

	open, err := parseTimeOfDay(parts[0])
	if err != nil {
		return TimeRange{}, fmt.Errorf("opening time: %w", err)
	}
	closing, err := parseTimeOfDay(parts[1])
	if err != nil {
		return TimeRange{}, fmt.Errorf("closing time: %w", err)
	}
	return TimeRange{Open: open, Close: closing}, nil
}

// parseTimeOfDay parses a 12-hour clock value such as "11:30 am" or "9pm".
func parseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	var pm bool
	switch {
	case strings.HasSuffix(lower, "pm"):
		pm = true
	case strings.HasSuffix(lower, "am"):
	default:
		return 0, fmt.Errorf("%w: %q has no am/pm marker", ErrFormat, s)
	}
	num := strings.TrimSpace(s[:len(s)-2])

	hourText, minuteText := num, ""
	if i := strings.IndexByte(num, ':'); i >= 0 {
		hourText, minuteText = num[:i], num[i+1:]
		if minuteText == "" {
			return 0, fmt.Errorf("%w: %q has an empty minute", ErrFormat, s)
		}
	}

	hour, err := parseNumber(hourText, 1, 12)
	if err != nil {
		return 0, fmt.Errorf("hour in %q: %w", s, err)
	}
	minute := 0
	if minuteText != "" {
		if minute, err = parseNumber(minuteText, 0, 59); err != nil {
			return 0, fmt.Errorf("minute in %q: %w", s, err)
		}
	}

	h := hour % 12
	if pm {
		h += 12
	}
	return TimeOfDay(h*60 + minute), nil
}

func parseNumber(s string, lo, hi int) (int, error) {
	if s == "" || !isDigits(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrFormat, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrFormat, s, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %d not in %d-%d", ErrFormat, n, lo, hi)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
