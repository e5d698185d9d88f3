// Package hours normalizes free-form store opening hours into per-weekday intervals.
package hours

import (
	"fmt"
	"math/bits"
	"strings"
)

// Weekday is a day of the week, Monday = 0 through Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of weekdays.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayIndex maps upper-case three-letter names to weekdays. Read-only.
var dayIndex = map[string]Weekday{
	"MON": Monday,
	"TUE": Tuesday,
	"WED": Wednesday,
	"THU": Thursday,
	"FRI": Friday,
	"SAT": Saturday,
	"SUN": Sunday,
}

// String returns the three-letter day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return dayNames[d]
}

// Valid reports whether d is in [0,6].
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Next returns the following day, wrapping Sunday onto Monday.
func (d Weekday) Next() Weekday {
	return (d + 1) % DaysPerWeek
}

// LookupDay resolves a day name case-insensitively.
func LookupDay(name string) (Weekday, error) {
	d, ok := dayIndex[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDay, name)
	}
	return d, nil
}

// WeekdaySet is a set of weekdays stored as a 7-bit mask.
type WeekdaySet uint8

// AllWeek contains every day.
const AllWeek WeekdaySet = 1<<DaysPerWeek - 1

// SetOf builds a set from the given days.
func SetOf(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add returns s with d included.
func (s WeekdaySet) Add(d Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// Contains reports whether d is in s.
func (s WeekdaySet) Contains(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

// Union returns the days in either set.
func (s WeekdaySet) Union(o WeekdaySet) WeekdaySet { return s | o }

// Intersect returns the days in both sets.
func (s WeekdaySet) Intersect(o WeekdaySet) WeekdaySet { return s & o }

// Len returns the number of days in s.
func (s WeekdaySet) Len() int {
	return bits.OnesCount8(uint8(s & AllWeek))
}

// Days returns the members of s in ascending order.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, s.Len())
	for d := Monday; d <= Sunday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	names := make([]string, 0, s.Len())
	for _, d := range s.Days() {
		names = append(names, d.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// ResolveWeekdays resolves day tokens such as "Mon-Thu" or "SUN" into the set of
// days they cover. A range whose end precedes its start wraps around the week.
func ResolveWeekdays(tokens ...string) (WeekdaySet, error) {
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: no weekdays given", ErrFormat)
	}

	var set WeekdaySet
	for _, tok := range tokens {
		days, err := resolveToken(tok)
		if err != nil {
			return 0, err
		}
		set = set.Union(days)
	}
	return set, nil
}

func resolveToken(tok string) (WeekdaySet, error) {
	parts := strings.Split(tok, "-")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: weekday range %q has more than two days", ErrFormat, tok)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return 0, fmt.Errorf("%w: empty day in %q", ErrFormat, tok)
		}
	}

	start, err := LookupDay(parts[0])
	if err != nil {
		return 0, err
	}
	if len(parts) == 1 {
		return SetOf(start), nil
	}
	end, err := LookupDay(parts[1])
	if err != nil {
		return 0, err
	}
	return dayRange(start, end), nil
}

// dayRange returns the inclusive range start..end, wrapping past Sunday when
// end < start.
func dayRange(start, end Weekday) WeekdaySet {
	if start <= end {
		var s WeekdaySet
		for d := start; d <= end; d++ {
			s = s.Add(d)
		}
		return s
	}
	// Everything except the days strictly between end and start.
	excluded := dayRange(end, start) &^ SetOf(start, end)
	return AllWeek &^ excluded
}

// SplitWeekdayTokens splits a weekday run like "Mon - Thu  Sun" into tokens
// ("Mon-Thu", "Sun").
func SplitWeekdayTokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		// Re-join "Mon -", "- Thu" and "Mon - Thu" forms.
		for i+1 < len(fields) && (strings.HasSuffix(f, "-") || strings.HasPrefix(fields[i+1], "-")) {
			f += fields[i+1]
			i++
		}
		tokens = append(tokens, f)
	}
	return tokens
}
