package hours

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLine parses one store line, e.g.
//
//	"Store 6","Mon-Thu 11 am - 11 pm / Fri-Sat 11 am - 12:30 am"
//
// into canonical records in clause order. The first failing clause aborts the
// whole line; the returned error is a *LineError.
func ParseLine(line string) ([]Record, error) {
	head, err := splitLine(line)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, c := range head.clauses {
		recs, err := head.expand(c)
		if err != nil {
			return nil, &LineError{Line: head.line, Clause: c, Err: err}
		}
		records = append(records, recs...)
	}
	return records, nil
}

// ParseLineLenient is ParseLine without fail-fast: each failing clause adds one
// error and the remaining clauses still produce records.
func ParseLineLenient(line string) ([]Record, []error) {
	head, err := splitLine(line)
	if err != nil {
		return nil, []error{err}
	}

	var (
		records []Record
		errs    []error
	)
	for _, c := range head.clauses {
		recs, err := head.expand(c)
		if err != nil {
			errs = append(errs, &LineError{Line: head.line, Clause: c, Err: err})
			continue
		}
		records = append(records, recs...)
	}
	return records, errs
}

// parsedLine is a line split into its store identity and schedule clauses.
type parsedLine struct {
	line    string
	storeID int
	label   string
	clauses []string
}

func splitLine(line string) (*parsedLine, error) {
	line = strings.TrimRight(line, "\r\n")

	ident, rest, _ := strings.Cut(line, ",")
	label := unquote(strings.TrimSpace(ident))

	id, err := StoreID(label)
	if err != nil {
		return nil, &LineError{Line: line, Err: err}
	}

	clauses, err := splitClauses(rest)
	if err != nil {
		return nil, &LineError{Line: line, Err: err}
	}
	if len(clauses) == 0 {
		return nil, &LineError{Line: line, Err: fmt.Errorf("%w: no schedule clauses", ErrFormat)}
	}

	return &parsedLine{line: line, storeID: id, label: label, clauses: clauses}, nil
}

func (p *parsedLine) expand(clause string) ([]Record, error) {
	i := firstDigit(clause)
	if i <= 0 || strings.TrimSpace(clause[:i]) == "" {
		return nil, fmt.Errorf("%w: clause has no weekdays", ErrFormat)
	}

	days, err := ResolveWeekdays(SplitWeekdayTokens(clause[:i])...)
	if err != nil {
		return nil, err
	}
	r, err := ResolveTimeRange(clause[i:])
	if err != nil {
		return nil, err
	}
	return Expand(p.storeID, p.label, days, r), nil
}

// StoreID extracts the first run of digits in a store label, so "Store 26 (Mall B2)"
// is store 26.
func StoreID(label string) (int, error) {
	start := firstDigit(label)
	if start < 0 {
		return 0, fmt.Errorf("%w: no store id in %q", ErrFormat, label)
	}
	end := start
	for end < len(label) && isDigit(label[end]) {
		end++
	}
	id, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0, fmt.Errorf("%w: store id in %q: %v", ErrFormat, label, err)
	}
	return id, nil
}

// splitClauses splits the schedule part of a line on '/', '|', ',' and '"'.
// Fragments without any digit are bare weekday runs ("Mon-Thu" in
// "Mon-Thu, Sun 11 am - 9 pm") and are prefixed to the following clause.
func splitClauses(rest string) ([]string, error) {
	fragments := strings.FieldsFunc(rest, func(r rune) bool {
		switch r {
		case '/', '|', ',', '"':
			return true
		}
		return false
	})

	var (
		clauses []string
		pending string
	)
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if firstDigit(f) < 0 {
			pending = strings.TrimSpace(pending + " " + f)
			continue
		}
		if pending != "" {
			f = pending + " " + f
			pending = ""
		}
		clauses = append(clauses, f)
	}
	if pending != "" {
		return nil, fmt.Errorf("%w: weekdays %q have no hours", ErrFormat, pending)
	}
	return clauses, nil
}

// unquote strips one pair of enclosing double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func firstDigit(s string) int {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
