package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day identifies one of the seven weekly buckets
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists every bucket in display order (Monday first).
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdays = map[Day]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Valid reports whether d is one of the seven day symbols.
func (d Day) Valid() bool {
	_, ok := weekdays[d]
	return ok
}

// Weekday converts d to a time.Weekday. Invalid days map to Sunday.
func (d Day) Weekday() time.Weekday {
	return weekdays[d]
}

// Index returns the Monday-first position of d (0-6), or -1.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Short returns the three-letter English abbreviation.
func (d Day) Short() string {
	if !d.Valid() {
		return string(d)
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:3])
}

func (d Day) String() string {
	return string(d)
}

// DayOf returns the bucket for the weekday of t.
func DayOf(t time.Time) Day {
	wd := t.Weekday()
	for d, w := range weekdays {
		if w == wd {
			return d
		}
	}
	return Monday
}

// ParseDay accepts full names, three-letter abbreviations and the digits
// 1-7 (1 = Monday).
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 7 {
			return Days[n-1], nil
		}
		return "", fmt.Errorf("invalid day number: %d (expected 1-7)", n)
	}
	for _, d := range Days {
		if s == string(d) || (len(s) >= 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day: %q", s)
}

// ParseDays parses a comma-separated list of days. "all" selects the whole week.
func ParseDays(s string) ([]Day, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return append([]Day(nil), Days...), nil
	}
	seen := make(map[Day]bool)
	var days []Day
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseDay(part)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}
