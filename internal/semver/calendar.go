package semver

import (
	"fmt"
	"strconv"
	"time"
)

// CalendarFormat selects how a version component is derived from a date.
type CalendarFormat string

const (
	CalendarFullYear        CalendarFormat = "YYYY"
	CalendarShortYear       CalendarFormat = "YY"
	CalendarZeroPaddedYear  CalendarFormat = "0Y"
	CalendarMonth           CalendarFormat = "MM"
	CalendarZeroPaddedMonth CalendarFormat = "0M"
	CalendarWeek            CalendarFormat = "WW"
	CalendarZeroPaddedWeek  CalendarFormat = "0W"
	CalendarDay             CalendarFormat = "DD"
	CalendarZeroPaddedDay   CalendarFormat = "0D"
)

const calendarYearOffset = 2000

var calendarResolvers = map[CalendarFormat]func(time.Time) string{
	CalendarFullYear:  func(d time.Time) string { return strconv.Itoa(d.Year()) },
	CalendarShortYear: func(d time.Time) string { return strconv.Itoa(d.Year() - calendarYearOffset) },
	CalendarZeroPaddedYear: func(d time.Time) string {
		return zeroPad(strconv.Itoa(d.Year() - calendarYearOffset))
	},
	CalendarMonth:           func(d time.Time) string { return strconv.Itoa(int(d.Month())) },
	CalendarZeroPaddedMonth: func(d time.Time) string { return zeroPad(strconv.Itoa(int(d.Month()))) },
	CalendarWeek:            func(d time.Time) string { return strconv.Itoa(isoWeek(d)) },
	CalendarZeroPaddedWeek:  func(d time.Time) string { return zeroPad(strconv.Itoa(isoWeek(d))) },
	CalendarDay:             func(d time.Time) string { return strconv.Itoa(d.Day()) },
	CalendarZeroPaddedDay:   func(d time.Time) string { return zeroPad(strconv.Itoa(d.Day())) },
}

// ParseCalendarFormat validates a calendar specifier.
func ParseCalendarFormat(s string) (CalendarFormat, error) {
	f := CalendarFormat(s)
	if _, ok := calendarResolvers[f]; !ok {
		return "", fmt.Errorf("%w: calendar format %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Resolve renders the component for the given date.
func (f CalendarFormat) Resolve(date time.Time) (string, error) {
	resolve, ok := calendarResolvers[f]
	if !ok {
		return "", fmt.Errorf("%w: calendar format %q", ErrUnsupportedFormat, string(f))
	}
	return resolve(date), nil
}

func (f CalendarFormat) String() string {
	return string(f)
}

func isoWeek(d time.Time) int {
	_, week := d.ISOWeek()
	return week
}

// zeroPad pads single-character values to width two. Longer values are
// returned unchanged.
func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
