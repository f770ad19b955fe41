// FilePath: internal/timestamp/timestamp.go
package timestamp

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp is returned for any input that does not normalize to a
// calendar-valid UTC instant.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// DisplayLayout is the 24-hour layout the dashboard uses when it sends a time back.
const DisplayLayout = "02/01/2006 15:04:05"

// Parse normalizes "DD/MM/YYYY HH:MM:SS" and "DD/MM/YYYY HH:MM:SS AM|PM" into a
// UTC instant. The same rule applies to dataset rows, attack windows and query
// strings.
func Parse(s string) (time.Time, error) {
	tokens := strings.Fields(s)
	if len(tokens) < 2 || len(tokens) > 3 {
		return time.Time{}, ErrMalformedTimestamp
	}

	day, month, year, err := parseDate(tokens[0])
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, second, err := ParseClock(strings.Join(tokens[1:], " "))
	if err != nil {
		return time.Time{}, err
	}

	return build(year, month, day, hour, minute, second)
}

// ParseClock parses a bare time of day ("HH:MM[:SS] [AM|PM]") with the same
// hour and meridiem rules as Parse.
func ParseClock(s string) (hour, minute, second int, err error) {
	tokens := strings.Fields(s)
	if len(tokens) < 1 || len(tokens) > 2 {
		return 0, 0, 0, ErrMalformedTimestamp
	}

	parts := strings.Split(tokens[0], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, ErrMalformedTimestamp
	}
	if hour, err = atoi(parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if minute, err = atoi(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if len(parts) == 3 {
		if second, err = atoi(parts[2]); err != nil {
			return 0, 0, 0, err
		}
	}

	if len(tokens) == 2 {
		switch strings.ToUpper(tokens[1]) {
		case "AM":
			if hour == 12 {
				hour = 0
			}
		case "PM":
			if hour != 12 {
				hour += 12
			}
		default:
			return 0, 0, 0, ErrMalformedTimestamp
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, ErrMalformedTimestamp
	}
	return hour, minute, second, nil
}

// OnDate places a time of day on the calendar date of day (UTC).
func OnDate(day time.Time, hour, minute, second int) time.Time {
	y, m, d := day.UTC().Date()
	return time.Date(y, m, d, hour, minute, second, 0, time.UTC)
}

// Millis returns t as epoch milliseconds, the unit the dashboard charts use.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

func parseDate(s string) (day, month, year int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, ErrMalformedTimestamp
	}
	if day, err = atoi(parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if month, err = atoi(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if year, err = atoi(parts[2]); err != nil {
		return 0, 0, 0, err
	}
	return day, month, year, nil
}

// build rejects dates time.Date would silently normalize (31/02, month 13, ...).
func build(year, month, day, hour, minute, second int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrMalformedTimestamp
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, ErrMalformedTimestamp
	}
	return t, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrMalformedTimestamp
	}
	return n, nil
}
