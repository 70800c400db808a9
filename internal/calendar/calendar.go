// Package calendar implements date-range arithmetic for rental periods.
// Dates travel as ISO strings (YYYY-MM-DD) and ranges are closed on both
// ends: a rental from the 10th to the 12th occupies three days.
package calendar

import (
	"fmt"
	"iter"
	"time"

	"github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

const DateLayout = "2006-01-02"

// Parse converts an ISO date string into a UTC midnight timestamp.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Today returns the current date as an ISO string in UTC.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// ValidateRange checks that both dates parse, that the range is not
// inverted and that it does not start before today.
func ValidateRange(start, end, today string) error {
	if _, err := Parse(start); err != nil {
		return errors.Wrap(errors.CodeInvalidRange, err, "start date must be YYYY-MM-DD")
	}
	if _, err := Parse(end); err != nil {
		return errors.Wrap(errors.CodeInvalidRange, err, "end date must be YYYY-MM-DD")
	}
	if start > end {
		return errors.New(errors.CodeInvalidRange, "start date is after end date")
	}
	if today != "" && start < today {
		return errors.New(errors.CodeInvalidRange, "start date is in the past")
	}
	return nil
}

// Overlaps reports whether two closed date ranges share at least one day.
// Valid ISO dates order lexicographically, so no parsing is needed.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 <= end2 && end1 >= start2
}

// InclusiveDays counts the days in a closed range. Start equal to end is one day.
func InclusiveDays(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, fmt.Errorf("range %s..%s is inverted", start, end)
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// AddDays shifts an ISO date by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// Days yields each date of the closed range in order. The sequence is
// restartable and yields nothing when the range is invalid.
func Days(start, end string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s, err := Parse(start)
		if err != nil {
			return
		}
		e, err := Parse(end)
		if err != nil {
			return
		}
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(DateLayout)) {
				return
			}
		}
	}
}
