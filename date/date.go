// Package date provides a calendar-day type used as the ordering key of
// portfolio valuation snapshots.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical string representation of a Day, ISO-8601.
const Format = "2006-01-02"

// Day represents a date with day granularity. Valuations and trades are
// recorded per day; intraday ordering is not modeled.
type Day struct {
	t time.Time
}

// New returns a normalized Day for the given year, month and day.
func New(year int, month time.Month, day int) Day {
	return Day{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current day.
func Today() Day { return New(time.Now().Date()) }

// Parse parses a Day from its canonical "2006-01-02" form.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q want format %q: %w", s, Format, err)
	}
	return Day{t.UTC()}, nil
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Add returns a new Day with the given number of days added.
func (d Day) Add(days int) Day {
	y, m, dd := d.t.Date()
	return New(y, m, dd+days)
}

// Before reports whether d is strictly before x.
func (d Day) Before(x Day) bool { return d.t.Before(x.t) }

// After reports whether d is strictly after x.
func (d Day) After(x Day) bool { return d.t.After(x.t) }

// Equal reports whether d and x are the same day.
func (d Day) Equal(x Day) bool { return d.t.Equal(x.t) }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// String formats the day in its canonical form.
func (d Day) String() string { return d.t.Format(Format) }

// MarshalJSON encodes the day as a JSON string in canonical form.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a day from a JSON string in canonical form.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	day, err := Parse(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

var _ json.Marshaler = (*Day)(nil)
var _ json.Unmarshaler = (*Day)(nil)
