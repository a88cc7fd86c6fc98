package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is an inclusive calendar date (no time-of-day component). Rentals are
// priced per day, so both the start and end date of a booking count.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string { return d.t.Format(dateLayout) }

func (d Date) Time() time.Time { return d.t }

// DaysInclusive returns the number of rental days from d through end, counting
// both endpoints. A single-day rental (d == end) is 1 day.
func (d Date) DaysInclusive(end Date) int {
	return int(end.t.Sub(d.t).Hours()/24) + 1
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value allows Date to be written to a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan allows Date to be read back from the database. Postgres hands us a
// time.Time, sqlite a string or []byte depending on the driver version.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{t: time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	// Tolerate timestamp-formatted values by keeping the date part only.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day. Both boundary days count, so
// a booking ending on day D conflicts with one starting on day D; same-day
// handover is not supported.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	if !aStart.After(bStart) && !aEnd.Before(bStart) {
		return true
	}
	if !aStart.After(bEnd) && !aEnd.Before(bEnd) {
		return true
	}
	if !bStart.After(aStart) && !bEnd.Before(aEnd) {
		return true
	}
	return false
}
