package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habyt/internal/constants"
)

// Date is a calendar day without a time of day or zone.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// normalise out-of-range values the same way time.Date does
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Equal(other Date) bool { return d == other }

func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
