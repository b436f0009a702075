package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Unit is the granularity at which two points are compared.
// The zero value is Millisecond, the finest granularity a point carries.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// ErrUnknownUnit is returned by ParseUnit for names it does not recognise.
var ErrUnknownUnit = errors.New("unknown unit")

var unitNames = map[Unit]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

// short aliases are case sensitive: "m" is a minute and "M" a month
var unitAliases = map[string]Unit{
	"ms": Millisecond,
	"s":  Second,
	"m":  Minute,
	"h":  Hour,
	"d":  Day,
	"D":  Day,
	"w":  Week,
	"M":  Month,
	"y":  Year,
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// ParseUnit accepts the long, plural and short unit names, e.g. "day",
// "days" or "d". The empty string is Millisecond.
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return Millisecond, nil
	}
	if u, ok := unitAliases[s]; ok {
		return u, nil
	}
	name := strings.TrimSuffix(strings.ToLower(s), "s")
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return Millisecond, errors.Wrapf(ErrUnknownUnit, "%q", s)
}

// Set implements pflag.Value so a Unit can be bound to a flag directly.
func (u *Unit) Set(s string) error {
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Type implements pflag.Value.
func (u *Unit) Type() string {
	return "unit"
}

// Truncate drops everything below millisecond precision.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Millisecond)
}

// StartOf returns the first instant of the unit containing t, in t's location.
func StartOf(t time.Time, u Unit) time.Time {
	t = Truncate(t)
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()

	switch u {
	case Second:
		return time.Date(y, mo, d, h, mi, s, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

// EndOf returns the last millisecond of the unit containing t.
func EndOf(t time.Time, u Unit) time.Time {
	start := StartOf(t, u)
	y, mo, d := start.Date()
	loc := start.Location()

	var next time.Time
	switch u {
	case Second:
		next = start.Add(time.Second)
	case Minute:
		next = start.Add(time.Minute)
	case Hour:
		next = start.Add(time.Hour)
	case Day:
		next = time.Date(y, mo, d+1, 0, 0, 0, 0, loc)
	case Week:
		next = time.Date(y, mo, d+7, 0, 0, 0, 0, loc)
	case Month:
		next = time.Date(y, mo+1, 1, 0, 0, 0, 0, loc)
	case Year:
		next = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return start
	}
	return next.Add(-time.Millisecond)
}

// IsSame reports whether b falls within the same unit as a.
func IsSame(a, b time.Time, u Unit) bool {
	b = Truncate(b)
	return !b.Before(StartOf(a, u)) && !b.After(EndOf(a, u))
}

// IsBefore reports whether the unit containing a ends before b.
func IsBefore(a, b time.Time, u Unit) bool {
	return EndOf(a, u).Before(Truncate(b))
}

// IsAfter reports whether b is before the unit containing a starts.
func IsAfter(a, b time.Time, u Unit) bool {
	return Truncate(b).Before(StartOf(a, u))
}
