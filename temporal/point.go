package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPoint is returned when a string cannot be read as a point in time.
	ErrInvalidPoint = errors.New("invalid point in time")
	// ErrUnsupportedValue is returned for Go values that have no point or duration reading.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Clock supplies the current time to a Parser.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Layout is a named Go time layout tried by the Parser.
type Layout struct {
	Name   string
	Layout string
	// Zoned layouts carry their own offset; the others are read in the
	// parser's location.
	Zoned bool
}

// Parsing stops at the first layout that matches, so more specific
// layouts come first.
var defaultLayouts = []Layout{
	{Name: "ISO8601", Layout: time.RFC3339, Zoned: true},
	{Name: "ISO8601_Local", Layout: "2006-01-02T15:04:05"},
	{Name: "ISO8601_Minute", Layout: "2006-01-02T15:04"},
	{Name: "DateTime_Dash", Layout: "2006-01-02 15:04:05"},
	{Name: "DateTime_Slash", Layout: "2006/01/02 15:04:05"},
	{Name: "Date_Dash", Layout: "2006-01-02"},
	{Name: "Date_Slash", Layout: "2006/01/02"},
	{Name: "RFC1123Z", Layout: time.RFC1123Z, Zoned: true},
	{Name: "RFC1123", Layout: time.RFC1123, Zoned: true},
}

// expandedYear matches the signed years FormatISO emits outside 0000-9999:
// six digits as in JavaScript, more when the year needs them.
var expandedYear = regexp.MustCompile(`^([+-]\d{6,})(-\d{2}-\d{2}T.+)$`)

// Parser turns loosely typed values into points in time. Every point it
// returns is truncated to millisecond precision.
type Parser struct {
	clock    Clock
	location *time.Location
	layouts  []Layout
}

// NewParser creates a Parser using clock for "now". A nil clock means the system clock.
func NewParser(clock Clock) *Parser {
	if clock == nil {
		clock = SystemClock{}
	}
	layouts := make([]Layout, len(defaultLayouts))
	copy(layouts, defaultLayouts)
	return &Parser{
		clock:    clock,
		location: time.Local,
		layouts:  layouts,
	}
}

// SetLocation sets the location used for layouts without an offset.
func (p *Parser) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	p.location = loc
}

// Location returns the location used for layouts without an offset.
func (p *Parser) Location() *time.Location {
	return p.location
}

// AddLayout appends a layout tried after the defaults.
func (p *Parser) AddLayout(name, layout string, zoned bool) {
	p.layouts = append(p.layouts, Layout{Name: name, Layout: layout, Zoned: zoned})
}

// Layouts returns the layouts in the order they are tried.
func (p *Parser) Layouts() []Layout {
	out := make([]Layout, len(p.layouts))
	copy(out, p.layouts)
	return out
}

// Now returns the clock's current time at millisecond precision.
func (p *Parser) Now() time.Time {
	return Truncate(p.clock.Now())
}

// Point converts v into a point in time. It accepts nil or a nil
// *time.Time (now), time.Time, *time.Time, strings understood by
// ParseString and integer or float unix milliseconds.
func (p *Parser) Point(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return p.Now(), nil
	case time.Time:
		return Truncate(x), nil
	case *time.Time:
		if x == nil {
			return p.Now(), nil
		}
		return Truncate(*x), nil
	case string:
		return p.ParseString(x)
	case int:
		return time.UnixMilli(int64(x)), nil
	case int32:
		return time.UnixMilli(int64(x)), nil
	case int64:
		return time.UnixMilli(x), nil
	case float64:
		return time.UnixMilli(int64(x)), nil
	default:
		return time.Time{}, errors.Wrapf(ErrUnsupportedValue, "cannot use %T as a point in time", v)
	}
}

// ParseString reads s using "now", the expanded year ISO form and then
// each layout in order.
func (p *Parser) ParseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.Wrap(ErrInvalidPoint, "empty string")
	}
	if strings.EqualFold(s, "now") {
		return p.Now(), nil
	}
	if m := expandedYear.FindStringSubmatch(s); m != nil {
		return parseExpanded(m[1], m[2])
	}

	for _, l := range p.layouts {
		var (
			t   time.Time
			err error
		)
		if l.Zoned {
			t, err = time.Parse(l.Layout, s)
		} else {
			t, err = time.ParseInLocation(l.Layout, s, p.location)
		}
		if err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidPoint, "%q", s)
}

// ParseISO reads an ISO-8601 timestamp with an offset, including the
// expanded year form produced by FormatISO.
func ParseISO(s string) (time.Time, error) {
	if m := expandedYear.FindStringSubmatch(s); m != nil {
		return parseExpanded(m[1], m[2])
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidPoint, "%q", s)
	}
	return Truncate(t), nil
}

func parseExpanded(year, rest string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidPoint, "year %q", year)
	}
	// a leap year placeholder keeps Feb 29 parseable
	t, err := time.Parse(time.RFC3339, "2000"+rest)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidPoint, "%q", year+rest)
	}
	_, mo, d := t.Date()
	h, mi, sec := t.Clock()
	return Truncate(time.Date(y, mo, d, h, mi, sec, t.Nanosecond(), t.Location())), nil
}
