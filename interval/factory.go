package interval

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cheerioskun/tinterval/temporal"
)

var (
	// ErrInvalidConfiguration is returned by Build when a Config does not
	// name exactly two of Start, End and Duration.
	ErrInvalidConfiguration = errors.New("invalid time interval configuration")
	// ErrInvalidFormat is returned by Parse for text that is not "<start>/<end>".
	ErrInvalidFormat = errors.New("invalid time interval format")
)

// Config describes an interval by two of its three quantities. A nil field
// is absent. Start and End take anything temporal.Parser.Point accepts and
// Duration anything temporal.DurationOf accepts.
type Config struct {
	Start    any
	End      any
	Duration any
}

func (c Config) given() []string {
	var names []string
	if c.Start != nil {
		names = append(names, "start")
	}
	if c.End != nil {
		names = append(names, "end")
	}
	if c.Duration != nil {
		names = append(names, "duration")
	}
	return names
}

// Factory builds intervals with an explicit point parser.
type Factory struct {
	parser *temporal.Parser
}

// NewFactory creates a Factory over parser. A nil parser uses the system
// clock and local time.
func NewFactory(parser *temporal.Parser) *Factory {
	if parser == nil {
		parser = temporal.NewParser(nil)
	}
	return &Factory{parser: parser}
}

// Parser returns the point parser the factory builds with.
func (f *Factory) Parser() *temporal.Parser {
	return f.parser
}

var defaultFactory = NewFactory(nil)

// Build creates an interval from c with the default factory.
func Build(c Config) (TimeInterval, error) {
	return defaultFactory.Build(c)
}

// Parse reads "<start>/<end>" with the default factory.
func Parse(s string) (TimeInterval, error) {
	return defaultFactory.Parse(s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) TimeInterval {
	ti, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ti
}

// Build creates an interval from one of the shapes {Start, End},
// {Start, Duration} or {End, Duration}.
func (f *Factory) Build(c Config) (TimeInterval, error) {
	given := c.given()
	if len(given) != 2 {
		return TimeInterval{}, errors.Wrapf(ErrInvalidConfiguration,
			"need exactly two of start, end, duration; got [%s]", strings.Join(given, ", "))
	}

	if c.Duration == nil {
		start, err := f.point("start", c.Start)
		if err != nil {
			return TimeInterval{}, err
		}
		end, err := f.point("end", c.End)
		if err != nil {
			return TimeInterval{}, err
		}
		return New(start, end), nil
	}

	d, err := temporal.DurationOf(c.Duration)
	if err != nil {
		return TimeInterval{}, errors.Wrap(err, "duration")
	}
	if c.Start != nil {
		start, err := f.point("start", c.Start)
		if err != nil {
			return TimeInterval{}, err
		}
		return FromStart(start, d), nil
	}
	end, err := f.point("end", c.End)
	if err != nil {
		return TimeInterval{}, err
	}
	return FromEnd(end, d), nil
}

// Parse reads the ISO-8601 interval notation "<start>/<end>", splitting on
// the first slash. Each side may be anything the parser accepts as a string.
func (f *Factory) Parse(s string) (TimeInterval, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return TimeInterval{}, errors.Wrapf(ErrInvalidFormat, "%q has no '/'", s)
	}
	start, err := f.point("start", s[:i])
	if err != nil {
		return TimeInterval{}, err
	}
	end, err := f.point("end", s[i+1:])
	if err != nil {
		return TimeInterval{}, err
	}
	return New(start, end), nil
}

// Value accepts either an interval, a pointer to one, interval text or a
// Config, and returns the interval it describes.
func (f *Factory) Value(v any) (TimeInterval, error) {
	switch x := v.(type) {
	case TimeInterval:
		return x, nil
	case *TimeInterval:
		if x == nil {
			return TimeInterval{}, errors.Wrap(ErrInvalidConfiguration, "nil interval")
		}
		return *x, nil
	case string:
		return f.Parse(x)
	case Config:
		return f.Build(x)
	default:
		return TimeInterval{}, errors.Wrapf(temporal.ErrUnsupportedValue, "cannot use %T as a time interval", v)
	}
}

// WithStart replaces the start of ti with the point v describes.
func (f *Factory) WithStart(ti TimeInterval, v any) (TimeInterval, error) {
	start, err := f.point("start", v)
	if err != nil {
		return TimeInterval{}, err
	}
	return ti.WithStart(start), nil
}

// WithEnd replaces the end of ti with the point v describes.
func (f *Factory) WithEnd(ti TimeInterval, v any) (TimeInterval, error) {
	end, err := f.point("end", v)
	if err != nil {
		return TimeInterval{}, err
	}
	return ti.WithEnd(end), nil
}

func (f *Factory) point(field string, v any) (time.Time, error) {
	t, err := f.parser.Point(v)
	if err != nil {
		return time.Time{}, errors.Wrap(err, field)
	}
	return t, nil
}
