package temporal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rickb777/period"
)

// ErrInvalidDuration is returned when a value cannot be read as a duration.
var ErrInvalidDuration = errors.New("invalid duration")

const (
	day      = 24 * time.Hour
	msPerDay = int64(day / time.Millisecond)
)

// Units describes a duration by named fields. Days and weeks are fixed
// multiples of 24 hours; calendar months and years are not supported.
type Units struct {
	Weeks        float64 `json:"weeks,omitempty"`
	Days         float64 `json:"days,omitempty"`
	Hours        float64 `json:"hours,omitempty"`
	Minutes      float64 `json:"minutes,omitempty"`
	Seconds      float64 `json:"seconds,omitempty"`
	Milliseconds float64 `json:"milliseconds,omitempty"`
}

// Duration sums the fields, rounded to the nearest millisecond.
func (u Units) Duration() time.Duration {
	ms := u.Weeks*float64(7*day/time.Millisecond) +
		u.Days*float64(day/time.Millisecond) +
		u.Hours*float64(time.Hour/time.Millisecond) +
		u.Minutes*float64(time.Minute/time.Millisecond) +
		u.Seconds*float64(time.Second/time.Millisecond) +
		u.Milliseconds
	return time.Duration(math.Round(ms)) * time.Millisecond
}

// DurationOf converts v into a duration. It accepts time.Duration, Units,
// *Units, integer or float milliseconds, ISO-8601 duration text ("PT1H")
// and Go duration strings ("1h30m").
func DurationOf(v any) (time.Duration, error) {
	switch x := v.(type) {
	case time.Duration:
		return x, nil
	case Units:
		return x.Duration(), nil
	case *Units:
		if x == nil {
			return 0, errors.Wrap(ErrInvalidDuration, "nil units")
		}
		return x.Duration(), nil
	case int:
		return time.Duration(x) * time.Millisecond, nil
	case int64:
		return time.Duration(x) * time.Millisecond, nil
	case float64:
		return Units{Milliseconds: x}.Duration(), nil
	case string:
		return ParseDuration(x)
	default:
		return 0, errors.Wrapf(ErrUnsupportedValue, "cannot use %T as a duration", v)
	}
}

// ParseDuration reads ISO-8601 duration text, falling back to Go's
// duration syntax.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	trimmed := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(trimmed, "P") || strings.HasPrefix(trimmed, "p") {
		return ParseISODuration(s)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q", s)
	}
	return d, nil
}

// ParseISODuration reads durations such as "P1DT2H", "PT0.5S" or "-P2W".
// Days and weeks are fixed multiples of 24 hours. Year and month components
// are rejected because their length depends on the calendar.
func ParseISODuration(s string) (time.Duration, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	neg := strings.HasPrefix(text, "-")
	if neg || strings.HasPrefix(text, "+") {
		text = text[1:]
	}
	if len(text) < 2 || text[0] != 'P' || strings.HasSuffix(text, "T") {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q", s)
	}

	date, _, _ := strings.Cut(text, "T")
	if strings.ContainsAny(date, "YM") {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q: years and months are not supported", s)
	}
	if strings.ContainsAny(date, "HS") {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q: time components need a T", s)
	}

	p, err := period.Parse(text)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q: %v", s, err)
	}

	// only days and weeks make the conversion imprecise, and both are taken as 24h multiples
	d, _ := p.Duration()
	d = d.Round(time.Millisecond)
	if neg {
		d = -d
	}
	return d, nil
}

// FormatISODuration renders d as ISO-8601 duration text with days as the
// largest unit, e.g. P1DT2H3.5S. Precision below a millisecond is dropped.
func FormatISODuration(d time.Duration) string {
	return FormatISOMillis(d.Milliseconds())
}

// FormatISOMillis renders a span of ms milliseconds like FormatISODuration.
// It covers spans beyond the range of time.Duration.
func FormatISOMillis(ms int64) string {
	days, rem := ms/msPerDay, ms%msPerDay
	sign := ""
	if ms < 0 {
		sign = "-"
		days, rem = -days, -rem
	}

	if rem == 0 {
		if days == 0 {
			return period.NewOf(0).String()
		}
		return sign + "P" + strconv.FormatInt(days, 10) + "D"
	}

	// the remainder is under a day, so the period holds only time components
	clock := strings.TrimPrefix(period.NewOf(time.Duration(rem)*time.Millisecond).String(), "P")
	if days == 0 {
		return sign + "P" + clock
	}
	return sign + "P" + strconv.FormatInt(days, 10) + "D" + clock
}

// MillisBetween returns end - start in milliseconds. Unlike time.Time.Sub it
// does not saturate for spans longer than about 292 years.
func MillisBetween(start, end time.Time) int64 {
	return end.UnixMilli() - start.UnixMilli()
}
