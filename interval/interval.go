// Package interval provides TimeInterval, an immutable half-open time
// interval [start, end) with comparison, membership and transformation
// operations.
package interval

import (
	"time"

	"github.com/rickb777/date/v2/timespan"

	"github.com/cheerioskun/tinterval/temporal"
)

// Kind is the tag reported by IntervalKind.
const Kind = "tinterval.TimeInterval"

// Tagged is implemented by time interval values. IsTimeInterval checks the
// tag rather than the concrete type.
type Tagged interface {
	IntervalKind() string
}

// TimeInterval is the half-open range [Start, End). Start is inclusive and
// End exclusive. Nothing stops End from preceding Start; such an interval
// exists but reports IsValid() == false.
type TimeInterval struct {
	start time.Time
	end   time.Time
}

// New creates an interval from its two bounds.
func New(start, end time.Time) TimeInterval {
	return TimeInterval{start: temporal.Truncate(start), end: temporal.Truncate(end)}
}

// FromStart creates the interval starting at start and lasting d.
func FromStart(start time.Time, d time.Duration) TimeInterval {
	start = temporal.Truncate(start)
	return New(start, start.Add(d))
}

// FromEnd creates the interval lasting d and ending at end.
func FromEnd(end time.Time, d time.Duration) TimeInterval {
	end = temporal.Truncate(end)
	return New(end.Add(-d), end)
}

// IsTimeInterval reports whether v is a time interval value.
func IsTimeInterval(v any) bool {
	t, ok := v.(Tagged)
	return ok && t.IntervalKind() == Kind
}

func (ti TimeInterval) IntervalKind() string { return Kind }

// Start returns the inclusive lower bound.
func (ti TimeInterval) Start() time.Time { return ti.start }

// End returns the exclusive upper bound.
func (ti TimeInterval) End() time.Time { return ti.end }

// Duration returns End - Start. It is negative for inverted intervals and
// saturates at the time.Duration limits (about 292 years); Milliseconds is
// exact for any span.
func (ti TimeInterval) Duration() time.Duration {
	return ti.end.Sub(ti.start)
}

// Milliseconds returns End - Start in milliseconds.
func (ti TimeInterval) Milliseconds() int64 {
	return temporal.MillisBetween(ti.start, ti.end)
}

// ISODuration returns the span as ISO-8601 duration text.
func (ti TimeInterval) ISODuration() string {
	return temporal.FormatISOMillis(ti.Milliseconds())
}

// TimeSpan converts the interval to a timespan.TimeSpan.
func (ti TimeInterval) TimeSpan() timespan.TimeSpan {
	return timespan.BetweenTimes(ti.start, ti.end)
}

// Clone returns a copy of the interval.
func (ti TimeInterval) Clone() TimeInterval {
	return TimeInterval{start: ti.start, end: ti.end}
}

// IsZero returns true if both bounds are the zero time.
func (ti TimeInterval) IsZero() bool {
	return ti.start.IsZero() && ti.end.IsZero()
}

func (ti TimeInterval) IsValid() bool {
	return ti.IsValidIn(temporal.Millisecond)
}

// IsValidIn reports whether Start is strictly before End at unit granularity.
func (ti TimeInterval) IsValidIn(unit temporal.Unit) bool {
	return temporal.IsBefore(ti.start, ti.end, unit)
}

func (ti TimeInterval) IsSame(other TimeInterval) bool {
	return ti.IsSameIn(other, temporal.Millisecond)
}

// IsSameIn compares both bounds at unit granularity.
func (ti TimeInterval) IsSameIn(other TimeInterval, unit temporal.Unit) bool {
	return temporal.IsSame(ti.start, other.start, unit) &&
		temporal.IsSame(ti.end, other.end, unit)
}

func (ti TimeInterval) Overlaps(other TimeInterval) bool {
	return ti.OverlapsIn(other, temporal.Millisecond)
}

// OverlapsIn reports whether the intervals share any instant at unit
// granularity. An interval ending where the other starts does not overlap
// it. Only the four bounds are compared, so inverted intervals are accepted.
func (ti TimeInterval) OverlapsIn(other TimeInterval, unit temporal.Unit) bool {
	return temporal.IsBefore(ti.start, other.end, unit) &&
		temporal.IsBefore(other.start, ti.end, unit)
}

func (ti TimeInterval) Includes(t time.Time) bool {
	return ti.IncludesIn(t, temporal.Millisecond)
}

// IncludesIn reports whether Start <= t < End at unit granularity.
func (ti TimeInterval) IncludesIn(t time.Time, unit temporal.Unit) bool {
	return temporal.IsAfter(ti.end, t, unit) &&
		(temporal.IsBefore(ti.start, t, unit) || temporal.IsSame(ti.start, t, unit))
}

// Intersection returns the part shared by two overlapping intervals.
// The second result is false when they do not overlap or either one is
// invalid.
func (ti TimeInterval) Intersection(other TimeInterval) (TimeInterval, bool) {
	if !ti.IsValid() || !other.IsValid() || !ti.Overlaps(other) {
		return TimeInterval{}, false
	}

	start := ti.start
	if other.start.After(start) {
		start = other.start
	}

	end := ti.end
	if other.end.Before(end) {
		end = other.end
	}

	return TimeInterval{start: start, end: end}, true
}

// WithStart returns a copy with Start replaced. The result is not checked
// for validity.
func (ti TimeInterval) WithStart(start time.Time) TimeInterval {
	return New(start, ti.end)
}

// WithStartFunc replaces Start with fn applied to the current Start.
func (ti TimeInterval) WithStartFunc(fn func(time.Time) time.Time) TimeInterval {
	return ti.WithStart(fn(ti.start))
}

// WithEnd returns a copy with End replaced. The result is not checked for
// validity.
func (ti TimeInterval) WithEnd(end time.Time) TimeInterval {
	return New(ti.start, end)
}

// WithEndFunc replaces End with fn applied to the current End.
func (ti TimeInterval) WithEndFunc(fn func(time.Time) time.Time) TimeInterval {
	return ti.WithEnd(fn(ti.end))
}

// WithStartValue is WithStart for any value the default parser accepts.
func (ti TimeInterval) WithStartValue(v any) (TimeInterval, error) {
	return defaultFactory.WithStart(ti, v)
}

// WithEndValue is WithEnd for any value the default parser accepts.
func (ti TimeInterval) WithEndValue(v any) (TimeInterval, error) {
	return defaultFactory.WithEnd(ti, v)
}

// Formatted holds the bounds of an interval rendered with a pattern.
type Formatted struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Format renders each bound with temporal.Format. An empty pattern uses
// temporal.DefaultFormat.
func (ti TimeInterval) Format(pattern string) Formatted {
	return Formatted{
		Start: temporal.Format(ti.start, pattern),
		End:   temporal.Format(ti.end, pattern),
	}
}

// ISOString returns the ISO-8601 interval notation "<start>/<end>".
func (ti TimeInterval) ISOString() string {
	return temporal.FormatISO(ti.start) + "/" + temporal.FormatISO(ti.end)
}

func (ti TimeInterval) String() string {
	return ti.ISOString()
}
