package temporal

import (
	"errors"
	"testing"
	"time"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"", Millisecond},
		{"ms", Millisecond},
		{"milliseconds", Millisecond},
		{"s", Second},
		{"second", Second},
		{"m", Minute},
		{"Minutes", Minute},
		{"h", Hour},
		{"d", Day},
		{"D", Day},
		{"days", Day},
		{"w", Week},
		{"M", Month},
		{"month", Month},
		{"y", Year},
		{"years", Year},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if err != nil {
				t.Fatalf("ParseUnit(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseUnit_Unknown(t *testing.T) {
	if _, err := ParseUnit("fortnight"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestUnit_Set(t *testing.T) {
	var u Unit
	if err := u.Set("hour"); err != nil {
		t.Fatal(err)
	}
	if u != Hour || u.String() != "hour" {
		t.Fatalf("got %v", u)
	}
	if err := u.Set("nope"); err == nil {
		t.Fatal("expected an error")
	}
	if u != Hour {
		t.Fatalf("failed Set changed the unit to %v", u)
	}
}

func TestStartOfEndOf(t *testing.T) {
	// Wednesday
	ts := time.Date(2024, time.May, 15, 13, 45, 30, 123456789, time.UTC)
	tests := []struct {
		unit       Unit
		start, end time.Time
	}{
		{Millisecond,
			time.Date(2024, time.May, 15, 13, 45, 30, 123000000, time.UTC),
			time.Date(2024, time.May, 15, 13, 45, 30, 123000000, time.UTC)},
		{Second,
			time.Date(2024, time.May, 15, 13, 45, 30, 0, time.UTC),
			time.Date(2024, time.May, 15, 13, 45, 30, 999000000, time.UTC)},
		{Minute,
			time.Date(2024, time.May, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2024, time.May, 15, 13, 45, 59, 999000000, time.UTC)},
		{Hour,
			time.Date(2024, time.May, 15, 13, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 15, 13, 59, 59, 999000000, time.UTC)},
		{Day,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 15, 23, 59, 59, 999000000, time.UTC)},
		{Week,
			time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 18, 23, 59, 59, 999000000, time.UTC)},
		{Month,
			time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 31, 23, 59, 59, 999000000, time.UTC)},
		{Year,
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.December, 31, 23, 59, 59, 999000000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			if got := StartOf(ts, tt.unit); !got.Equal(tt.start) {
				t.Errorf("StartOf = %v, want %v", got, tt.start)
			}
			if got := EndOf(ts, tt.unit); !got.Equal(tt.end) {
				t.Errorf("EndOf = %v, want %v", got, tt.end)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	morning := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, time.January, 2, 1, 0, 0, 0, time.UTC)

	if !IsBefore(morning, evening, Millisecond) {
		t.Error("morning should be before evening")
	}
	if IsBefore(morning, evening, Day) {
		t.Error("morning should not be before evening at day granularity")
	}
	if !IsSame(morning, evening, Day) {
		t.Error("morning and evening share a day")
	}
	if IsSame(morning, evening, Hour) {
		t.Error("morning and evening do not share an hour")
	}
	if !IsAfter(nextDay, evening, Day) {
		t.Error("next day should be after evening at day granularity")
	}
	if IsAfter(evening, morning, Day) {
		t.Error("evening should not be after morning at day granularity")
	}
	if !IsSame(morning, morning.Add(999*time.Microsecond), Millisecond) {
		t.Error("sub-millisecond differences should be ignored")
	}
}
