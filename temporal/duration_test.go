package temporal

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestUnits_Duration(t *testing.T) {
	tests := []struct {
		units Units
		want  time.Duration
	}{
		{Units{}, 0},
		{Units{Hours: 24}, 24 * time.Hour},
		{Units{Days: 1, Hours: 2, Minutes: 3, Seconds: 4, Milliseconds: 5},
			26*time.Hour + 3*time.Minute + 4*time.Second + 5*time.Millisecond},
		{Units{Weeks: 1}, 7 * 24 * time.Hour},
		{Units{Hours: 1.5}, 90 * time.Minute},
		{Units{Milliseconds: 0.6}, time.Millisecond},
		{Units{Minutes: -30}, -30 * time.Minute},
	}
	for _, tt := range tests {
		if got := tt.units.Duration(); got != tt.want {
			t.Errorf("%+v.Duration() = %v, want %v", tt.units, got, tt.want)
		}
	}
}

func TestDurationOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Duration
	}{
		{"duration", 90 * time.Second, 90 * time.Second},
		{"units", Units{Minutes: 2}, 2 * time.Minute},
		{"units pointer", &Units{Seconds: 3}, 3 * time.Second},
		{"int millis", 1500, 1500 * time.Millisecond},
		{"int64 millis", int64(-20), -20 * time.Millisecond},
		{"float millis", 2.4, 2 * time.Millisecond},
		{"iso", "PT1H", time.Hour},
		{"go syntax", "1h30m", 90 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationOf(tt.in)
			if err != nil {
				t.Fatalf("DurationOf(%v) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DurationOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := DurationOf(true); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedValue, got %v", err)
	}
	if _, err := DurationOf((*Units)(nil)); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"P1D", 24 * time.Hour},
		{"PT24H", 24 * time.Hour},
		{"P2W", 14 * 24 * time.Hour},
		{"P1DT2H3M4S", 26*time.Hour + 3*time.Minute + 4*time.Second},
		{"PT0.5S", 500 * time.Millisecond},
		{"-PT15M", -15 * time.Minute},
		{"+PT1M", time.Minute},
		{"pt2h", 2 * time.Hour},
		{" P1D ", 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := ParseISODuration(tt.in)
		if err != nil {
			t.Errorf("ParseISODuration(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseISODuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseISODuration_Errors(t *testing.T) {
	for _, in := range []string{"", "P", "PT", "P1DT", "P1Dt", "P1DT ", "1D", "P1H", "P1Y", "P2M", "P1Y2DT1H", "PxD"} {
		if _, err := ParseISODuration(in); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("ParseISODuration(%q): expected ErrInvalidDuration, got %v", in, err)
		}
	}
}

func TestFormatISODuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{24 * time.Hour, "P1D"},
		{49 * 24 * time.Hour, "P49D"},
		{-24 * time.Hour, "-P1D"},
	}
	for _, tt := range tests {
		if got := FormatISODuration(tt.in); got != tt.want {
			t.Errorf("FormatISODuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatISODuration_RoundTrip(t *testing.T) {
	for _, d := range []time.Duration{
		0,
		time.Millisecond,
		500 * time.Millisecond,
		time.Second + 20*time.Millisecond,
		-15 * time.Minute,
		26*time.Hour + 3*time.Minute + 4*time.Second,
		49 * time.Hour,
		-(3*24*time.Hour + 90*time.Minute + 250*time.Millisecond),
	} {
		text := FormatISODuration(d)
		if d > 24*time.Hour && !strings.HasPrefix(text, "P"+strconv.Itoa(int(d/day))+"D") {
			t.Errorf("FormatISODuration(%v) = %q, expected whole days first", d, text)
		}
		if d < 0 && !strings.HasPrefix(text, "-P") {
			t.Errorf("FormatISODuration(%v) = %q, expected a leading minus", d, text)
		}
		back, err := ParseISODuration(text)
		if err != nil || back != d {
			t.Errorf("ParseISODuration(%q) = %v, %v; want %v", text, back, err, d)
		}
	}
}

func TestFormatISOMillis(t *testing.T) {
	// 1000-01-01 to 2000-01-01, past the range of time.Duration
	start := time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	ms := MillisBetween(start, end)
	if ms != 365242*msPerDay {
		t.Fatalf("MillisBetween = %d, want %d", ms, 365242*msPerDay)
	}
	if got := FormatISOMillis(ms); got != "P365242D" {
		t.Errorf("FormatISOMillis(%d) = %q, want P365242D", ms, got)
	}
	if got := FormatISOMillis(-ms); got != "-P365242D" {
		t.Errorf("FormatISOMillis(%d) = %q, want -P365242D", -ms, got)
	}

	text := FormatISOMillis(ms + int64(time.Hour/time.Millisecond))
	if !strings.HasPrefix(text, "P365242DT") {
		t.Errorf("FormatISOMillis = %q, expected P365242DT...", text)
	}
}

func TestFormatISODuration_Extremes(t *testing.T) {
	for _, d := range []time.Duration{math.MinInt64, math.MaxInt64} {
		text := FormatISODuration(d)
		want := "P106751D"
		if d < 0 {
			want = "-" + want
		}
		if !strings.HasPrefix(text, want+"T") {
			t.Errorf("FormatISODuration(%d) = %q, expected prefix %sT", int64(d), text, want)
		}
	}
}
