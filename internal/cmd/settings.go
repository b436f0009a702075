package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/cheerioskun/tinterval/interval"
	"github.com/cheerioskun/tinterval/temporal"
	"github.com/cheerioskun/tinterval/ui/timeline"
)

// Styles for command output
var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(14)

	trueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	falseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// settings are the viper-backed options shared by every command
type settings struct {
	unit     temporal.Unit
	pattern  string
	location *time.Location
	width    int
	verbose  bool
}

func loadSettings() (*settings, error) {
	unit, err := temporal.ParseUnit(viper.GetString("unit"))
	if err != nil {
		return nil, fmt.Errorf("invalid unit: %w", err)
	}

	loc, err := time.LoadLocation(viper.GetString("location"))
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}

	return &settings{
		unit:     unit,
		pattern:  viper.GetString("format"),
		location: loc,
		width:    viper.GetInt("width"),
		verbose:  viper.GetBool("verbose"),
	}, nil
}

// factory builds intervals reading zone-less input in the configured location
func (s *settings) factory() *interval.Factory {
	p := temporal.NewParser(clock)
	p.SetLocation(s.location)
	return interval.NewFactory(p)
}

// format renders both bounds in the configured location and pattern
func (s *settings) format(iv interval.TimeInterval) interval.Formatted {
	return interval.New(iv.Start().In(s.location), iv.End().In(s.location)).Format(s.pattern)
}

func (s *settings) timeline(title string) *timeline.View {
	return &timeline.View{
		Title:    title,
		Width:    s.width,
		Location: s.location,
	}
}

func (s *settings) histogram(title string) *timeline.Histogram {
	return &timeline.Histogram{
		Title:    title,
		Width:    s.width,
		Pattern:  timeline.DefaultPattern,
		Location: s.location,
	}
}

func parseInterval(f *interval.Factory, text string) (interval.TimeInterval, error) {
	iv, err := f.Parse(text)
	if err != nil {
		return interval.TimeInterval{}, fmt.Errorf("failed to parse interval %q: %w", text, err)
	}
	return iv, nil
}

func printField(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key+":"), value)
}

func renderBool(b bool) string {
	if b {
		return trueStyle.Render("true")
	}
	return falseStyle.Render("false")
}
