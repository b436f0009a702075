package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/tinterval/interval"
	"github.com/cheerioskun/tinterval/temporal"
)

// Styles for timeline rendering
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	axisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))
)

const (
	fullCell  = "█"
	emptyCell = "·"

	// DefaultWidth is the number of cells used when View.Width is not set.
	DefaultWidth = 60
	// DefaultPattern formats the axis bounds.
	DefaultPattern = "YYYY-MM-DD HH:mm"
)

// Row is one labelled interval on the timeline
type Row struct {
	Label    string
	Interval interval.TimeInterval
}

// View renders rows on a shared time axis spanning all valid intervals
type View struct {
	Title    string
	Rows     []Row
	Width    int
	Pattern  string
	Location *time.Location
}

// Add appends a row
func (v *View) Add(label string, iv interval.TimeInterval) {
	v.Rows = append(v.Rows, Row{Label: label, Interval: iv})
}

// Span returns the interval from the earliest valid start to the latest
// valid end. The second result is false when no row is valid.
func (v *View) Span() (interval.TimeInterval, bool) {
	var (
		start, end time.Time
		found      bool
	)
	for _, r := range v.Rows {
		if !r.Interval.IsValid() {
			continue
		}
		if !found || r.Interval.Start().Before(start) {
			start = r.Interval.Start()
		}
		if !found || r.Interval.End().After(end) {
			end = r.Interval.End()
		}
		found = true
	}
	return interval.New(start, end), found
}

// Render draws the timeline
func (v *View) Render() string {
	var parts []string

	if v.Title != "" {
		parts = append(parts, titleStyle.Render(v.Title))
	}

	span, ok := v.Span()
	if !ok {
		parts = append(parts, errorStyle.Render("No valid intervals"))
		return strings.Join(parts, "\n")
	}

	width := v.width()
	labelWidth := 0
	for _, r := range v.Rows {
		if n := utf8.RuneCountInString(r.Label); n > labelWidth {
			labelWidth = n
		}
	}

	for _, r := range v.Rows {
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, r.Label))
		parts = append(parts, label+" "+v.renderBar(r.Interval, span, width))
	}

	parts = append(parts, strings.Repeat(" ", labelWidth+1)+v.renderAxis(span, width))
	return strings.Join(parts, "\n")
}

func (v *View) width() int {
	if v.Width <= 0 {
		return DefaultWidth
	}
	return v.Width
}

// renderBar maps iv onto width cells of span
func (v *View) renderBar(iv, span interval.TimeInterval, width int) string {
	if !iv.IsValid() {
		return errorStyle.Render("invalid: " + iv.ISOString())
	}

	total := float64(span.Milliseconds())
	from := int(math.Floor(float64(temporal.MillisBetween(span.Start(), iv.Start())) / total * float64(width)))
	to := int(math.Ceil(float64(temporal.MillisBetween(span.Start(), iv.End())) / total * float64(width)))

	// Every valid interval occupies at least one cell
	if to <= from {
		to = from + 1
	}
	if to > width {
		to = width
		if from >= to {
			from = to - 1
		}
	}

	return emptyBarStyle.Render(strings.Repeat(emptyCell, from)) +
		barStyle.Render(strings.Repeat(fullCell, to-from)) +
		emptyBarStyle.Render(strings.Repeat(emptyCell, width-to))
}

// renderAxis labels both ends of the span
func (v *View) renderAxis(span interval.TimeInterval, width int) string {
	start := v.format(span.Start())
	end := v.format(span.End())

	gap := width - len(start) - len(end)
	if gap < 1 {
		return axisStyle.Render(start + " → " + end)
	}
	return axisStyle.Render(start + strings.Repeat(" ", gap) + end)
}

func (v *View) format(t time.Time) string {
	if v.Location != nil {
		t = t.In(v.Location)
	}
	pattern := v.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return temporal.Format(t, pattern)
}
