package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/cheerioskun/tinterval/interval"
)

// Bar is one histogram bin
type Bar struct {
	Interval interval.TimeInterval
	Count    int
}

// Histogram renders a horizontal bar per bin, scaled to the fullest bin
type Histogram struct {
	Title    string
	Bars     []Bar
	Width    int
	Pattern  string
	Location *time.Location
}

// Add appends a bar
func (h *Histogram) Add(iv interval.TimeInterval, count int) {
	h.Bars = append(h.Bars, Bar{Interval: iv, Count: count})
}

// Render draws the histogram followed by a summary line
func (h *Histogram) Render() string {
	var parts []string

	if h.Title != "" {
		parts = append(parts, titleStyle.Render(h.Title))
	}
	if len(h.Bars) == 0 {
		parts = append(parts, errorStyle.Render("No data"))
		return strings.Join(parts, "\n")
	}

	peak, active := 0, 0
	for _, b := range h.Bars {
		if b.Count > peak {
			peak = b.Count
		}
		if b.Count > 0 {
			active++
		}
	}

	width := h.Width
	if width <= 0 {
		width = DefaultWidth
	}
	view := View{Pattern: h.Pattern, Location: h.Location}

	for _, b := range h.Bars {
		length := 0
		if peak > 0 {
			length = int(float64(b.Count) / float64(peak) * float64(width))
		}
		label := labelStyle.Render(view.format(b.Interval.Start()))
		parts = append(parts, fmt.Sprintf("%s %s %d", label, createBar(length), b.Count))
	}

	summary := fmt.Sprintf("Peak: %d | Active bins: %d/%d", peak, active, len(h.Bars))
	parts = append(parts, axisStyle.Render(summary))
	return strings.Join(parts, "\n")
}

func createBar(length int) string {
	if length <= 0 {
		return emptyBarStyle.Render("▏")
	}
	return barStyle.Render(strings.Repeat(fullCell, length))
}
