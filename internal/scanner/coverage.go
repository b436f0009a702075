package scanner

import (
	"time"

	"github.com/cheerioskun/tinterval/interval"
)

// DefaultBins is used when Coverage is asked for zero or fewer bins
const DefaultBins = 20

// Bin counts the entries active during one slice of the report span
type Bin struct {
	Interval interval.TimeInterval `json:"interval"`
	Count    int                   `json:"count"`
}

// Coverage divides the span into binCount bins and counts the valid
// entries overlapping each one. It returns nil when nothing is valid.
func (r *Report) Coverage(binCount int) []Bin {
	if r.Span == nil {
		return nil
	}
	if binCount <= 0 {
		binCount = DefaultBins
	}

	bins := createTimeBins(*r.Span, binCount)
	for i := range bins {
		for _, e := range r.Entries {
			if e.Valid && e.Interval.Overlaps(bins[i].Interval) {
				bins[i].Count++
			}
		}
	}
	return bins
}

// createTimeBins splits span into back-to-back bins. There are never more
// bins than milliseconds in the span.
func createTimeBins(span interval.TimeInterval, binCount int) []Bin {
	total := span.Milliseconds()
	if total < int64(binCount) {
		binCount = int(max(total, 1))
	}

	binMillis := total / int64(binCount)
	bins := make([]Bin, binCount)
	current := span.Start()

	for i := 0; i < binCount; i++ {
		end := time.UnixMilli(current.UnixMilli() + binMillis).In(current.Location())
		if i == binCount-1 {
			// Last bin goes to the exact end
			end = span.End()
		}
		bins[i].Interval = interval.New(current, end)
		current = end
	}
	return bins
}
