package scanner

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cheerioskun/tinterval/interval"
	"github.com/cheerioskun/tinterval/temporal"
)

const listing = `# maintenance windows
db      2024-01-01T00:00:00Z/2024-01-01T04:00:00Z
backup  2024-01-01T03:00:00Z/2024-01-01T05:00:00Z

2024-01-01T05:00:00Z/2024-01-01T06:00:00Z
broken  2024-01-01T09:00:00Z/2024-01-01T08:00:00Z
garbage not-an-interval
late    2024-01-01T23:00:00Z/2024-01-02T01:00:00Z
`

func newTestScanner(t *testing.T, files map[string]string) *IntervalScanner {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	p := temporal.NewParser(temporal.FixedClock(time.Unix(0, 0)))
	p.SetLocation(time.UTC)
	return NewIntervalScanner(fs, interval.NewFactory(p))
}

func TestScan_File(t *testing.T) {
	s := newTestScanner(t, map[string]string{"/data/windows.intervals": listing})

	report, err := s.Scan("/data/windows.intervals")
	if err != nil {
		t.Fatal(err)
	}

	labels := make([]string, len(report.Entries))
	for i, e := range report.Entries {
		labels[i] = e.Label
	}
	wantLabels := []string{"db", "backup", "windows.intervals:5", "broken", "garbage", "late"}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Errorf("labels -want/+got:\n%s", diff)
	}

	parsed, valid, unparsed := report.Count()
	if parsed != 5 || valid != 4 || unparsed != 1 {
		t.Errorf("Count() = %d, %d, %d; want 5, 4, 1", parsed, valid, unparsed)
	}
	if report.Entries[4].Error == "" {
		t.Error("expected a parse error for the garbage line")
	}

	// back-to-back windows do not overlap
	if diff := cmp.Diff([]Pair{{A: 0, B: 1}}, report.Overlaps); diff != "" {
		t.Errorf("overlaps -want/+got:\n%s", diff)
	}

	if report.Span == nil {
		t.Fatal("expected a span")
	}
	if got, want := report.Span.ISOString(), "2024-01-01T00:00:00.000Z/2024-01-02T01:00:00.000Z"; got != want {
		t.Errorf("span = %s, want %s", got, want)
	}
	if report.Files != 1 {
		t.Errorf("Files = %d, want 1", report.Files)
	}
}

func TestScan_Unit(t *testing.T) {
	s := newTestScanner(t, map[string]string{"/data/windows.intervals": listing})
	s.SetUnit(temporal.Day)

	report, err := s.Scan("/data/windows.intervals")
	if err != nil {
		t.Fatal(err)
	}
	// at day granularity nothing ending on January 1st overlaps anything starting that day
	if len(report.Overlaps) != 0 {
		t.Errorf("expected no overlaps at day granularity, got %v", report.Overlaps)
	}
	if report.Unit != "day" {
		t.Errorf("Unit = %q", report.Unit)
	}
}

func TestScan_Directory(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"/data/a.intervals":        "2024-01-01T00:00:00Z/2024-01-01T02:00:00Z\n",
		"/data/nested/b.txt":       "2024-01-01T01:00:00Z/2024-01-01T03:00:00Z\n",
		"/data/nested/deep/c.iso":  "2024-01-01T02:30:00Z/2024-01-01T04:00:00Z\n",
		"/data/ignored.log":        "2024-01-01T00:00:00Z/2024-01-02T00:00:00Z\n",
		"/data/nested/deep/d.list": "2024-01-01T00:00:00Z/2024-01-02T00:00:00Z\n",
	})

	report, err := s.Scan("/data")
	if err != nil {
		t.Fatal(err)
	}
	if report.Files != 3 {
		t.Errorf("Files = %d, want 3", report.Files)
	}
	if diff := cmp.Diff([]Pair{{A: 0, B: 1}, {A: 1, B: 2}}, report.Overlaps); diff != "" {
		t.Errorf("overlaps -want/+got:\n%s", diff)
	}

	s.AddExtension("list")
	report, err = s.Scan("/data")
	if err != nil {
		t.Fatal(err)
	}
	if report.Files != 4 {
		t.Errorf("Files = %d, want 4 after adding .list", report.Files)
	}

	s.SetMaxDepth(0)
	report, err = s.Scan("/data")
	if err != nil {
		t.Fatal(err)
	}
	if report.Files != 1 {
		t.Errorf("Files = %d, want 1 with depth 0", report.Files)
	}
}

func TestScan_Missing(t *testing.T) {
	s := newTestScanner(t, nil)
	if _, err := s.Scan("/nope"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestOverlaps_Sweep(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }
	entry := func(from, to int) Entry {
		iv := interval.New(at(from), at(to))
		return Entry{Interval: iv, Parsed: true, Valid: iv.IsValid()}
	}

	entries := []Entry{
		entry(10, 20),
		entry(0, 100),
		entry(15, 16),
		entry(20, 30),
		entry(50, 40),
		entry(29, 31),
	}
	want := []Pair{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {1, 5}, {3, 5}}
	if diff := cmp.Diff(want, overlaps(entries, temporal.Millisecond)); diff != "" {
		t.Errorf("overlaps -want/+got:\n%s", diff)
	}
}

func TestCoverage(t *testing.T) {
	s := newTestScanner(t, map[string]string{"/data/windows.intervals": listing})
	report, err := s.Scan("/data/windows.intervals")
	if err != nil {
		t.Fatal(err)
	}

	bins := report.Coverage(5)
	counts := make([]int, len(bins))
	for i, b := range bins {
		counts[i] = b.Count
	}
	if diff := cmp.Diff([]int{2, 1, 0, 0, 1}, counts); diff != "" {
		t.Errorf("counts -want/+got:\n%s", diff)
	}

	// bins are back to back and cover the whole span
	if !bins[0].Interval.Start().Equal(report.Span.Start()) || !bins[4].Interval.End().Equal(report.Span.End()) {
		t.Errorf("bins do not cover the span %s", report.Span)
	}
	for i := 1; i < len(bins); i++ {
		if !bins[i].Interval.Start().Equal(bins[i-1].Interval.End()) {
			t.Errorf("gap between bin %d and %d", i-1, i)
		}
	}

	if got := len(report.Coverage(0)); got != DefaultBins {
		t.Errorf("Coverage(0) returned %d bins, want %d", got, DefaultBins)
	}
}

func TestCoverage_Small(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := interval.New(start, start.Add(3*time.Millisecond))
	report := &Report{
		Entries: []Entry{{Interval: span, Parsed: true, Valid: true}},
		Span:    &span,
	}

	bins := report.Coverage(10)
	if len(bins) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(bins))
	}
	for _, b := range bins {
		if b.Count != 1 || b.Interval.Duration() != time.Millisecond {
			t.Errorf("unexpected bin %s with count %d", b.Interval, b.Count)
		}
	}

	if bins := (&Report{}).Coverage(4); bins != nil {
		t.Errorf("expected no bins without a span, got %d", len(bins))
	}
}

func TestCoverage_LongSpan(t *testing.T) {
	span := interval.MustParse("1000-01-01T00:00:00Z/3000-01-01T00:00:00Z")
	early := interval.MustParse("1100-01-01T00:00:00Z/1200-01-01T00:00:00Z")
	late := interval.MustParse("2500-01-01T00:00:00Z/2600-01-01T00:00:00Z")
	report := &Report{
		Entries: []Entry{
			{Interval: early, Parsed: true, Valid: true},
			{Interval: late, Parsed: true, Valid: true},
		},
		Span: &span,
	}

	bins := report.Coverage(2)
	if len(bins) != 2 || bins[0].Count != 1 || bins[1].Count != 1 {
		t.Fatalf("unexpected bins %+v", bins)
	}
	if !bins[1].Interval.End().Equal(span.End()) {
		t.Errorf("last bin ends at %v, want %v", bins[1].Interval.End(), span.End())
	}
	if bins[0].Interval.Milliseconds()+bins[1].Interval.Milliseconds() != span.Milliseconds() {
		t.Error("bins do not add up to the span")
	}
}

func TestCoverage_EmptySpan(t *testing.T) {
	span := interval.MustParse("2024-01-01T00:00:00Z/2024-01-01T00:00:00Z")
	report := &Report{
		Entries: []Entry{{Interval: span, Parsed: true, Valid: true}},
		Span:    &span,
	}

	bins := report.Coverage(4)
	if len(bins) != 1 || !bins[0].Interval.IsSame(span) {
		t.Fatalf("expected a single empty bin, got %+v", bins)
	}
}
