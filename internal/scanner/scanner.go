package scanner

import (
	"bufio"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/cheerioskun/tinterval/internal/utils"
	"github.com/cheerioskun/tinterval/interval"
	"github.com/cheerioskun/tinterval/temporal"
)

// Entry is one interval read from a listing
type Entry struct {
	File     string                `json:"file"`
	Line     int                   `json:"line"`
	Label    string                `json:"label"`
	Raw      string                `json:"raw"`
	Interval interval.TimeInterval `json:"interval"`
	Parsed   bool                  `json:"parsed"`
	Valid    bool                  `json:"valid"`
	Error    string                `json:"error,omitempty"`
}

// Pair holds the indexes of two entries whose intervals overlap, A < B
type Pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Report summarises a scanned listing
type Report struct {
	Path     string                 `json:"path"`
	Files    int                    `json:"files"`
	Unit     string                 `json:"unit"`
	Entries  []Entry                `json:"entries"`
	Span     *interval.TimeInterval `json:"span,omitempty"`
	Overlaps []Pair                 `json:"overlaps"`
}

// Count returns the number of parsed, valid and unparsed entries
func (r *Report) Count() (parsed, valid, unparsed int) {
	for _, e := range r.Entries {
		if !e.Parsed {
			unparsed++
			continue
		}
		parsed++
		if e.Valid {
			valid++
		}
	}
	return parsed, valid, unparsed
}

// IntervalScanner reads interval listings: one interval per line, optionally
// preceded by a label. Blank lines and lines starting with '#' are skipped.
type IntervalScanner struct {
	fs       afero.Fs
	factory  *interval.Factory
	maxDepth int
	unit     temporal.Unit
	exts     map[string]bool
}

// NewIntervalScanner creates a scanner reading from fs and parsing with factory
func NewIntervalScanner(fs afero.Fs, factory *interval.Factory) *IntervalScanner {
	if factory == nil {
		factory = interval.NewFactory(nil)
	}
	return &IntervalScanner{
		fs:       fs,
		factory:  factory,
		maxDepth: 10, // Default max depth
		unit:     temporal.Millisecond,
		exts: map[string]bool{
			".intervals": true,
			".txt":       true,
			".iso":       true,
		},
	}
}

// SetMaxDepth sets the maximum directory depth
func (s *IntervalScanner) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// SetUnit sets the granularity used for overlap detection
func (s *IntervalScanner) SetUnit(unit temporal.Unit) {
	s.unit = unit
}

// AddExtension adds a file extension read when scanning directories
func (s *IntervalScanner) AddExtension(ext string) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s.exts[ext] = true
}

// Scan reads a listing file, or every listing under a directory
func (s *IntervalScanner) Scan(path string) (*Report, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", path, err)
	}

	report := &Report{Path: path, Unit: s.unit.String(), Overlaps: []Pair{}}

	if info.IsDir() {
		if err := s.scanDirectory(path, "", 0, report); err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
	} else {
		if err := s.scanFile(path, filepath.Base(path), report); err != nil {
			return nil, err
		}
	}

	report.Span = span(report.Entries)
	report.Overlaps = overlaps(report.Entries, s.unit)

	utils.Debug("scanned %s: %d files, %d entries, %d overlaps",
		path, report.Files, len(report.Entries), len(report.Overlaps))
	return report, nil
}

// scanDirectory recursively scans a directory for listing files
func (s *IntervalScanner) scanDirectory(basePath, relativePath string, depth int, report *Report) error {
	if depth > s.maxDepth {
		return nil // Skip if max depth exceeded
	}

	currentPath := filepath.Join(basePath, relativePath)

	entries, err := afero.ReadDir(s.fs, currentPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", currentPath, err)
	}

	for _, entry := range entries {
		entryRelPath := filepath.Join(relativePath, entry.Name())

		if entry.IsDir() {
			if err := s.scanDirectory(basePath, entryRelPath, depth+1, report); err != nil {
				// Log warning but continue scanning
				utils.Warning("failed to scan directory %s: %v", entryRelPath, err)
			}
			continue
		}

		if !s.exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if err := s.scanFile(filepath.Join(basePath, entryRelPath), entryRelPath, report); err != nil {
			utils.Warning("failed to read %s: %v", entryRelPath, err)
		}
	}

	return nil
}

func (s *IntervalScanner) scanFile(path, name string, report *Report) error {
	file, err := s.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		report.Entries = append(report.Entries, s.parseLine(name, lineNo, line))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("error reading file %s: %w", path, err)
	}

	report.Files++
	return nil
}

// parseLine reads "[label] <start>/<end>"; the interval is the last field
func (s *IntervalScanner) parseLine(name string, lineNo int, line string) Entry {
	entry := Entry{
		File:  name,
		Line:  lineNo,
		Label: fmt.Sprintf("%s:%d", name, lineNo),
		Raw:   line,
	}

	text := line
	if i := strings.LastIndexAny(line, " \t"); i >= 0 {
		entry.Label = strings.TrimSpace(line[:i])
		text = line[i+1:]
	}

	iv, err := s.factory.Parse(text)
	if err != nil {
		utils.Warning("%s:%d: %v", name, lineNo, err)
		entry.Error = err.Error()
		return entry
	}

	entry.Interval = iv
	entry.Parsed = true
	entry.Valid = iv.IsValid()
	return entry
}

// span covers every valid entry, nil when there is none
func span(entries []Entry) *interval.TimeInterval {
	var out *interval.TimeInterval
	for _, e := range entries {
		if !e.Valid {
			continue
		}
		if out == nil {
			iv := e.Interval
			out = &iv
			continue
		}
		merged := *out
		if e.Interval.Start().Before(merged.Start()) {
			merged = merged.WithStart(e.Interval.Start())
		}
		if e.Interval.End().After(merged.End()) {
			merged = merged.WithEnd(e.Interval.End())
		}
		out = &merged
	}
	return out
}

// overlaps finds every overlapping pair of valid entries with a sweep over
// the entries ordered by start.
func overlaps(entries []Entry, unit temporal.Unit) []Pair {
	order := make([]int, 0, len(entries))
	for i, e := range entries {
		if e.Valid {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].Interval.Start().Before(entries[order[b]].Interval.Start())
	})

	pairs := []Pair{}
	var active []int
	for _, i := range order {
		cur := entries[i].Interval

		// Nothing starting at or after cur can overlap an entry that ends before cur starts
		kept := active[:0]
		for _, j := range active {
			if temporal.IsBefore(cur.Start(), entries[j].Interval.End(), unit) {
				kept = append(kept, j)
			}
		}
		active = kept

		for _, j := range active {
			if cur.OverlapsIn(entries[j].Interval, unit) {
				a, b := j, i
				if a > b {
					a, b = b, a
				}
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
		active = append(active, i)
	}

	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].A != pairs[y].A {
			return pairs[x].A < pairs[y].A
		}
		return pairs[x].B < pairs[y].B
	})
	return pairs
}
