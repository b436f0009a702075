package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cheerioskun/tinterval/internal/scanner"
)

var (
	scanMaxDepth   int
	scanJSON       bool
	scanExtensions []string
	scanMaxRows    int
	scanBins       int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan interval listings for invalid and overlapping entries",
	Long: `Scan a file, or every listing file under a directory, holding one
interval per line. A line may start with a label:

  # comment
  db-maintenance 2024-01-01T00:00:00Z/2024-01-01T04:00:00Z
  2024-01-01T05:00:00Z/2024-01-01T06:00:00Z

This command reports:
- Parsed, valid and unparsed entry counts
- The overall span of the valid entries
- Every pair of overlapping entries at the configured unit
- With --bins, how many entries are active across the span

Examples:
  tinterval scan windows.intervals
  tinterval scan ./schedules --max-depth 2 --ext .list
  tinterval scan windows.intervals --unit day --json
  tinterval scan windows.intervals --bins 24`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Scan-specific flags
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 10, "maximum directory depth to scan")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the report as JSON")
	scanCmd.Flags().StringSliceVar(&scanExtensions, "ext", nil, "extra file extensions to read in directories")
	scanCmd.Flags().IntVar(&scanMaxRows, "max-rows", 20, "maximum number of entries drawn on the timeline")
	scanCmd.Flags().IntVar(&scanBins, "bins", 0, "number of coverage histogram bins (0 disables the histogram)")
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	path := args[0]
	if absPath, err := filepath.Abs(path); err == nil && isOsFs() {
		path = absPath
	}

	sc := scanner.NewIntervalScanner(appFs, s.factory())
	sc.SetMaxDepth(scanMaxDepth)
	sc.SetUnit(s.unit)
	for _, ext := range scanExtensions {
		sc.AddExtension(ext)
	}

	report, err := sc.Scan(path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var coverage []scanner.Bin
	if scanBins > 0 {
		coverage = report.Coverage(scanBins)
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		data, err := json.MarshalIndent(struct {
			*scanner.Report
			Coverage []scanner.Bin `json:"coverage,omitempty"`
		}{report, coverage}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	parsed, valid, unparsed := report.Count()
	fmt.Fprintln(out, "Scan Results:")
	fmt.Fprintf(out, "  Path: %s\n", report.Path)
	fmt.Fprintf(out, "  Files read: %d\n", report.Files)
	fmt.Fprintf(out, "  Entries: %d (%d valid, %d invalid, %d unparsed)\n",
		len(report.Entries), valid, parsed-valid, unparsed)

	if report.Span != nil {
		formatted := s.format(*report.Span)
		fmt.Fprintf(out, "  Span: %s - %s (%s)\n", formatted.Start, formatted.End, report.Span.ISODuration())
	} else {
		fmt.Fprintf(out, "  Span: (no valid entries)\n")
	}

	fmt.Fprintf(out, "  Overlaps at %s: %d\n", report.Unit, len(report.Overlaps))
	for _, p := range report.Overlaps {
		a, b := report.Entries[p.A], report.Entries[p.B]
		fmt.Fprintf(out, "    %s overlaps %s\n", a.Label, b.Label)
	}

	for _, e := range report.Entries {
		switch {
		case !e.Parsed:
			fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("  %s:%d: %s", e.File, e.Line, e.Error)))
		case !e.Valid:
			fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("  %s:%d: start is not before end", e.File, e.Line)))
		}
	}

	if len(coverage) > 0 {
		h := s.histogram("Coverage")
		for _, b := range coverage {
			h.Add(b.Interval, b.Count)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, h.Render())
	}

	if s.verbose && valid > 0 {
		view := s.timeline("")
		shown := 0
		for _, e := range report.Entries {
			if !e.Valid {
				continue
			}
			if shown == scanMaxRows {
				break
			}
			view.Add(e.Label, e.Interval)
			shown++
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, view.Render())
		if valid > shown {
			fmt.Fprintf(out, "  ... and %d more entries\n", valid-shown)
		}
	}

	return nil
}

func isOsFs() bool {
	_, ok := appFs.(*afero.OsFs)
	return ok
}
