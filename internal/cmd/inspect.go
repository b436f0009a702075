package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheerioskun/tinterval/interval"
	"github.com/cheerioskun/tinterval/temporal"
)

var (
	inspectStart    string
	inspectEnd      string
	inspectDuration string
	inspectJSON     bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [interval]",
	Short: "Show the bounds, duration and validity of an interval",
	Long: `Show the bounds, duration and validity of an interval.

The interval is either given in ISO-8601 interval notation or built from
exactly two of --start, --end and --duration. Durations accept ISO-8601
(P1DT2H) or Go syntax (26h).

Examples:
  tinterval inspect 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z
  tinterval inspect --start 2024-01-01 --duration P1D
  tinterval inspect --end now --duration 1h --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	// Inspect-specific flags
	inspectCmd.Flags().StringVar(&inspectStart, "start", "", "inclusive start")
	inspectCmd.Flags().StringVar(&inspectEnd, "end", "", "exclusive end")
	inspectCmd.Flags().StringVar(&inspectDuration, "duration", "", "duration added to start or subtracted from end")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the result as JSON")
}

// inspectResult is the JSON form of the inspect output
type inspectResult struct {
	Interval   interval.TimeInterval `json:"interval"`
	Start      string                `json:"start"`
	End        string                `json:"end"`
	Duration   string                `json:"duration"`
	DurationMs int64                 `json:"duration_ms"`
	Valid      bool                  `json:"valid"`
	Unit       string                `json:"unit"`
	Formatted  interval.Formatted    `json:"formatted"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	f := s.factory()

	var iv interval.TimeInterval
	if len(args) == 1 {
		if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") || cmd.Flags().Changed("duration") {
			return fmt.Errorf("give either an interval argument or --start/--end/--duration, not both")
		}
		iv, err = parseInterval(f, args[0])
	} else {
		iv, err = f.Build(inspectConfig(cmd))
	}
	if err != nil {
		return fmt.Errorf("failed to build interval: %w", err)
	}

	result := inspectResult{
		Interval:   iv,
		Start:      temporal.FormatISO(iv.Start()),
		End:        temporal.FormatISO(iv.End()),
		Duration:   iv.ISODuration(),
		DurationMs: iv.Milliseconds(),
		Valid:      iv.IsValidIn(s.unit),
		Unit:       s.unit.String(),
		Formatted:  s.format(iv),
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printField(out, "Interval", iv.ISOString())
	printField(out, "Start", result.Formatted.Start)
	printField(out, "End", result.Formatted.End)
	if d := iv.Duration(); d.Milliseconds() == result.DurationMs {
		printField(out, "Duration", fmt.Sprintf("%s (%s)", result.Duration, d))
	} else {
		printField(out, "Duration", fmt.Sprintf("%s (%d ms)", result.Duration, result.DurationMs))
	}
	printField(out, "Valid", renderBool(result.Valid)+" at "+result.Unit)

	if !result.Valid {
		fmt.Fprintln(out, warnStyle.Render("The start is not before the end."))
		return nil
	}

	if s.verbose {
		view := s.timeline("")
		view.Add("interval", iv)
		fmt.Fprintln(out)
		fmt.Fprintln(out, view.Render())
	}
	return nil
}

// inspectConfig builds a Config from the flags that were set
func inspectConfig(cmd *cobra.Command) interval.Config {
	var c interval.Config
	if cmd.Flags().Changed("start") {
		c.Start = inspectStart
	}
	if cmd.Flags().Changed("end") {
		c.End = inspectEnd
	}
	if cmd.Flags().Changed("duration") {
		c.Duration = inspectDuration
	}
	return c
}
