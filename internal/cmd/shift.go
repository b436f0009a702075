package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheerioskun/tinterval/internal/utils"
	"github.com/cheerioskun/tinterval/temporal"
)

var (
	shiftStartBy string
	shiftEndBy   string
	shiftStart   string
	shiftEnd     string
)

// shiftCmd represents the shift command
var shiftCmd = &cobra.Command{
	Use:   "shift <interval>",
	Short: "Move the start or end of an interval",
	Long: `Move the start and/or end of an interval and print the result.

--start-by and --end-by add a signed duration to the current bound;
--start and --end replace it. The result is not required to be valid.

Examples:
  tinterval shift 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z --end-by P1D
  tinterval shift 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z --start-by -PT6H
  tinterval shift 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z --end now`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	// Shift-specific flags
	shiftCmd.Flags().StringVar(&shiftStartBy, "start-by", "", "duration added to the start")
	shiftCmd.Flags().StringVar(&shiftEndBy, "end-by", "", "duration added to the end")
	shiftCmd.Flags().StringVar(&shiftStart, "start", "", "replacement start")
	shiftCmd.Flags().StringVar(&shiftEnd, "end", "", "replacement end")
	shiftCmd.MarkFlagsMutuallyExclusive("start", "start-by")
	shiftCmd.MarkFlagsMutuallyExclusive("end", "end-by")
}

func runShift(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	f := s.factory()

	iv, err := parseInterval(f, args[0])
	if err != nil {
		return err
	}
	original := iv

	if cmd.Flags().Changed("start-by") {
		d, err := temporal.ParseDuration(shiftStartBy)
		if err != nil {
			return fmt.Errorf("invalid --start-by: %w", err)
		}
		iv = iv.WithStartFunc(func(t time.Time) time.Time { return t.Add(d) })
	}
	if cmd.Flags().Changed("start") {
		if iv, err = f.WithStart(iv, shiftStart); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	if cmd.Flags().Changed("end-by") {
		d, err := temporal.ParseDuration(shiftEndBy)
		if err != nil {
			return fmt.Errorf("invalid --end-by: %w", err)
		}
		iv = iv.WithEndFunc(func(t time.Time) time.Time { return t.Add(d) })
	}
	if cmd.Flags().Changed("end") {
		if iv, err = f.WithEnd(iv, shiftEnd); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	}

	utils.Debug("shifted %s to %s", original, iv)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, iv.ISOString())
	if !iv.IsValidIn(s.unit) {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("warning: the shifted interval is not valid"))
	}
	if s.verbose {
		view := s.timeline("")
		view.Add("before", original)
		view.Add("after", iv)
		fmt.Fprintln(out, view.Render())
	}
	return nil
}
