package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheerioskun/tinterval/internal/utils"
	"github.com/cheerioskun/tinterval/interval"
)

// overlapsCmd represents the overlaps command
var overlapsCmd = &cobra.Command{
	Use:   "overlaps <interval> <interval>",
	Short: "Report whether two intervals share any instant",
	Long: `Report whether two intervals share any instant at the configured unit.

An interval ending exactly where the other starts does not overlap it.

Examples:
  tinterval overlaps 2024-01-01T00:00:00Z/2024-01-01T05:00:00Z 2024-01-01T04:00:00Z/2024-01-01T08:00:00Z
  tinterval overlaps a/b c/d --unit day`,
	Args: cobra.ExactArgs(2),
	RunE: runOverlaps,
}

// includesCmd represents the includes command
var includesCmd = &cobra.Command{
	Use:   "includes <interval> <point>",
	Short: "Report whether start <= point < end",
	Long: `Report whether a point in time lies within an interval. The start is
included and the end excluded.

The point accepts ISO-8601 timestamps, dates, "now" and the other layouts
understood by the interval parser.

Examples:
  tinterval includes 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z 2024-01-01T12:00:00Z
  tinterval includes 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z now`,
	Args: cobra.ExactArgs(2),
	RunE: runIncludes,
}

// sameCmd represents the same command
var sameCmd = &cobra.Command{
	Use:   "same <interval> <interval>",
	Short: "Report whether two intervals have the same bounds",
	Args:  cobra.ExactArgs(2),
	RunE:  runSame,
}

// intersectCmd represents the intersect command
var intersectCmd = &cobra.Command{
	Use:   "intersect <interval> <interval>",
	Short: "Print the part shared by two intervals",
	Args:  cobra.ExactArgs(2),
	RunE:  runIntersect,
}

func init() {
	rootCmd.AddCommand(overlapsCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(sameCmd)
	rootCmd.AddCommand(intersectCmd)
}

// parsePair parses the two interval arguments
func parsePair(s *settings, args []string) (interval.TimeInterval, interval.TimeInterval, error) {
	f := s.factory()
	a, err := parseInterval(f, args[0])
	if err != nil {
		return interval.TimeInterval{}, interval.TimeInterval{}, err
	}
	b, err := parseInterval(f, args[1])
	if err != nil {
		return interval.TimeInterval{}, interval.TimeInterval{}, err
	}
	return a, b, nil
}

func runOverlaps(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	a, b, err := parsePair(s, args)
	if err != nil {
		return err
	}

	result := a.OverlapsIn(b, s.unit)
	utils.Debug("overlaps(%s, %s, %s) = %v", a, b, s.unit, result)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBool(result))
	if s.verbose {
		view := s.timeline("")
		view.Add("a", a)
		view.Add("b", b)
		fmt.Fprintln(out, view.Render())
	}
	return nil
}

func runIncludes(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	f := s.factory()

	iv, err := parseInterval(f, args[0])
	if err != nil {
		return err
	}
	point, err := f.Parser().Point(args[1])
	if err != nil {
		return fmt.Errorf("failed to parse point %q: %w", args[1], err)
	}

	result := iv.IncludesIn(point, s.unit)
	utils.Debug("includes(%s, %s, %s) = %v", iv, point, s.unit, result)

	fmt.Fprintln(cmd.OutOrStdout(), renderBool(result))
	return nil
}

func runSame(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	a, b, err := parsePair(s, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderBool(a.IsSameIn(b, s.unit)))
	return nil
}

func runIntersect(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	a, b, err := parsePair(s, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	common, ok := a.Intersection(b)
	if !ok {
		fmt.Fprintln(out, warnStyle.Render("no intersection"))
		return nil
	}

	fmt.Fprintln(out, common.ISOString())
	if s.verbose {
		view := s.timeline("")
		view.Add("a", a)
		view.Add("b", b)
		view.Add("a∩b", common)
		fmt.Fprintln(out, view.Render())
	}
	return nil
}
