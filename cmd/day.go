package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the latest reported day",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var dayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "Show one reported day",
	Args:  cobra.ExactArgs(1),
	RunE:  runDay,
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	d := s.user.Today()
	if d == nil {
		fmt.Fprintln(out, "No days reported yet.")
		if next := s.user.NextWorkday(); !next.IsZero() {
			fmt.Fprintf(out, "Next workday: %s\n", timecalc.FormatDate(next))
		}
		return nil
	}
	printDay(out, d, nowFunc())
	if d.Complete() {
		fmt.Fprintf(out, "Next workday: %s\n", timecalc.FormatDate(s.user.NextWorkday()))
	}
	return nil
}

func runDay(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args[0])
	if err != nil {
		return err
	}
	s, err := loadSession()
	if err != nil {
		return err
	}
	d := s.user.Day(date)
	if d == nil {
		if name, ok := s.user.IsHoliday(date); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a holiday: %s\n", timecalc.FormatDate(date), name)
			return nil
		}
		return fmt.Errorf("no report for %s", timecalc.FormatDate(date))
	}
	printDay(cmd.OutOrStdout(), d, nowFunc())
	return nil
}
