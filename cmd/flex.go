package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

var flexCmd = &cobra.Command{
	Use:   "flex",
	Short: "Show the flextime balance",
	Args:  cobra.NoArgs,
	RunE:  runFlex,
}

func runFlex(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	return printFlex(cmd.OutOrStdout(), s)
}

func printFlex(w io.Writer, s *session) error {
	u := s.user
	if u.Flextime != 0 {
		fmt.Fprintf(w, "%-10s %s\n", "Carried", timecalc.FormatDuration(u.Flextime, true))
	}
	if week, err := u.CurrentWeek(); err != nil {
		return err
	} else if week != nil {
		fmt.Fprintf(w, "%-10s %s\n", "Week", timecalc.FormatDuration(week.CalculateFlextime(), true))
	}
	if m := u.CurrentMonth(); m != nil {
		fmt.Fprintf(w, "%-10s %s\n", "Month", timecalc.FormatDuration(m.CalculateFlextime(), true))
	}
	if y := u.CurrentYear(); y != nil {
		fmt.Fprintf(w, "%-10s %s\n", "Year", timecalc.FormatDuration(y.CalculateFlextime(), true))
	}
	fmt.Fprintf(w, "%-10s %s\n", "Total", timecalc.FormatDuration(u.CalculateFlextime(), true))
	return nil
}
