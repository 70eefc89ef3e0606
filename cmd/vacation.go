package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var vacationAsOf string

var vacationCmd = &cobra.Command{
	Use:   "vacation",
	Short: "Show used and remaining vacation days",
	Args:  cobra.NoArgs,
	RunE:  runVacation,
}

func init() {
	vacationCmd.Flags().StringVar(&vacationAsOf, "as-of", "", "Count vacation up to this date (YYYY-MM-DD)")
}

func runVacation(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	var asOf *time.Time
	if vacationAsOf != "" {
		d, err := dateArg(vacationAsOf)
		if err != nil {
			return err
		}
		asOf = &d
	}
	printVacation(cmd.OutOrStdout(), s.user, asOf)
	return nil
}

func printVacation(w io.Writer, u *model.User, asOf *time.Time) {
	if asOf != nil {
		fmt.Fprintf(w, "As of %s\n", timecalc.FormatDate(*asOf))
	}
	fmt.Fprintf(w, "%-18s %d\n", "Used vacation:", u.UsedVacation(asOf)+u.ArchivedVacation(asOf))
	fmt.Fprintf(w, "%-18s %d\n", "Vacation left:", u.VacationLeft(asOf))
	fmt.Fprintf(w, "%-18s %d\n", "Sick days:", u.SickDays())
}
