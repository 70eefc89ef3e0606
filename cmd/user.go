package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), s.user)
		return nil
	},
}

func printUser(w io.Writer, u *model.User) {
	name := u.Name
	if name == "" {
		name = "(not set)"
	}
	employed := "(not set)"
	if u.EmployedDate != nil {
		employed = timecalc.FormatDate(*u.EmployedDate)
	}
	fmt.Fprintf(w, "%-16s %s\n", "Name:", name)
	fmt.Fprintf(w, "%-16s %d %%\n", "Employment:", u.Employment)
	fmt.Fprintf(w, "%-16s %s\n", "Employed date:", employed)
	fmt.Fprintf(w, "%-16s %d\n", "Payed vacation:", u.PayedVacation)
	fmt.Fprintf(w, "%-16s %d\n", "Extra vacation:", u.ExtraVacation)
	fmt.Fprintf(w, "%-16s %s\n", "Vacation month:", u.VacationMonth)
	if next := u.NextWorkday(); !next.IsZero() {
		fmt.Fprintf(w, "%-16s %s\n", "Next workday:", timecalc.FormatDate(next))
	}
}
