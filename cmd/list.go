package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var weekDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the current week",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show the days of a month",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMonth,
}

var yearCmd = &cobra.Command{
	Use:   "year [YYYY]",
	Short: "Show the monthly totals of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runYear,
}

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Show the week containing this date (YYYY-MM-DD)")
}

func runWeek(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	var week *model.Week
	if weekDate == "" {
		week, err = s.user.CurrentWeek()
	} else {
		week, err = weekOf(s.user, weekDate)
	}
	if err != nil {
		return err
	}
	printWeek(cmd.OutOrStdout(), week)
	return nil
}

// weekOf builds the Week of the reported days around date.
func weekOf(u *model.User, text string) (*model.Week, error) {
	date, err := dateArg(text)
	if err != nil {
		return nil, err
	}
	monday, sunday := timecalc.WeekRange(date)
	var days []*model.Day
	for d := monday; !d.After(sunday); d = d.AddDate(0, 0, 1) {
		if day := u.Day(d); day != nil {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		year, number := date.ISOWeek()
		return model.NewWeek(year, number)
	}
	return model.WeekFromDays(days...)
}

func printWeek(w io.Writer, week *model.Week) {
	if week == nil {
		fmt.Fprintln(w, "No days reported.")
		return
	}
	fmt.Fprintf(w, "Week %d-W%02d\n", week.Year, week.Number)
	var reported []*model.Day
	for _, d := range week.Days() {
		if !week.Owns(d) {
			reported = append(reported, d)
		}
	}
	printDays(w, reported)
	fmt.Fprintln(w, ruler)
	fmt.Fprintf(w, "%-14s  flextime %s\n", "Week", timecalc.FormatDuration(week.CalculateFlextime(), true))
}

func runMonth(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	m := s.user.CurrentMonth()
	if len(args) == 1 {
		ym, err := timecalc.ParseYearMonth(args[0])
		if err != nil {
			return model.BadDate("Bad month: %q. Use YYYY-MM.", args[0])
		}
		m = s.user.Month(ym)
		if m == nil {
			return fmt.Errorf("no report for %s", ym)
		}
	}
	if m == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No days reported yet.")
		return nil
	}
	printMonth(cmd.OutOrStdout(), m)
	return nil
}

func printMonth(w io.Writer, m *model.Month) {
	fmt.Fprintf(w, "%s %d\n", m.Month, m.Year)
	printDays(w, m.Days())
	printTotals(w, "Month", m.CalculateFlextime(), m.UsedVacation(nil), m.SickDays())
	if !m.Complete() {
		fmt.Fprintf(w, "Next workday: %s\n", timecalc.FormatDate(m.NextWorkday()))
	}
}

func runYear(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	y := s.user.CurrentYear()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return model.BadDate("Bad year: %q. Use YYYY.", args[0])
		}
		y = s.user.Year(n)
		if y == nil {
			return fmt.Errorf("no report for %d", n)
		}
	}
	if y == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No days reported yet.")
		return nil
	}
	printYear(cmd.OutOrStdout(), y)
	return nil
}

func printYear(w io.Writer, y *model.Year) {
	fmt.Fprintf(w, "Year %d\n", y.Year)
	fmt.Fprintf(w, "%-10s %5s %9s %9s %5s\n", "Month", "Days", "Flextime", "Vacation", "Sick")
	fmt.Fprintln(w, ruler)
	for _, m := range y.Months() {
		fmt.Fprintf(w, "%-10s %5d %9s %9d %5d\n",
			m.YearMonth, len(m.Days()), timecalc.FormatDuration(m.CalculateFlextime(), true), m.UsedVacation(nil), m.SickDays())
	}
	printTotals(w, "Year", y.CalculateFlextime(), y.UsedVacation(nil), y.SickDays())
}
