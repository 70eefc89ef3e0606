package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report single fields of a day",
}

var reportLunchCmd = &cobra.Command{
	Use:   "lunch <H:MM>",
	Short: "Report the lunch duration",
	Args:  cobra.ExactArgs(1),
	RunE: reportRunner(func(d *model.Day, args []string) error {
		return d.ReportLunchDuration(args[0])
	}),
}

var reportDeviationCmd = &cobra.Command{
	Use:   "deviation <[+-]H:MM>",
	Short: "Report a deviation subtracted from the worked hours",
	Args:  cobra.ExactArgs(1),
	RunE: reportRunner(func(d *model.Day, args []string) error {
		return d.ReportDeviation(args[0])
	}),
}

var reportCommentCmd = &cobra.Command{
	Use:   "comment <text>",
	Short: "Set the comment of a day",
	Args:  cobra.MinimumNArgs(1),
	RunE: reportRunner(func(d *model.Day, args []string) error {
		d.Comment = strings.Join(args, " ")
		return nil
	}),
}

var reportSickCmd = &cobra.Command{
	Use:   "sick",
	Short: "Mark a day as sick day",
	Args:  cobra.NoArgs,
	RunE:  reportRunner(classify(model.SickDay)),
}

var reportVacationCmd = &cobra.Command{
	Use:   "vacation",
	Short: "Mark a day as vacation",
	Args:  cobra.NoArgs,
	RunE:  reportRunner(classify(model.Vacation)),
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportDate, "date", "", "Date to report (YYYY-MM-DD, default today)")
	reportCmd.AddCommand(reportLunchCmd, reportDeviationCmd, reportCommentCmd, reportSickCmd, reportVacationCmd)
}

// classify marks a day that has no times reported yet.
func classify(t model.DayType) func(*model.Day, []string) error {
	return func(d *model.Day, _ []string) error {
		if d.StartTime != nil {
			return model.ReportError("Date %s already has reported times.", timecalc.FormatDate(d.Date))
		}
		d.SetType(t)
		return nil
	}
}

func reportRunner(apply func(*model.Day, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		day, err := reportField(s, reportDate, func(d *model.Day) error { return apply(d, args) })
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dayLine(day))
		return nil
	}
}

func reportField(s *session, dateText string, apply func(*model.Day) error) (*model.Day, error) {
	date, err := dateArg(dateText)
	if err != nil {
		return nil, err
	}
	day, err := s.reportDay(date)
	if err != nil {
		return nil, err
	}
	if err := apply(day); err != nil {
		return nil, err
	}
	return day, s.save(day)
}
