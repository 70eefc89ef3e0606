package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	stopDate      string
	stopLunch     string
	stopDeviation string
	stopComment   string
)

var stopCmd = &cobra.Command{
	Use:   "stop [H:MM]",
	Short: "Report the end time of the day in progress (default: now)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopDate, "date", "", "Date to report (YYYY-MM-DD, default: the day in progress)")
	stopCmd.Flags().StringVar(&stopLunch, "lunch", "", "Lunch duration (H:MM) if not yet reported")
	stopCmd.Flags().StringVar(&stopDeviation, "deviation", "", "Signed deviation (e.g. -0:30)")
	stopCmd.Flags().StringVar(&stopComment, "comment", "", "Comment for the day")
}

func runStop(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	day, err := stopDay(s, stopDate, optionalArg(args), stopLunch, stopDeviation, stopComment)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s at %s. Worked %s, flextime %s.\n",
		timecalc.FormatDate(day.Date),
		timecalc.FormatClock(*day.EndTime),
		timecalc.FormatDuration(day.WorkedHours(), false),
		timecalc.FormatDuration(day.CalculateFlextime(), true))
	return nil
}

func stopDay(s *session, dateText, clock, lunch, deviation, comment string) (*model.Day, error) {
	date, err := dateArg(dateText)
	if err != nil {
		return nil, err
	}
	if latest := s.user.Today(); dateText == "" && latest != nil && latest.InProgress() {
		date = latest.Date
	}
	day := s.user.Day(date)
	if day == nil {
		return nil, model.ReportError("Date %s has no start time. Run \"chrono start\" first.", timecalc.FormatDate(date))
	}
	if day, err = s.reportDay(date); err != nil {
		return nil, err
	}
	if lunch != "" {
		if err := day.ReportLunchDuration(lunch); err != nil {
			return nil, err
		}
	}
	if deviation != "" {
		if err := day.ReportDeviation(deviation); err != nil {
			return nil, err
		}
	}
	if err := day.ReportEndTime(clockArg(clock)); err != nil {
		return nil, err
	}
	if comment != "" {
		day.Comment = comment
	}
	return day, s.save(day)
}
