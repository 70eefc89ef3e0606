package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var startDate string

var startCmd = &cobra.Command{
	Use:   "start [H:MM]",
	Short: "Report the start time of a day (default: now)",
	Long: `Report the start time of today, or of the next workday when today
is not reported yet. Without an argument the current time is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&startDate, "date", "", "Date to report (YYYY-MM-DD, default: today or the next workday)")
}

func runStart(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	day, err := startDay(s, startDate, optionalArg(args))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started %s at %s.\n",
		timecalc.FormatDate(day.Date), timecalc.FormatClock(*day.StartTime))
	return nil
}

func startDay(s *session, dateText, clock string) (*model.Day, error) {
	date, err := dateArg(dateText)
	if err != nil {
		return nil, err
	}
	if dateText == "" {
		date = defaultStartDate(s, date)
	}
	day, err := s.reportDay(date)
	if err != nil {
		return nil, err
	}
	if err := day.ReportStartTime(clockArg(clock)); err != nil {
		return nil, err
	}
	return day, s.save(day)
}

// defaultStartDate picks the day a plain "start" reports: today once it is
// reported, otherwise the next workday.
func defaultStartDate(s *session, today time.Time) time.Time {
	if s.user.Day(today) != nil {
		return today
	}
	if next := s.user.NextWorkday(); !next.IsZero() {
		return next
	}
	return today
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
