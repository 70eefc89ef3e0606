package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/config"
	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/msgraph"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	outlookYear     int
	outlookFrom     string
	outlookTo       string
	outlookDryRun   bool
	outlookCategory string
	outlookTZ       string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Microsoft Graph with the device code flow",
	Args:  cobra.NoArgs,
	RunE:  runOutlookLogin,
}

var outlookLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved Microsoft Graph token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := msgraph.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var outlookHolidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Import all-day Outlook events as holidays into YYYY.conf",
	Args:  cobra.NoArgs,
	RunE:  runOutlookHolidays,
}

func init() {
	f := outlookHolidaysCmd.Flags()
	f.IntVar(&outlookYear, "year", 0, "Import one calendar year (default: the current year)")
	f.StringVar(&outlookFrom, "from", "", "Start date (YYYY-MM-DD); overrides --year")
	f.StringVar(&outlookTo, "to", "", "End date, inclusive (YYYY-MM-DD); requires --from")
	f.BoolVar(&outlookDryRun, "dry-run", false, "Print planned holiday lines without writing")
	f.StringVar(&outlookCategory, "category", "", "Only import events with this category (default from config)")
	f.StringVar(&outlookTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookCmd.AddCommand(outlookLoginCmd, outlookLogoutCmd, outlookHolidaysCmd)
}

func runOutlookLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, _, err := msgraph.Authenticate(context.Background(), cfg.Outlook.TenantID, cfg.Outlook.ClientID, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
	return nil
}

// holidayRange resolves the flags into a [from, to) range.
func holidayRange(year int, fromText, toText string, now time.Time) (time.Time, time.Time, error) {
	if toText != "" && fromText == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
	}
	if fromText == "" {
		if year == 0 {
			year = now.Year()
		}
		from := timecalc.Date(year, time.January, 1)
		return from, from.AddDate(1, 0, 0), nil
	}
	from, err := timecalc.ParseDate(fromText)
	if err != nil {
		return time.Time{}, time.Time{}, model.BadDate("invalid --from value %q", fromText)
	}
	to := from.AddDate(1, 0, 0)
	if toText != "" {
		end, err := timecalc.ParseDate(toText)
		if err != nil {
			return time.Time{}, time.Time{}, model.BadDate("invalid --to value %q", toText)
		}
		to = end.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must not be before --from")
	}
	return from, to, nil
}

func runOutlookHolidays(cmd *cobra.Command, args []string) error {
	from, to, err := holidayRange(outlookYear, outlookFrom, outlookTo, nowFunc())
	if err != nil {
		return err
	}
	s, err := loadSession()
	if err != nil {
		return err
	}
	category := s.cfg.Outlook.Category
	if outlookCategory != "" {
		category = outlookCategory
	}
	timezone := s.cfg.Outlook.Timezone
	if outlookTZ != "" {
		timezone = outlookTZ
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Importing Outlook holidays (%s - %s)%s...\n\n",
		timecalc.FormatDate(from), timecalc.FormatDate(to.AddDate(0, 0, -1)), dryTag)

	ctx := context.Background()
	tok, oauthCfg, err := msgraph.Authenticate(ctx, s.cfg.Outlook.TenantID, s.cfg.Outlook.ClientID, out)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, tok, oauthCfg)
	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	known := map[string]string{}
	for iso, name := range s.parser.Holidays() {
		known[iso] = name
	}
	result, err := msgraph.SyncHolidays(events, msgraph.SyncOptions{
		Base:     s.dir,
		Known:    known,
		Category: category,
		Timezone: timezone,
		DryRun:   outlookDryRun,
		Out:      out,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		return fmt.Errorf("%d holidays could not be imported", result.Errors)
	}
	return nil
}
