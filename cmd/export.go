package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/snapshot"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	exportOutput string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:       "export <csv|json|sqlite>",
	Short:     "Export reported days",
	Long:      "Export reported days as CSV or JSON to stdout, or into a SQLite snapshot database.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"csv", "json", "sqlite"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout, or chrono.db in the data folder for sqlite)")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Only export one month (YYYY-MM); csv and json only")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	if args[0] == "sqlite" {
		path := exportOutput
		if path == "" {
			path = filepath.Join(s.dir, "chrono.db")
		}
		if err := exportSQLite(s, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", path)
		return nil
	}

	days, err := exportDays(s.user, exportMonth)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}
	if args[0] == "json" {
		return writeJSON(w, s.user, days)
	}
	writeCSV(w, days)
	return nil
}

func exportDays(u *model.User, month string) ([]*model.Day, error) {
	if month == "" {
		return u.AllDays(), nil
	}
	ym, err := timecalc.ParseYearMonth(month)
	if err != nil {
		return nil, model.BadDate("Bad month: %q. Use YYYY-MM.", month)
	}
	m := u.Month(ym)
	if m == nil {
		return nil, nil
	}
	return m.Days(), nil
}

func exportSQLite(s *session, path string) error {
	store, err := snapshot.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(s.user, s.parser.Archive)
}

type jsonExport struct {
	Name            string               `json:"name,omitempty"`
	FlextimeMinutes int                  `json:"flextime_minutes"`
	VacationLeft    int                  `json:"vacation_left"`
	Days            []snapshot.DayRecord `json:"days"`
}

func writeJSON(w io.Writer, u *model.User, days []*model.Day) error {
	out := jsonExport{
		Name:            u.Name,
		FlextimeMinutes: int(u.CalculateFlextime().Minutes()),
		VacationLeft:    u.VacationLeft(nil),
		Days:            make([]snapshot.DayRecord, 0, len(days)),
	}
	for _, d := range days {
		out.Days = append(out.Days, snapshot.DayRecordOf(d))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, days []*model.Day) {
	fmt.Fprintln(w, "date,type,start,lunch_minutes,end,deviation_minutes,worked_minutes,flex_minutes,info")
	for _, d := range days {
		r := snapshot.DayRecordOf(d)
		lunch := ""
		if r.LunchMinutes != nil {
			lunch = strconv.Itoa(*r.LunchMinutes)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d,%d,%d,%s\n",
			r.Date,
			r.Type,
			stringOrEmpty(r.StartTime),
			lunch,
			stringOrEmpty(r.EndTime),
			r.DeviationMinutes,
			r.WorkedMinutes,
			r.FlexMinutes,
			csvEscape(r.Info),
		)
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
