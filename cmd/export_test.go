package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/snapshot"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	first := reportedDay(t, timecalc.Date(2014, 9, 1), "8:00", "1:00", "17:01")
	first.Comment = "Dentist, then office"
	sick := model.NewDay(timecalc.Date(2014, 9, 2))
	sick.SetType(model.SickDay)

	var buf bytes.Buffer
	writeCSV(&buf, []*model.Day{first, sick})
	want := "date,type,start,lunch_minutes,end,deviation_minutes,worked_minutes,flex_minutes,info\n" +
		"2014-09-01,working_day,8:00,60,17:01,0,481,1,\"Dentist, then office.\"\n" +
		"2014-09-02,sick_day,,,,0,0,0,\n"
	if got := buf.String(); got != want {
		t.Errorf("writeCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteJSON(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := startDay(s, "2014-09-01", "8:00"); err != nil {
		t.Fatal(err)
	}
	if _, err := stopDay(s, "2014-09-01", "17:30", "1:00", "", ""); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, s.user, s.user.AllDays()); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Name            string `json:"name"`
		FlextimeMinutes int    `json:"flextime_minutes"`
		Days            []struct {
			Date        string `json:"date"`
			FlexMinutes int    `json:"flex_minutes"`
		} `json:"days"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Name != "Mrs Teapot" || got.FlextimeMinutes != 30 {
		t.Errorf("header = %+v", got)
	}
	if len(got.Days) != 1 || got.Days[0].Date != "2014-09-01" || got.Days[0].FlexMinutes != 30 {
		t.Errorf("days = %+v", got.Days)
	}
}

func TestExportSQLite(t *testing.T) {
	s, dir := newTestSession(t)
	if _, err := startDay(s, "2014-09-01", "8:00"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "chrono.db")
	if err := exportSQLite(s, path); err != nil {
		t.Fatalf("exportSQLite: %v", err)
	}
	store, err := snapshot.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	days, err := store.Days()
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Complete {
		t.Errorf("days = %+v", days)
	}
}

func TestExportDaysByMonth(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := startDay(s, "2014-09-01", "8:00"); err != nil {
		t.Fatal(err)
	}
	days, err := exportDays(s.user, "2014-09")
	if err != nil || len(days) != 1 {
		t.Errorf("exportDays(2014-09) = %d days, %v", len(days), err)
	}
	days, err = exportDays(s.user, "2014-10")
	if err != nil || len(days) != 0 {
		t.Errorf("exportDays(2014-10) = %d days, %v", len(days), err)
	}
	if _, err := exportDays(s.user, "September"); err == nil {
		t.Error("expected an error for a bad month")
	}
}
