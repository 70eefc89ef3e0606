package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/storage"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestWriteLineCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2014-09.txt")
	if err := storage.WriteLine(path, "1. 8:00"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got := readFile(t, path); got != "1. 8:00\n" {
		t.Errorf("file = %q, want %q", got, "1. 8:00\n")
	}
}

func TestWriteLineReplacesLastDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2014-09.txt")
	steps := []struct {
		line string
		want string
	}{
		{"1. 8:00 1:00 17:00", "1. 8:00 1:00 17:00\n"},
		{" 2. 8:00", "1. 8:00 1:00 17:00\n2. 8:00\n"},
		{" 2. 8:00 1:00", "1. 8:00 1:00 17:00\n2. 8:00 1:00\n"},
		{"3. V", "1. 8:00 1:00 17:00\n2. 8:00 1:00\n3. V\n"},
	}
	for _, s := range steps {
		if err := storage.WriteLine(path, s.line); err != nil {
			t.Fatalf("WriteLine(%q): %v", s.line, err)
		}
		if got := readFile(t, path); got != s.want {
			t.Errorf("after %q file = %q, want %q", s.line, got, s.want)
		}
	}
}

func TestWriteLineStripsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2014-09.txt")
	if err := os.WriteFile(path, []byte("\n1. 8:00 1:00 17:00\n\n   \n 2. 8:00"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := storage.WriteLine(path, "2. 8:00 1:00"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	want := "1. 8:00 1:00 17:00\n2. 8:00 1:00\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestWriteLineRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	err := storage.WriteLine(filepath.Join(dir, "notes.txt"), "1. 8:00")
	if !errors.Is(err, model.ErrReport) {
		t.Errorf("bad file name: error = %v, want ErrReport", err)
	}
	err = storage.WriteLine(filepath.Join(dir, "2014-09.txt"), "8:00 1:00")
	if !errors.Is(err, model.ErrReport) {
		t.Errorf("bad line: error = %v, want ErrReport", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "2014-09.txt")); !os.IsNotExist(statErr) {
		t.Error("rejected line must not create the month file")
	}
}

func TestWriteLineLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2014-09.txt")
	if err := storage.WriteLine(path, "1. S"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after atomic write")
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2014.conf")
	if err := storage.AppendLine(path, `2014-12-25: "Christmas Day"`); err != nil {
		t.Fatal(err)
	}
	if err := storage.AppendLine(path, `2014-12-26: "Boxing Day"`); err != nil {
		t.Fatal(err)
	}
	want := "2014-12-25: \"Christmas Day\"\n2014-12-26: \"Boxing Day\"\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestListing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2014-10.txt", "2014-09.txt", "2015.conf", "2014.cfg", "user.cfg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	months, err := storage.MonthFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 2 || filepath.Base(months[0]) != "2014-09.txt" || filepath.Base(months[1]) != "2014-10.txt" {
		t.Errorf("MonthFiles = %v", months)
	}

	years, err := storage.YearFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(years) != 2 || filepath.Base(years[0]) != "2014.cfg" {
		t.Errorf("YearFiles = %v", years)
	}

	user, ok := storage.UserFile(dir)
	if !ok || filepath.Base(user) != "user.cfg" {
		t.Errorf("UserFile = %q, %v", user, ok)
	}

	missing, err := storage.MonthFiles(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Errorf("MonthFiles on missing dir = %v, %v", missing, err)
	}
}

func TestPaths(t *testing.T) {
	ym := timecalc.MonthOf(time.Date(2014, 9, 3, 0, 0, 0, 0, time.UTC))
	if got := filepath.Base(storage.MonthFilePath("/data", ym)); got != "2014-09.txt" {
		t.Errorf("MonthFilePath = %q", got)
	}
	if got := filepath.Base(storage.YearFilePath("/data", 2014)); got != "2014.conf" {
		t.Errorf("YearFilePath = %q", got)
	}
}
