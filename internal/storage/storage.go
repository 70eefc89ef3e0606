package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	monthFilePattern = regexp.MustCompile(`^[1-2][0-9]{3}-[0-1][0-9]\.txt$`)
	yearFilePattern  = regexp.MustCompile(`^[1-2][0-9]{3}\.(conf|cfg)$`)
	dayLinePattern   = regexp.MustCompile(`^\s*(\d+)\.(\s.*)?$`)
)

// UserFileNames are the accepted names of the user profile, in order of preference.
var UserFileNames = []string{"user.conf", "user.cfg"}

// BaseDir returns the default data folder (~/.chrono).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".chrono"), nil
}

// MonthFilePath returns the report file of a month, e.g. 2014-09.txt.
func MonthFilePath(dir string, ym timecalc.YearMonth) string {
	return filepath.Join(dir, ym.String()+".txt")
}

// YearFilePath returns the holiday file of a year, e.g. 2014.conf.
func YearFilePath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("%04d.conf", year))
}

// UserFile returns the path of the user profile if one exists.
func UserFile(dir string) (string, bool) {
	for _, name := range UserFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// MonthFiles returns all month report files in chronological order.
func MonthFiles(dir string) ([]string, error) {
	return listFiles(dir, monthFilePattern)
}

// YearFiles returns all year holiday files in chronological order.
func YearFiles(dir string) ([]string, error) {
	return listFiles(dir, yearFilePattern)
}

func listFiles(dir string, pattern *regexp.Regexp) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !pattern.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// WriteLine writes the report line of one day into a month file. The line
// replaces the last line of the file when both report the same day and is
// appended otherwise. Blank lines are dropped and every line is newline
// terminated.
func WriteLine(path, dayLine string) error {
	if !monthFilePattern.MatchString(filepath.Base(path)) {
		return model.ReportError("File name is not a month file: %q", path)
	}
	m := dayLinePattern.FindStringSubmatch(dayLine)
	if m == nil {
		return model.ReportError("Bad report string: %q", dayLine)
	}
	day, _ := strconv.Atoi(m[1])

	lines, err := readLines(path)
	if err != nil {
		return err
	}
	line := strings.TrimSpace(dayLine)
	if n := len(lines); n > 0 && lineDay(lines[n-1]) == day {
		lines[n-1] = line
	} else {
		lines = append(lines, line)
	}
	return writeLines(path, lines)
}

// AppendLine appends a line to a text file, creating it if needed.
func AppendLine(path, line string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	return writeLines(path, append(lines, strings.TrimRight(line, "\n")))
}

func lineDay(line string) int {
	m := dayLinePattern.FindStringSubmatch(line)
	if m == nil {
		return -1
	}
	day, _ := strconv.Atoi(m[1])
	return day
}

// readLines returns the non-blank lines of a file; a missing file has none.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return lines, nil
}

func writeLines(path string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
