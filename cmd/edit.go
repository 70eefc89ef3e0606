package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/parser"
	"github.com/Tiliavir/chrono/internal/storage"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var editCmd = &cobra.Command{
	Use:   "edit [YYYY-MM]",
	Short: "Open a month file in the configured editor",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	ym := timecalc.MonthOf(nowFunc())
	if m := s.user.CurrentMonth(); m != nil {
		ym = m.YearMonth
	}
	if len(args) == 1 {
		if ym, err = timecalc.ParseYearMonth(args[0]); err != nil {
			return model.BadDate("Bad month: %q. Use YYYY-MM.", args[0])
		}
	}
	path := storage.MonthFilePath(s.dir, ym)

	c, err := editorCommand(s.cfg.Editor, path)
	if err != nil {
		return err
	}
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	logrus.WithFields(logrus.Fields{"editor": s.cfg.Editor, "file": path}).Debug("starting editor")
	if err := c.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}

	// Re-read the folder so mistakes are reported right away.
	if _, err := parser.LoadDataFolder(s.dir, s.cfg.ArchivePath()); err != nil {
		return fmt.Errorf("%s was saved but has errors: %w", path, err)
	}
	return nil
}

// editorCommand splits an editor setting such as "code --wait" into a command.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}
