package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/chrono/internal/config"
)

var (
	setDataFolder  string
	setEditor      string
	setArchiveFile string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration in ~/.chrono.yaml",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&setDataFolder, "set-data-folder", "", "Store a new data folder")
	configCmd.Flags().StringVar(&setEditor, "set-editor", "", "Store a new editor command")
	configCmd.Flags().StringVar(&setArchiveFile, "set-archive-file", "", "Store a new archive file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	if changed := applyConfigFlags(&cfg, setDataFolder, setEditor, setArchiveFile); changed {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	}
	printConfig(cmd.OutOrStdout(), path, cfg)
	return nil
}

func applyConfigFlags(cfg *config.Config, dataFolder, editor, archiveFile string) bool {
	changed := false
	if dataFolder != "" {
		cfg.DataFolder = dataFolder
		changed = true
	}
	if editor != "" {
		cfg.Editor = editor
		changed = true
	}
	if archiveFile != "" {
		cfg.ArchiveFile = archiveFile
		changed = true
	}
	return changed
}

func printConfig(w io.Writer, path string, cfg config.Config) {
	fmt.Fprintf(w, "Config file:  %s\n", path)
	fmt.Fprintf(w, "Data folder:  %s\n", cfg.DataFolder)
	fmt.Fprintf(w, "Editor:       %s\n", cfg.Editor)
	fmt.Fprintf(w, "Archive file: %s\n", cfg.ArchivePath())
	fmt.Fprintf(w, "Outlook:      tenant %s, client %s", cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if cfg.Outlook.Timezone != "" {
		fmt.Fprintf(w, ", timezone %s", cfg.Outlook.Timezone)
	}
	if cfg.Outlook.Category != "" {
		fmt.Fprintf(w, ", category %q", cfg.Outlook.Category)
	}
	fmt.Fprintln(w)
}
