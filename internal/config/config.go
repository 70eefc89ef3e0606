package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/chrono/internal/storage"
)

// Config is the root configuration for chrono, stored in ~/.chrono.yaml.
type Config struct {
	// DataFolder holds user.conf, the YYYY.conf holiday files and the
	// YYYY-MM.txt month reports.
	DataFolder string `yaml:"data_folder"`
	// Editor opens month files for `chrono edit`.
	Editor string `yaml:"editor"`
	// ArchiveFile is read before the month files. Relative paths are
	// resolved against DataFolder.
	ArchiveFile string        `yaml:"archive_file"`
	Outlook     OutlookConfig `yaml:"outlook"`
}

// OutlookConfig holds Microsoft Graph settings for the holiday import.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `yaml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `yaml:"client_id"`
	// Timezone is the IANA timezone used for the calendar view. Empty = UTC.
	Timezone string `yaml:"timezone"`
	// Category restricts the import to events carrying this Outlook category.
	Category string `yaml:"category"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the public Azure CLI app ID. It supports the device
	// code flow without a client secret or app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultEditor is used when neither the file nor the environment names one.
	DefaultEditor = "vi"
	// DefaultArchiveFile is the archive name inside the data folder.
	DefaultArchiveFile = "archive.txt"

	// EnvDataFolder overrides data_folder.
	EnvDataFolder = "CHRONO_DATA_FOLDER"
	// EnvEditor overrides editor.
	EnvEditor = "CHRONO_EDITOR"
)

// ValidationError reports an unusable configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	dir, _ := storage.BaseDir()
	return Config{
		DataFolder:  dir,
		Editor:      DefaultEditor,
		ArchiveFile: DefaultArchiveFile,
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# chrono configuration - ~/.chrono.yaml
#
# All settings are optional. CHRONO_DATA_FOLDER and CHRONO_EDITOR, also read
# from a .env file in the working directory, override the values below.

# Folder with user.conf, YYYY.conf holiday files and YYYY-MM.txt reports.
data_folder: ~/.chrono

# Editor started by "chrono edit".
editor: vi

# Archived months, read before the month files. Relative to data_folder.
archive_file: archive.txt

# Microsoft Graph / Outlook holiday import ("chrono outlook holidays").
outlook:
  # "common" for personal accounts and any organisation, or your tenant GUID.
  tenant_id: common
  # Public Azure CLI app; replace with your own app registration if needed.
  client_id: "04b07795-8542-4c4a-95af-30b2c573d5ab"
  # IANA timezone for the calendar view, e.g. "Europe/Berlin". Empty = UTC.
  timezone: ""
  # Only import all-day events with this category. Empty = all of them.
  category: ""
`

// FilePath returns the path to ~/.chrono.yaml.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".chrono.yaml"), nil
}

// Load reads .env from the working directory when present and then
// ~/.chrono.yaml, creating it with annotated defaults on first run.
func Load() (Config, error) {
	if err := LoadEnv(".env"); err != nil {
		return Default(), err
	}
	path, err := FilePath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadEnv loads variables from a dotenv file without overriding variables
// that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	logrus.WithField("file", path).Debug("loaded environment file")
	return nil
}

// LoadFrom reads the config at path, writing the template when it does not
// exist yet. Zero fields are filled with defaults and environment overrides
// are applied last.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if writeErr := writeDefault(path); writeErr != nil {
			logrus.WithError(writeErr).Warnf("could not create config file %s", path)
		}
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	cfg.DataFolder = expandHome(cfg.DataFolder)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.DataFolder == "" {
		c.DataFolder = def.DataFolder
	}
	if c.Editor == "" {
		c.Editor = def.Editor
	}
	if c.ArchiveFile == "" {
		c.ArchiveFile = def.ArchiveFile
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = def.Outlook.TenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = def.Outlook.ClientID
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataFolder); v != "" {
		c.DataFolder = expandHome(v)
	}
	if v := os.Getenv(EnvEditor); v != "" {
		c.Editor = v
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ArchivePath returns the archive location, resolved against DataFolder.
func (c Config) ArchivePath() string {
	p := expandHome(c.ArchiveFile)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataFolder, p)
}

// Validate checks the values chrono cannot run without.
func (c Config) Validate() error {
	if c.DataFolder == "" {
		return &ValidationError{Field: "data_folder", Message: "must be set"}
	}
	if fi, err := os.Stat(c.DataFolder); err == nil && !fi.IsDir() {
		return &ValidationError{Field: "data_folder", Message: fmt.Sprintf("%q is not a directory", c.DataFolder)}
	}
	if c.Editor == "" {
		return &ValidationError{Field: "editor", Message: "must be set"}
	}
	if tz := c.Outlook.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return &ValidationError{Field: "outlook.timezone", Message: fmt.Sprintf("unknown timezone %q", tz)}
		}
	}
	return nil
}

// Save writes the config to path, replacing the file atomically.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
