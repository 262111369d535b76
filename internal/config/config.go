// Package config resolves runtime settings from defaults, an optional .env
// file and STUDYBOARD_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}

type RuntimeConfig struct {
	Backend              Backend
	DBPath               string
	StateDir             string
	BackupDir            string
	LogLevel             string
	LogFile              string
	ExamAlerts           bool
	DesktopNotifications bool
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := defaultDataDir()
	return RuntimeConfig{
		Backend:         BackendSQLite,
		DBPath:          filepath.Join(dir, "studyboard.db"),
		StateDir:        filepath.Join(dir, "state"),
		BackupDir:       ".",
		LogLevel:        "info",
		LogFile:         filepath.Join(dir, "studyboard.log"),
		ExamAlerts:      true,
		SchedulerBuffer: 64,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "studyboard")
	}
	return ".studyboard"
}

// LoadDotEnv reads the given files (or ./.env) into the process environment
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := Backend(strings.ToLower(getEnvString("STUDYBOARD_BACKEND"))); v.IsValid() {
		cfg.Backend = v
	}
	if v := getEnvString("STUDYBOARD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getEnvString("STUDYBOARD_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := getEnvString("STUDYBOARD_BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
	}
	if v := getEnvString("STUDYBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("STUDYBOARD_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvBool("STUDYBOARD_EXAM_ALERTS"); ok {
		cfg.ExamAlerts = v
	}
	if v, ok := getEnvBool("STUDYBOARD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("STUDYBOARD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// Load is DefaultRuntimeConfig with .env and environment overrides applied.
func Load() (RuntimeConfig, error) {
	if err := LoadDotEnv(); err != nil {
		return RuntimeConfig{}, err
	}
	return RuntimeConfigFromEnv(DefaultRuntimeConfig()), nil
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func getEnvInt(name string) (int, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.ToLower(getEnvString(name))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
