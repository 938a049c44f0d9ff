package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pawmatch/internal/catalog"
)

// Config holds the settings pawmatch needs to reach the catalog and log.
type Config struct {
	APIURL   string
	Name     string
	Email    string
	LogFile  string
	LogLevel string
	Timeout  time.Duration
}

// Environment variables that override file values.
const (
	EnvAPIURL   = "PAWMATCH_API_URL"
	EnvName     = "PAWMATCH_NAME"
	EnvEmail    = "PAWMATCH_EMAIL"
	EnvLogLevel = "PAWMATCH_LOG_LEVEL"
	EnvLogFile  = "PAWMATCH_LOG_FILE"
)

const (
	appName         = "pawmatch"
	defaultLogLevel = "info"
	defaultTimeout  = 15 * time.Second
)

// dotenvPath is read before the config file when present.
var dotenvPath = ".env"

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// DefaultLogFile returns the log location under the XDG state home.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// Load reads .env, then the TOML config, then applies environment overrides.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	if err := loadDotEnv(dotenvPath); err != nil {
		return Config{}, err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:   catalog.DefaultBaseURL,
		LogFile:  DefaultLogFile(),
		LogLevel: defaultLogLevel,
		Timeout:  defaultTimeout,
	}

	var raw struct {
		APIURL   string `toml:"api_url"`
		Name     string `toml:"name"`
		Email    string `toml:"email"`
		LogFile  string `toml:"log_file"`
		LogLevel string `toml:"log_level"`
		Timeout  string `toml:"timeout"`
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyString(&cfg.APIURL, raw.APIURL)
	applyString(&cfg.Name, raw.Name)
	applyString(&cfg.Email, raw.Email)
	applyString(&cfg.LogFile, raw.LogFile)
	applyString(&cfg.LogLevel, raw.LogLevel)
	if t := strings.TrimSpace(raw.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: invalid timeout %q", t)
		}
		cfg.Timeout = d
	}

	applyString(&cfg.APIURL, os.Getenv(EnvAPIURL))
	applyString(&cfg.Name, os.Getenv(EnvName))
	applyString(&cfg.Email, os.Getenv(EnvEmail))
	applyString(&cfg.LogFile, os.Getenv(EnvLogFile))
	applyString(&cfg.LogLevel, os.Getenv(EnvLogLevel))

	cfg.LogFile = mustExpand(cfg.LogFile)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}

// HasIdentity reports whether both login fields are filled in.
func (c Config) HasIdentity() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Email) != ""
}

// godotenv.Load never overrides variables already set in the environment.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
