package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/pawmatch/internal/catalog"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{EnvAPIURL, EnvName, EnvEmail, EnvLogLevel, EnvLogFile} {
		t.Setenv(key, "")
	}
	old := dotenvPath
	dotenvPath = filepath.Join(dir, ".env")
	t.Cleanup(func() { dotenvPath = old })
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != catalog.DefaultBaseURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, catalog.DefaultBaseURL)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if !strings.HasSuffix(cfg.LogFile, filepath.FromSlash("pawmatch/pawmatch.log")) {
		t.Fatalf("LogFile = %q, want it to end with pawmatch/pawmatch.log", cfg.LogFile)
	}
	if cfg.HasIdentity() {
		t.Fatalf("HasIdentity = true, want false without name/email")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
api_url = "  http://127.0.0.1:9000  "
name = " Ada "
email = "ada@example.com"
log_file = "  ~/logs/paw.log  "
log_level = "DEBUG"
timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9000" {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, "http://127.0.0.1:9000")
	}
	if cfg.Name != "Ada" || !cfg.HasIdentity() {
		t.Fatalf("Name = %q, HasIdentity = %v", cfg.Name, cfg.HasIdentity())
	}
	if cfg.LogFile != filepath.Join(dir, "logs", "paw.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, dir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `name = "File"`+"\n"+`api_url = "http://file"`)
	t.Setenv(EnvName, "Env")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Name != "Env" {
		t.Fatalf("Name = %q, want Env", cfg.Name)
	}
	if cfg.APIURL != "http://file" {
		t.Fatalf("APIURL = %q, want file value", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dotenvPath, EnvEmail+"=dot@example.com\n")
	t.Cleanup(func() { os.Unsetenv(EnvEmail) })
	os.Unsetenv(EnvEmail)

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email != "dot@example.com" {
		t.Fatalf("Email = %q, want value from .env", cfg.Email)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `api_url = [`)

	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidTimeoutFails(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `timeout = "soon"`)

	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want invalid timeout")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
