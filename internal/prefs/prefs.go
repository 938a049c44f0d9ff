// Package prefs handles pawmatch user preferences persistence.
// Preferences are stored in $XDG_CONFIG_HOME/pawmatch/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pawmatch/internal/filter"
)

// Prefs holds user preferences for pawmatch.
type Prefs struct {
	Theme         string `toml:"theme"`
	PageSize      int    `toml:"page_size"`
	SortField     string `toml:"sort_field"`
	SortDirection string `toml:"sort_direction"`
}

const defaultTheme = "Nightfox"

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, PageSize: filter.DefaultPageSize, SortDirection: string(filter.Asc)}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "pawmatch", "prefs.toml")
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Defaults(), nil // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Defaults(), nil // Graceful degradation
	}

	return p.normalize(), nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// ApplyTo copies the page size and sort onto f. Invalid values were already
// replaced by defaults on load, so the updates always apply.
func (p Prefs) ApplyTo(f filter.State) filter.State {
	p = p.normalize()
	f, _ = f.SetPageSize(p.PageSize)
	f, _ = f.SetSort(filter.SortField(p.SortField), filter.Direction(p.SortDirection))
	return f
}

// FromFilter records the page size and sort of f.
func (p Prefs) FromFilter(f filter.State) Prefs {
	p.PageSize = f.PageSize()
	p.SortField = string(f.SortField())
	p.SortDirection = string(f.SortDirection())
	return p.normalize()
}

func (p Prefs) normalize() Prefs {
	d := Defaults()
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = d.Theme
	}
	if !slices.Contains(filter.PageSizes, p.PageSize) {
		p.PageSize = d.PageSize
	}
	if _, res := filter.Empty().SetSort(filter.SortField(p.SortField), filter.Direction(p.SortDirection)); !res.Accepted {
		p.SortField = d.SortField
		p.SortDirection = d.SortDirection
	}
	if p.SortDirection == "" {
		p.SortDirection = d.SortDirection
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
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
