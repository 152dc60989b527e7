package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Seeker names one search backend.
type Seeker struct {
	Name string
	URL  string
}

// ColumnWidth overrides the width request of a table column: either an
// absolute number of cells or a fraction of the terminal width.
type ColumnWidth struct {
	Cells    int
	Fraction float64
}

// Config captures everything wyrm reads from config.toml.
type Config struct {
	Seekers      []Seeker
	Theme        string
	Accuracy     int
	LogLimit     int
	CachePath    string
	FetchTimeout time.Duration
	Columns      map[string]ColumnWidth
}

const (
	defaultConfigPath   = "~/.config/wyrm/config.toml"
	defaultCachePath    = "~/.cache/wyrm/details.db"
	defaultSeekerName   = "default"
	defaultSeekerURL    = "127.0.0.1:7488"
	defaultTheme        = "Dracula"
	defaultAccuracy     = 75
	defaultLogLimit     = 5000
	defaultFetchTimeout = 10 * time.Second
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.CachePath = mustExpand(defaultCachePath)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Theme        string         `toml:"theme"`
		Accuracy     *int           `toml:"accuracy"`
		LogLimit     *int           `toml:"log_limit"`
		CachePath    string         `toml:"cache_path"`
		FetchTimeout string         `toml:"fetch_timeout"`
		Columns      map[string]any `toml:"columns"`
		Seekers      []struct {
			Name string `toml:"name"`
			URL  string `toml:"url"`
		} `toml:"seekers"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if raw.Accuracy != nil {
		cfg.Accuracy = clamp(*raw.Accuracy, 0, 100)
	}
	if raw.LogLimit != nil && *raw.LogLimit >= 0 {
		cfg.LogLimit = *raw.LogLimit
	}

	cfg.CachePath = strings.TrimSpace(raw.CachePath)
	if cfg.CachePath == "" {
		cfg.CachePath = defaultCachePath
	}
	cfg.CachePath = mustExpand(cfg.CachePath)

	if timeout := strings.TrimSpace(raw.FetchTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: fetch_timeout %q is not a positive duration", timeout)
		}
		cfg.FetchTimeout = d
	}

	if len(raw.Seekers) > 0 {
		cfg.Seekers = cfg.Seekers[:0]
		for i, s := range raw.Seekers {
			url := strings.TrimSpace(s.URL)
			if url == "" {
				return Config{}, fmt.Errorf("parse config: seeker %d has no url", i+1)
			}
			name := strings.TrimSpace(s.Name)
			if name == "" {
				name = fmt.Sprintf("seeker%d", i+1)
			}
			cfg.Seekers = append(cfg.Seekers, Seeker{Name: name, URL: url})
		}
	}

	columns, err := parseColumns(raw.Columns)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Columns = columns

	return cfg, nil
}

func defaults() Config {
	return Config{
		Seekers:      []Seeker{{Name: defaultSeekerName, URL: defaultSeekerURL}},
		Theme:        defaultTheme,
		Accuracy:     defaultAccuracy,
		LogLimit:     defaultLogLimit,
		CachePath:    defaultCachePath,
		FetchTimeout: defaultFetchTimeout,
	}
}

// parseColumns accepts integers as absolute cell counts and floats in (0, 1]
// as fractions of the terminal width.
func parseColumns(raw map[string]any) (map[string]ColumnWidth, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]ColumnWidth, len(raw))
	for _, name := range names {
		switch v := raw[name].(type) {
		case int64:
			if v <= 0 {
				return nil, fmt.Errorf("column %q width must be positive", name)
			}
			out[strings.TrimSpace(name)] = ColumnWidth{Cells: int(v)}
		case float64:
			if v <= 0 || v > 1 {
				return nil, fmt.Errorf("column %q fraction must be in (0, 1]", name)
			}
			out[strings.TrimSpace(name)] = ColumnWidth{Fraction: v}
		default:
			return nil, fmt.Errorf("column %q width must be a number", name)
		}
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
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
