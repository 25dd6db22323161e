package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/interpretive-systems/contrast/internal/render"
)

// ProjectFile is the per-repository config file name, looked up at the work tree root.
const ProjectFile = ".contrast.yaml"

// Config holds all configurable settings. Pointer fields distinguish
// "unset" from a zero value so that layers merge correctly.
type Config struct {
	ContextLines     *int         `yaml:"context_lines"`
	IncludeUntracked *bool        `yaml:"untracked"`
	DetectRenames    *bool        `yaml:"renames"`
	Theme            string       `yaml:"theme"` // "dark" | "light"
	Colors           render.Theme `yaml:"colors"`
	LogLevel         string       `yaml:"log_level"`
	LogFormat        string       `yaml:"log_format"` // "text" | "json"
	WatchDebounce    string       `yaml:"watch_debounce"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	ctx := 3
	no := false
	return Config{
		ContextLines:     &ctx,
		IncludeUntracked: &no,
		DetectRenames:    &no,
		Theme:            "dark",
		LogLevel:         "warn",
		LogFormat:        "text",
		WatchDebounce:    "200ms",
	}
}

// GlobalPath returns ~/.config/contrast/config.yaml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "contrast", "config.yaml"), nil
}

// LoadGlobal reads the user config. Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .contrast.yaml in repoRoot.
// Returns nil (no error) if the file is absent.
func LoadProject(repoRoot string) (*Config, error) {
	return loadFile(filepath.Join(repoRoot, ProjectFile), false)
}

func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if cfg.ContextLines != nil && *cfg.ContextLines < 0 {
		return nil, &ParseError{Path: path, Err: errors.New("context_lines must not be negative")}
	}
	if cfg.WatchDebounce != "" {
		if _, err := time.ParseDuration(cfg.WatchDebounce); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	return &cfg, nil
}

// Merge layers the configs in order over the defaults; later layers win
// for every key they set.
func Merge(layers ...*Config) Config {
	result := Defaults()
	for _, c := range layers {
		if c == nil {
			continue
		}
		if c.ContextLines != nil {
			v := *c.ContextLines
			result.ContextLines = &v
		}
		if c.IncludeUntracked != nil {
			v := *c.IncludeUntracked
			result.IncludeUntracked = &v
		}
		if c.DetectRenames != nil {
			v := *c.DetectRenames
			result.DetectRenames = &v
		}
		if c.Theme != "" {
			result.Theme = c.Theme
		}
		result.Colors = result.Colors.Merge(c.Colors)
		if c.LogLevel != "" {
			result.LogLevel = c.LogLevel
		}
		if c.LogFormat != "" {
			result.LogFormat = c.LogFormat
		}
		if c.WatchDebounce != "" {
			result.WatchDebounce = c.WatchDebounce
		}
	}
	return result
}

// RenderTheme resolves the base theme and applies color overrides.
func (c Config) RenderTheme() render.Theme {
	return render.GetTheme(c.Theme).Merge(c.Colors)
}

// Debounce returns the parsed watch debounce, falling back to 200ms.
func (c Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
