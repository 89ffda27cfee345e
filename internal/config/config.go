// Package config loads the settings shared by the command-line tools.
//
// Settings come from an optional YAML file, then from FSA_* environment
// variables, then from command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coregx/fsa"
)

// File is the on-disk configuration.
type File struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// CacheDir holds built dictionaries and indexes. A relative path is
	// resolved against the directory of the input file.
	CacheDir string `yaml:"cache_dir"`

	// Chunk is the document window size.
	Chunk int `yaml:"chunk"`

	// MaxStates bounds the automata built per query. 0 is unlimited.
	MaxStates int `yaml:"max_states"`

	// CacheStates is the lazy lookup cache size.
	CacheStates uint32 `yaml:"cache_states"`
}

// Default returns the built-in settings.
func Default() File {
	d := fsa.DefaultConfig()
	return File{
		LogLevel:    "info",
		LogFormat:   "text",
		CacheDir:    ".cache",
		Chunk:       d.Chunk,
		MaxStates:   d.MaxStates,
		CacheStates: d.CacheStates,
	}
}

// Load reads the YAML file at path over the defaults and then applies the
// environment. An empty path skips the file.
func Load(path string) (File, error) {
	f := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	}
	f, err := f.applyEnv(os.Getenv)
	if err != nil {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

func (f File) applyEnv(getenv func(string) string) (File, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}
	f.LogLevel = get("FSA_LOG_LEVEL", f.LogLevel)
	f.LogFormat = get("FSA_LOG_FORMAT", f.LogFormat)
	f.CacheDir = get("FSA_CACHE_DIR", f.CacheDir)

	if v := getenv("FSA_CHUNK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return File{}, fmt.Errorf("FSA_CHUNK: %w", err)
		}
		f.Chunk = n
	}
	if v := getenv("FSA_MAX_STATES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return File{}, fmt.Errorf("FSA_MAX_STATES: %w", err)
		}
		f.MaxStates = n
	}
	return f, nil
}

// Validate checks the settings.
func (f File) Validate() error {
	switch strings.ToLower(f.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", f.LogFormat)
	}
	if f.CacheDir == "" {
		return errors.New("cache_dir must not be empty")
	}
	return f.Search().Validate()
}

// Search returns the search configuration, logging to nowhere. Use
// WithLogger to attach one.
func (f File) Search() fsa.Config {
	return fsa.DefaultConfig().
		WithChunk(f.Chunk).
		WithMaxStates(f.MaxStates).
		WithCacheStates(f.CacheStates)
}

// Logger returns a logger writing to w in the configured format and level.
func (f File) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(f.LogLevel)}
	if strings.EqualFold(f.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
