package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if f != want {
		// The environment may legitimately override defaults in CI.
		for _, k := range []string{"FSA_LOG_LEVEL", "FSA_LOG_FORMAT", "FSA_CACHE_DIR", "FSA_CHUNK", "FSA_MAX_STATES"} {
			if os.Getenv(k) != "" {
				t.Skipf("%s is set", k)
			}
		}
		t.Errorf("Load(\"\") = %+v, want %+v", f, want)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsa.yaml")
	data := "log_level: debug\nlog_format: json\nchunk: 16\nmax_states: 5000\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FSA_CHUNK", "")
	t.Setenv("FSA_LOG_LEVEL", "")
	t.Setenv("FSA_LOG_FORMAT", "")
	t.Setenv("FSA_MAX_STATES", "")

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.LogLevel != "debug" || f.LogFormat != "json" || f.Chunk != 16 || f.MaxStates != 5000 {
		t.Errorf("Load() = %+v", f)
	}
	if f.CacheStates != Default().CacheStates {
		t.Errorf("CacheStates = %d, want default %d", f.CacheStates, Default().CacheStates)
	}
	if cfg := f.Search(); cfg.Chunk != 16 || cfg.MaxStates != 5000 {
		t.Errorf("Search() = %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FSA_CHUNK", "7")
	t.Setenv("FSA_CACHE_DIR", "/tmp/fsa-cache")
	t.Setenv("FSA_LOG_LEVEL", "warn")

	f, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if f.Chunk != 7 || f.CacheDir != "/tmp/fsa-cache" || f.LogLevel != "warn" {
		t.Errorf("Load() = %+v", f)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("chunk: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("chunk: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		env  string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), ""},
		{"malformed yaml", bad, ""},
		{"zero chunk", invalid, ""},
		{"bad env chunk", "", "ten"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FSA_CHUNK", tt.env)
			if _, err := Load(tt.path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*File)
		wantErr bool
	}{
		{"default", func(*File) {}, false},
		{"json upper", func(f *File) { f.LogFormat = "JSON" }, false},
		{"xml", func(f *File) { f.LogFormat = "xml" }, true},
		{"no cache dir", func(f *File) { f.CacheDir = "" }, true},
		{"negative states", func(f *File) { f.MaxStates = -1 }, true},
		{"zero cache", func(f *File) { f.CacheStates = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Default()
			tt.mod(&f)
			if err := f.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	f := Default()
	f.LogFormat = "json"
	f.LogLevel = "warn"
	log := f.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("json output missing message: %s", out)
	}
}
