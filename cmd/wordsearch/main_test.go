package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coregx/fsa"
	"github.com/coregx/fsa/internal/cli"
	"github.com/coregx/fsa/internal/config"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRun(t *testing.T) {
	dict, err := fsa.NewDictionary(strings.NewReader("hell\nhello\nhelp\nworld\n"), fsa.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	in := strings.NewReader("helo 1\n\"wrld helo\" 1\n\n'unterminated\nhello\n")
	var out bytes.Buffer
	if err := run(in, &out, dict, false); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"(hell, hello, help)",
		"(world)",
		"(hell, hello, help)",
		"()",
		"Error: unterminated quote: a query starting with ' must end with '",
		"(hello)",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("run output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_Prompt(t *testing.T) {
	dict, err := fsa.NewDictionary(strings.NewReader("a\n"), fsa.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(strings.NewReader("a\n"), &out, dict, true); err != nil {
		t.Fatal(err)
	}
	if want := "> (a)\n> \n"; out.String() != want {
		t.Errorf("run output = %q, want %q", out.String(), want)
	}
}

func TestLoadDictionary_Cache(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(words, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cachePath := cli.CachePath(words, cfg.CacheDir, ".trie")

	dict, err := loadDictionary(words, cfg, true, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	// With the source gone only the cache can answer.
	if err := os.Rename(words, words+".bak"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadDictionary(words, cfg, false, quiet); err == nil {
		t.Error("a cache without its source should not be trusted")
	}
	if err := os.Rename(words+".bak", words); err != nil {
		t.Fatal(err)
	}
	// Make sure the cache is not older than the word list.
	info, err := os.Stat(words)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(cachePath, info.ModTime(), info.ModTime()); err != nil {
		t.Fatal(err)
	}

	cached, err := loadDictionary(words, cfg, false, quiet)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := dict.Search("gama", 1)
	got, err := cached.Search("gama", 1)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") || len(got) != 1 {
		t.Errorf("cached Search(gama, 1) = %q, want %q", got, want)
	}
}
