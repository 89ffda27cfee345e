// Command wordsearch finds dictionary words within a few typos of a query.
//
// Usage:
//
//	wordsearch [flags] WORDS_FILE
//
// WORDS_FILE holds one word per line. The compressed dictionary is cached
// next to it (see -save) and reused while it is newer than the word list.
// Queries are read from standard input, one per line:
//
//	WORD               WORD with 0 errors
//	WORD N             WORD with N errors
//	"WORD_1 WORD_2" N  each word with N errors
//	'SOME WORDS' N     the quoted text, spaces included, with N errors
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/coregx/fsa"
	"github.com/coregx/fsa/internal/cli"
	"github.com/coregx/fsa/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	debug := flag.Bool("debug", false, "log automaton sizes and timings")
	save := flag.Bool("save", false, "rebuild the dictionary and write it to the cache")
	prompt := flag.Bool("cli", true, "print a prompt before each query")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: wordsearch [flags] WORDS_FILE\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordsearch: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	dict, err := loadDictionary(flag.Arg(0), cfg, *save, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordsearch: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Stdin, os.Stdout, dict, *prompt); err != nil {
		fmt.Fprintf(os.Stderr, "wordsearch: %v\n", err)
		os.Exit(1)
	}
}

// loadDictionary reads the cached dictionary for path when it is usable and
// builds it from the word list otherwise.
func loadDictionary(path string, cfg config.File, save bool, logger *slog.Logger) (*fsa.Dictionary, error) {
	search := cfg.Search().WithLogger(logger)
	cachePath := cli.CachePath(path, cfg.CacheDir, ".trie")
	start := time.Now()

	if !save && cli.Fresh(cachePath, path) {
		f, err := os.Open(cachePath)
		if err == nil {
			defer f.Close()
			dict, err := fsa.LoadDictionary(f, search)
			if err == nil {
				logger.Info("dictionary loaded from cache",
					"path", cachePath,
					"states", dict.NumStates(),
					"elapsed", time.Since(start))
				return dict, nil
			}
			logger.Warn("ignoring unreadable cache", "path", cachePath, "error", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dict, err := fsa.NewDictionary(f, search)
	if err != nil {
		return nil, fmt.Errorf("build dictionary from %s: %w", path, err)
	}
	logger.Info("dictionary built",
		"path", path,
		"version", Version,
		"states", dict.NumStates(),
		"elapsed", time.Since(start))

	if save {
		err := cli.WriteFileAtomic(cachePath, func(f *os.File) error {
			return dict.Encode(f)
		})
		if err != nil {
			return nil, fmt.Errorf("save cache: %w", err)
		}
		logger.Info("dictionary cached", "path", cachePath)
	}
	return dict, nil
}

// run answers queries from in until it is exhausted.
func run(in io.Reader, out io.Writer, dict *fsa.Dictionary, prompt bool) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if !sc.Scan() {
			break
		}
		q, err := cli.ParseQuery(sc.Text())
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		if len(q.Words) == 0 {
			fmt.Fprintln(w, cli.FormatWords(nil))
			continue
		}
		for _, word := range q.Words {
			found, err := dict.Search(word, q.K)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(w, cli.FormatWords(found))
		}
	}
	if prompt {
		fmt.Fprintln(w)
	}
	return sc.Err()
}
