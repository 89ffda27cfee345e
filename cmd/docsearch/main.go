// Command docsearch finds where words occur in a text, tolerating typos.
//
// Usage:
//
//	docsearch [flags] TEXT_FILE
//
// Every window of -chunk bytes of TEXT_FILE is indexed. A query lists the
// windows that start within N edits of the query word, with the line and
// column of each occurrence. Query syntax is the same as wordsearch's.
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

type options struct {
	save    bool
	prompt  bool
	offsets bool
	verify  bool
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	debug := flag.Bool("debug", false, "log automaton sizes and timings")
	chunk := flag.Int("chunk", 0, "window size in bytes (default from config, 10)")
	var opts options
	flag.BoolVar(&opts.save, "save", false, "rebuild the index and write it to the cache")
	flag.BoolVar(&opts.prompt, "cli", false, "print a prompt before each query")
	flag.BoolVar(&opts.offsets, "offsets", false, "print byte offsets instead of line and column")
	flag.BoolVar(&opts.verify, "verify", false, "check every result against the text file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: docsearch [flags] TEXT_FILE\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docsearch: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *chunk != 0 {
		cfg.Chunk = *chunk
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "docsearch: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	path := flag.Arg(0)
	doc, err := loadDocument(path, cfg, opts.save, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docsearch: %v\n", err)
		os.Exit(1)
	}

	var text []byte
	if opts.verify {
		if text, err = os.ReadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "docsearch: %v\n", err)
			os.Exit(1)
		}
	}
	if err := run(os.Stdin, os.Stdout, doc, cfg.Chunk, text, opts); err != nil {
		fmt.Fprintf(os.Stderr, "docsearch: %v\n", err)
		os.Exit(1)
	}
}

// loadDocument reads the cached index for path when it is usable and
// indexes the text otherwise.
func loadDocument(path string, cfg config.File, save bool, logger *slog.Logger) (*fsa.Document, error) {
	search := cfg.Search().WithLogger(logger)
	cachePath := cli.CachePath(path, cfg.CacheDir, cli.IndexExt(cfg.Chunk))
	start := time.Now()

	if !save && cli.Fresh(cachePath, path) {
		f, err := os.Open(cachePath)
		if err == nil {
			defer f.Close()
			doc, err := fsa.LoadDocument(f, search)
			if err == nil {
				logger.Info("index loaded from cache",
					"path", cachePath,
					"elapsed", time.Since(start))
				return doc, nil
			}
			logger.Warn("ignoring unreadable cache", "path", cachePath, "error", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := fsa.NewDocument(f, search)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	logger.Info("document indexed",
		"path", path,
		"version", Version,
		"chunk", cfg.Chunk,
		"elapsed", time.Since(start))

	if save {
		err := cli.WriteFileAtomic(cachePath, func(f *os.File) error {
			return doc.Encode(f)
		})
		if err != nil {
			return nil, fmt.Errorf("save cache: %w", err)
		}
		logger.Info("index cached", "path", cachePath)
	}
	return doc, nil
}

// run answers queries from in until it is exhausted. When text is not nil
// every result is checked against it and a mismatch stops the run.
func run(in io.Reader, out io.Writer, doc *fsa.Document, chunk int, text []byte, opts options) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	sc := bufio.NewScanner(in)
	for {
		if opts.prompt {
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
			fmt.Fprintln(w)
			continue
		}
		for _, word := range q.Words {
			matches, err := doc.Search(word, q.K)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				continue
			}
			if text != nil {
				if err := doc.Verify(text, matches); err != nil {
					return err
				}
			}
			for _, m := range matches {
				fmt.Fprintln(w, cli.FormatMatch(m, chunk, !opts.offsets))
			}
		}
	}
	if opts.prompt {
		fmt.Fprintln(w)
	}
	return sc.Err()
}
