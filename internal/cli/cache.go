package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// CachePath returns where the built form of input is kept: in cacheDir,
// named after input with its extension replaced by ext. A relative
// cacheDir is taken relative to the directory of input.
//
//	CachePath("data/words.txt", ".cache", ".trie") == "data/.cache/words.trie"
func CachePath(input, cacheDir, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(filepath.Dir(input), cacheDir)
	}
	return filepath.Join(cacheDir, base)
}

// IndexExt returns the cache extension of a document index built with
// windows of chunk bytes. Indexes with different window sizes do not mix.
func IndexExt(chunk int) string {
	return fmt.Sprintf(".sfx%d", chunk)
}

// Fresh reports whether the cache file exists and is not older than the
// input it was built from.
func Fresh(cachePath, input string) bool {
	c, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	in, err := os.Stat(input)
	if err != nil {
		return false
	}
	return !c.ModTime().Before(in.ModTime())
}

// WriteFileAtomic creates path through a temporary file in the same
// directory: write fills the file, which is then synced and renamed over
// path, and the directory is synced. On error path is left untouched.
//
// write receives an *os.File so that it can seek, which normalizing an
// automaton requires.
func WriteFileAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("atomic write create temp in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("atomic write data: %w", err)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("atomic write chmod: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("atomic write fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("atomic write rename %s → %s: %w", tmpPath, path, err)
	}
	if err := fsyncDir(dir); err != nil {
		return fmt.Errorf("atomic write fsync parent dir: %w", err)
	}

	success = true
	return nil
}

func fsyncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fsync dir open %s: %w", path, err)
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return fmt.Errorf("fsync dir sync %s: %w", path, err)
	}
	if err := d.Close(); err != nil {
		return fmt.Errorf("fsync dir close %s: %w", path, err)
	}
	return nil
}
