//go:build unix

package lazy

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/internal/conv"
)

// OpenFile memory-maps the normalized stream stored at path.
// Close unmaps it.
func OpenFile[V codec.Symbol](path string, cfg Config) (*DFA[V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("open %s: %w", path, codec.ErrTruncated)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, conv.Int64ToInt(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	d, err := OpenWithConfig[V](bytes.NewReader(data), size, cfg)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d.closer = func() error {
		return unix.Munmap(data)
	}
	return d, nil
}
