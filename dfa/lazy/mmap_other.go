//go:build !unix

package lazy

import (
	"bytes"
	"fmt"
	"os"

	"github.com/coregx/fsa/codec"
)

// OpenFile reads the normalized stream stored at path into memory.
// Platforms without mmap support fall back to a plain read.
func OpenFile[V codec.Symbol](path string, cfg Config) (*DFA[V], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("open %s: %w", path, codec.ErrTruncated)
	}
	d, err := OpenWithConfig[V](bytes.NewReader(data), int64(len(data)), cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return d, nil
}
