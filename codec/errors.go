package codec

import "errors"

var (
	// ErrUnsupportedVersion is returned for streams that do not start with a
	// version 1.1 byte.
	ErrUnsupportedVersion = errors.New("unsupported encoding version")

	// ErrTruncated is returned when a stream ends in the middle of the
	// automaton or the position table.
	ErrTruncated = errors.New("stream truncated")

	// ErrCorrupt is returned for structurally invalid streams: unknown flag
	// bits, two start states, edges to states that have no record.
	ErrCorrupt = errors.New("corrupt stream")

	// ErrNotNormalized is returned by readers that need a normalized stream.
	ErrNotNormalized = errors.New("stream is not normalized")
)
