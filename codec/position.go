package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Position locates a chunk of a document: its byte offset and the 1-based
// line and column of its first byte.
type Position struct {
	Index  int64
	Line   int64
	Column int64
}

// positionRecordSize is the encoded size of one (state, position) entry.
const positionRecordSize = 4 * idSize

// WritePositions writes a position side table: one (state id, index, line,
// column) entry per position, states in ascending order, followed by
// Sentinel.
func WritePositions(w io.Writer, table map[int64][]Position) error {
	bw := bufio.NewWriter(w)
	var buf [positionRecordSize]byte
	for _, state := range slices.Sorted(maps.Keys(table)) {
		for _, p := range table[state] {
			binary.LittleEndian.PutUint64(buf[0:], uint64(state))
			binary.LittleEndian.PutUint64(buf[8:], uint64(p.Index))
			binary.LittleEndian.PutUint64(buf[16:], uint64(p.Line))
			binary.LittleEndian.PutUint64(buf[24:], uint64(p.Column))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("write positions: %w", err)
			}
		}
	}
	binary.LittleEndian.PutUint64(buf[:idSize], uint64(Sentinel))
	if _, err := bw.Write(buf[:idSize]); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	return nil
}

// ReadPositions reads a table written by WritePositions. Like Deserialize it
// is best effort: on early EOF the entries read so far are returned with an
// error wrapping ErrTruncated.
func ReadPositions(r io.Reader) (map[int64][]Position, error) {
	br := reader(r)
	table := make(map[int64][]Position)
	var buf [positionRecordSize]byte
	for {
		if _, err := io.ReadFull(br, buf[:idSize]); err != nil {
			return table, truncated("position state", err)
		}
		state := int64(binary.LittleEndian.Uint64(buf[:idSize]))
		if state == Sentinel {
			return table, nil
		}
		if _, err := io.ReadFull(br, buf[idSize:]); err != nil {
			return table, truncated("position", err)
		}
		table[state] = append(table[state], Position{
			Index:  int64(binary.LittleEndian.Uint64(buf[8:])),
			Line:   int64(binary.LittleEndian.Uint64(buf[16:])),
			Column: int64(binary.LittleEndian.Uint64(buf[24:])),
		})
	}
}
