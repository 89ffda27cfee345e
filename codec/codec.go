// Package codec reads and writes compressed DFAs (dfa.DFA[int64, V]) in a
// compact binary format.
//
// A stream starts with one version byte. Then, in breadth-first order from
// the start state, every reachable state is written once as a record:
//
//	flag    1 byte   bit 0 accept, bit 1 start
//	id      8 bytes  state id
//	edges   (8-byte destination id, sizeof(V)-byte symbol) pairs
//	end     8 bytes  math.MaxInt64
//
// A single EndRead byte closes the stream. All integers are little-endian.
//
// Normalize rewrites a stream in place so that every state id (both record
// ids and edge destinations) equals the byte offset of the state's record.
// A normalized stream can be traversed without parsing it first; see package
// dfa/lazy.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/coregx/fsa/dfa"
)

// Encoding version bits of the leading byte.
const (
	Version1_1 byte = 2
	Normalized byte = 1
)

// Record flag bits.
const (
	FlagReject byte = 0
	FlagAccept byte = 1
	FlagStart  byte = 2
	EndRead    byte = 4
)

// Sentinel terminates an adjacency list (and the position side table).
const Sentinel int64 = math.MaxInt64

// Record layout sizes.
const (
	flagSize = 1
	idSize   = 8
)

// Symbol is the set of symbol types the codec can encode: fixed-width
// integers.
type Symbol interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// SymbolSize returns the encoded width of V in bytes.
func SymbolSize[V Symbol]() int {
	var zero V
	return binary.Size(zero)
}

func putSymbol[V Symbol](buf []byte, v V) {
	u := uint64(v)
	switch len(buf) {
	case 1:
		buf[0] = byte(u)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(u))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(u))
	default:
		binary.LittleEndian.PutUint64(buf, u)
	}
}

// DecodeSymbol reads a little-endian symbol of width len(buf), which must be
// SymbolSize[V]().
func DecodeSymbol[V Symbol](buf []byte) V {
	switch len(buf) {
	case 1:
		return V(buf[0])
	case 2:
		return V(binary.LittleEndian.Uint16(buf))
	case 4:
		return V(binary.LittleEndian.Uint32(buf))
	default:
		return V(binary.LittleEndian.Uint64(buf))
	}
}

// byteReader is what the decoder reads from. A *bufio.Reader satisfies it.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// reader returns r itself when it can read single bytes, so that no data
// beyond what is consumed gets buffered away from the caller.
func reader(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// Serialize writes the states of d reachable from its start state.
// Returns dfa.ErrNoStart if d has no start state.
func Serialize[V Symbol](w io.Writer, d *dfa.DFA[int64, V]) error {
	bw := bufio.NewWriter(w)
	symBuf := make([]byte, SymbolSize[V]())
	var idBuf [idSize]byte

	writeID := func(id int64) error {
		binary.LittleEndian.PutUint64(idBuf[:], uint64(id))
		_, err := bw.Write(idBuf[:])
		return err
	}

	if err := bw.WriteByte(Version1_1); err != nil {
		return fmt.Errorf("serialize version: %w", err)
	}
	err := d.Walk(func(rec dfa.Record[int64, V]) error {
		flag := FlagReject
		if rec.Accept {
			flag |= FlagAccept
		}
		if rec.Start {
			flag |= FlagStart
		}
		if err := bw.WriteByte(flag); err != nil {
			return err
		}
		if err := writeID(rec.State); err != nil {
			return err
		}
		for _, e := range rec.Edges {
			if err := writeID(e.To); err != nil {
				return err
			}
			putSymbol(symBuf, e.Symbol)
			if _, err := bw.Write(symBuf); err != nil {
				return err
			}
		}
		return writeID(Sentinel)
	})
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	if err := bw.WriteByte(EndRead); err != nil {
		return fmt.Errorf("serialize end marker: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("serialize flush: %w", err)
	}
	return nil
}

// Deserialize reads one automaton written by Serialize (normalized or not).
//
// Reading is best effort: if the stream ends early, the states read so far
// are returned together with an error wrapping ErrTruncated. If r does not
// implement io.ByteReader it is wrapped in a bufio.Reader, which may read
// past the end of the automaton; pass a *bufio.Reader to keep reading data
// that follows it (for example a position table).
func Deserialize[V Symbol](r io.Reader) (*dfa.DFA[int64, V], error) {
	br := reader(r)
	d := dfa.New[int64, V]()

	ver, err := br.ReadByte()
	if err != nil {
		return d, truncated("version byte", err)
	}
	if ver&^Normalized != Version1_1 {
		return d, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, ver)
	}

	symBuf := make([]byte, SymbolSize[V]())
	var idBuf [idSize]byte
	readID := func() (int64, error) {
		if _, err := io.ReadFull(br, idBuf[:]); err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(idBuf[:])), nil
	}

	for {
		flag, err := br.ReadByte()
		if err != nil {
			return d, truncated("state flag", err)
		}
		if flag == EndRead {
			return d, nil
		}
		if flag&^(FlagAccept|FlagStart) != 0 {
			return d, fmt.Errorf("%w: invalid state flag 0x%02x", ErrCorrupt, flag)
		}

		id, err := readID()
		if err != nil {
			return d, truncated("state id", err)
		}
		d.AddState(id)
		if flag&FlagStart != 0 {
			if err := d.AddStart(id); err != nil {
				return d, fmt.Errorf("%w: state %d: %w", ErrCorrupt, id, err)
			}
		}

		for {
			to, err := readID()
			if err != nil {
				return d, truncated("edge destination", err)
			}
			if to == Sentinel {
				break
			}
			if _, err := io.ReadFull(br, symBuf); err != nil {
				return d, truncated("edge symbol", err)
			}
			d.AddTransition(id, DecodeSymbol[V](symBuf), to)
		}

		if flag&FlagAccept != 0 {
			_ = d.AddFinalState(id)
		}
	}
}

// truncated classifies a read error: an early EOF becomes ErrTruncated,
// anything else is passed through.
func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("deserialize %s: %w", what, err)
}
