package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Normalize rewrites the stream at the current position of rw in place so
// that every state id equals the offset of the state's record, measured in
// bytes from the version byte. Record ids and edge destinations are both
// rewritten, and the Normalized bit is set in the version byte.
//
// It returns the mapping from the old ids to the new ones and leaves rw
// positioned just after the end marker. Normalizing an already normalized
// stream is a no-op apart from the rewrite itself.
func Normalize[V Symbol](rw io.ReadWriteSeeker) (map[int64]int64, error) {
	base, err := rw.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	offsets, dests, end, err := scan(bufio.NewReader(rw), SymbolSize[V]())
	if err != nil {
		return nil, err
	}

	var idBuf [idSize]byte
	writeAt := func(off int64, v int64) error {
		if _, err := rw.Seek(base+off, io.SeekStart); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(idBuf[:], uint64(v))
		_, err := rw.Write(idBuf[:])
		return err
	}

	for _, rec := range offsets.order {
		if err := writeAt(rec.off+flagSize, rec.off); err != nil {
			return nil, fmt.Errorf("normalize state %d: %w", rec.id, err)
		}
	}
	for _, dst := range dests {
		off, ok := offsets.byID[dst.id]
		if !ok {
			return nil, fmt.Errorf("%w: edge to state %d without a record", ErrCorrupt, dst.id)
		}
		if err := writeAt(dst.off, off); err != nil {
			return nil, fmt.Errorf("normalize edge: %w", err)
		}
	}

	if _, err := rw.Seek(base, io.SeekStart); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	if _, err := rw.Write([]byte{Version1_1 | Normalized}); err != nil {
		return nil, fmt.Errorf("normalize version: %w", err)
	}
	if _, err := rw.Seek(base+end, io.SeekStart); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return offsets.byID, nil
}

// recordAt is a state record found by scan.
type recordAt struct {
	id  int64
	off int64
}

type recordIndex struct {
	order []recordAt
	byID  map[int64]int64
}

// scan walks a serialized automaton and returns the offset of every record,
// the offset and old value of every edge destination field, and the total
// length of the stream including the end marker.
func scan(br *bufio.Reader, symSize int) (recordIndex, []recordAt, int64, error) {
	idx := recordIndex{byID: make(map[int64]int64)}
	var dests []recordAt
	var pos int64
	var idBuf [idSize]byte

	readID := func() (int64, error) {
		if _, err := io.ReadFull(br, idBuf[:]); err != nil {
			return 0, err
		}
		pos += idSize
		return int64(binary.LittleEndian.Uint64(idBuf[:])), nil
	}

	ver, err := br.ReadByte()
	if err != nil {
		return idx, nil, 0, truncated("version byte", err)
	}
	pos++
	if ver&^Normalized != Version1_1 {
		return idx, nil, 0, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, ver)
	}

	for {
		recOff := pos
		flag, err := br.ReadByte()
		if err != nil {
			return idx, nil, 0, truncated("state flag", err)
		}
		pos++
		if flag == EndRead {
			return idx, dests, pos, nil
		}
		if flag&^(FlagAccept|FlagStart) != 0 {
			return idx, nil, 0, fmt.Errorf("%w: invalid state flag 0x%02x at offset %d", ErrCorrupt, flag, recOff)
		}

		id, err := readID()
		if err != nil {
			return idx, nil, 0, truncated("state id", err)
		}
		if _, dup := idx.byID[id]; dup {
			return idx, nil, 0, fmt.Errorf("%w: state %d written twice", ErrCorrupt, id)
		}
		idx.byID[id] = recOff
		idx.order = append(idx.order, recordAt{id: id, off: recOff})

		for {
			fieldOff := pos
			to, err := readID()
			if err != nil {
				return idx, nil, 0, truncated("edge destination", err)
			}
			if to == Sentinel {
				break
			}
			dests = append(dests, recordAt{id: to, off: fieldOff})
			if _, err := br.Discard(symSize); err != nil {
				return idx, nil, 0, truncated("edge symbol", err)
			}
			pos += int64(symSize)
		}
	}
}
