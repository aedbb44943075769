// Package chunk reads and writes the chunks of a PNG datastream.
//
// A chunk is a 4-byte big-endian data length, a 4-byte type, the data, and a
// CRC-32 computed over the type and data.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Common errors
var (
	ErrTooShort      = errors.New("chunk: input shorter than expected")
	ErrInvalidLength = errors.New("chunk: invalid data length")
	ErrInvalidType   = errors.New("chunk: invalid chunk type")
)

// MaxLength is the largest data length allowed by the PNG specification.
const MaxLength = 1<<31 - 1

// overhead is the number of bytes a chunk occupies besides its data.
const overhead = 12

// Type is a four-letter chunk type code.
type Type [4]byte

// Well-known chunk types.
var (
	IHDR = Type{'I', 'H', 'D', 'R'}
	PLTE = Type{'P', 'L', 'T', 'E'}
	IDAT = Type{'I', 'D', 'A', 'T'}
	IEND = Type{'I', 'E', 'N', 'D'}
	TEXT = Type{'t', 'E', 'X', 't'}
)

// String returns the type code as text.
func (t Type) String() string {
	return string(t[:])
}

// Critical reports whether the ancillary bit (bit 5 of the first byte) is
// clear.
func (t Type) Critical() bool {
	return t[0]&0x20 == 0
}

// Valid reports whether every byte of the type is an ASCII letter.
func (t Type) Valid() bool {
	for _, c := range t {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

// Chunk is a single PNG chunk.
type Chunk struct {
	Type Type
	Data []byte
	CRC  uint32
}

// New creates a chunk with a freshly computed CRC.
func New(t Type, data []byte) Chunk {
	return Chunk{Type: t, Data: data, CRC: Checksum(t, data)}
}

// Checksum computes the CRC-32 of a chunk's type and data.
func Checksum(t Type, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(t[:])
	h.Write(data)
	return h.Sum32()
}

// Valid reports whether the stored CRC matches the type and data.
func (c Chunk) Valid() bool {
	return c.CRC == Checksum(c.Type, c.Data)
}

// Size returns the number of bytes the chunk occupies when encoded.
func (c Chunk) Size() int {
	return len(c.Data) + overhead
}

// Parse decodes the chunk at the start of buf and returns it together with
// the number of bytes consumed. The returned data aliases buf.
func Parse(buf []byte) (Chunk, int, error) {
	if len(buf) < overhead {
		return Chunk{}, 0, fmt.Errorf("%w: %d bytes left, need at least %d", ErrTooShort, len(buf), overhead)
	}

	length := binary.BigEndian.Uint32(buf[0:4])
	if length > MaxLength {
		return Chunk{}, 0, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	var t Type
	copy(t[:], buf[4:8])
	if !t.Valid() {
		return Chunk{}, 0, fmt.Errorf("%w: %q", ErrInvalidType, t[:])
	}

	end := 8 + int(length)
	if len(buf) < end+4 {
		return Chunk{}, 0, fmt.Errorf("%w: %s chunk needs %d bytes, %d left", ErrTooShort, t, end+4, len(buf))
	}

	c := Chunk{
		Type: t,
		Data: buf[8:end],
		CRC:  binary.BigEndian.Uint32(buf[end : end+4]),
	}
	return c, end + 4, nil
}

// Read decodes the next chunk from r.
func Read(r io.Reader) (Chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Chunk{}, err
	}

	length := binary.BigEndian.Uint32(head[0:4])
	if length > MaxLength {
		return Chunk{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	var t Type
	copy(t[:], head[4:8])
	if !t.Valid() {
		return Chunk{}, fmt.Errorf("%w: %q", ErrInvalidType, t[:])
	}

	body := make([]byte, int(length)+4)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Chunk{}, fmt.Errorf("%w: %s chunk truncated", ErrTooShort, t)
		}
		return Chunk{}, err
	}

	return Chunk{
		Type: t,
		Data: body[:length],
		CRC:  binary.BigEndian.Uint32(body[length:]),
	}, nil
}

// Encode writes the chunk to w using its stored CRC.
func (c Chunk) Encode(w io.Writer) error {
	if len(c.Data) > MaxLength {
		return fmt.Errorf("%w: %d", ErrInvalidLength, len(c.Data))
	}

	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(len(c.Data)))
	copy(head[4:8], c.Type[:])
	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	if _, err := w.Write(c.Data); err != nil {
		return err
	}

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], c.CRC)
	_, err := w.Write(crc[:])
	return err
}
