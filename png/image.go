package png

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/pnglitch/internal/chunk"
	"github.com/tsawler/pnglitch/internal/filters"
	"github.com/tsawler/pnglitch/scanline"
)

// Signature is the eight-byte prefix of every PNG file.
var Signature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// ChunkInfo summarizes one chunk of a decoded image.
type ChunkInfo struct {
	Type   string
	Length int
}

// Image is a decoded PNG container. Its image data is held inflated but
// still filtered.
type Image struct {
	// Header is the decoded IHDR chunk.
	Header Header

	before     []chunk.Chunk // ancillary chunks preceding the IDAT run
	after      []chunk.Chunk // chunks following the IDAT run
	data       []byte        // inflated IDAT stream
	idatChunks int
	idatSize   int
	warnings   []Warning
}

// Open reads and decodes the PNG file at filename.
func Open(filename string, opts ...DecodeOption) (*Image, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Parse(data, opts...)
}

// Decode reads a whole PNG datastream from r.
func Decode(r io.Reader, opts ...DecodeOption) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PNG data: %w", err)
	}
	return Parse(data, opts...)
}

// Parse decodes a PNG datastream held in memory. The returned Image does not
// reference data.
func Parse(data []byte, opts ...DecodeOption) (*Image, error) {
	o := defaultDecodeOptions()
	for _, opt := range opts {
		opt(o)
	}

	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrInvalidSignature
	}

	img := &Image{}
	var (
		compressed []byte
		haveHeader bool
		seenIDAT   bool
		idatEnded  bool
		seenIEND   bool
	)

	offset := len(Signature)
	for offset < len(data) {
		c, n, err := chunk.Parse(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("failed to parse chunk at offset %d: %w", offset, err)
		}

		if !c.Valid() {
			if o.strictCRC {
				return nil, fmt.Errorf("%w: %s chunk at offset %d", ErrCRCMismatch, c.Type, offset)
			}
			img.warn(offset, c.Type.String(), "CRC mismatch")
		}

		if !haveHeader && c.Type != chunk.IHDR {
			return nil, fmt.Errorf("%w: first chunk is %s", ErrNoIHDR, c.Type)
		}

		switch c.Type {
		case chunk.IHDR:
			if haveHeader {
				return nil, fmt.Errorf("%w at offset %d", ErrDuplicateIHDR, offset)
			}
			h, err := parseHeader(c.Data)
			if err != nil {
				return nil, err
			}
			img.Header = h
			haveHeader = true

		case chunk.IDAT:
			if idatEnded {
				img.warn(offset, c.Type.String(), "IDAT chunks are not consecutive")
			}
			compressed = append(compressed, c.Data...)
			seenIDAT = true
			img.idatChunks++

		case chunk.IEND:
			seenIEND = true

		default:
			copied := chunk.Chunk{Type: c.Type, Data: append([]byte(nil), c.Data...), CRC: c.CRC}
			if seenIDAT {
				idatEnded = true
				img.after = append(img.after, copied)
			} else {
				img.before = append(img.before, copied)
			}
		}

		offset += n
		if seenIEND {
			break
		}
	}

	if !haveHeader {
		return nil, ErrNoIHDR
	}
	if !seenIDAT {
		return nil, ErrNoIDAT
	}
	if !seenIEND {
		return nil, ErrNoIEND
	}
	if offset < len(data) {
		img.warn(offset, "", fmt.Sprintf("%d bytes after IEND ignored", len(data)-offset))
	}

	expected := img.Header.DataSize()
	raw, err := filters.Inflate(compressed, expected)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate image data: %w", err)
	}
	switch {
	case len(raw) > expected:
		img.warn(0, "IDAT", fmt.Sprintf("image data exceeds the %d bytes the header implies", expected))
	case len(raw) < expected:
		img.warn(0, "IDAT", fmt.Sprintf("image data is %d bytes, header implies %d", len(raw), expected))
	}

	img.data = raw
	img.idatSize = len(compressed)
	return img, nil
}

// warn records a decoding warning.
func (img *Image) warn(offset int, chunkType, message string) {
	img.warnings = append(img.warnings, Warning{Offset: offset, Chunk: chunkType, Message: message})
}

// Warnings returns the problems found while decoding.
func (img *Image) Warnings() []Warning {
	return append([]Warning(nil), img.warnings...)
}

// Data returns the inflated, filtered image data. The slice aliases the
// image.
func (img *Image) Data() []byte {
	return img.data
}

// Scanlines returns a scanline buffer over the image data. Changes made
// through the buffer are written out by Encode.
//
// Interlaced images are stored as seven passes of different widths and have
// no single stride; for them Scanlines fails with scanline.ErrInvalidBuffer.
// So does image data whose length differs from what the header implies.
func (img *Image) Scanlines() (*scanline.Buffer, error) {
	if img.Header.Interlaced() {
		return nil, fmt.Errorf("%w: interlaced images have no fixed stride", scanline.ErrInvalidBuffer)
	}
	if want := img.Header.DataSize(); len(img.data) != want {
		return nil, fmt.Errorf("%w: image data is %d bytes, header implies %d", scanline.ErrInvalidBuffer, len(img.data), want)
	}
	return scanline.New(img.data, img.Header.Layout()), nil
}

// Chunks lists the chunks of the image in the order Parse found them. IDAT
// chunks are reported as one entry holding the total compressed size.
func (img *Image) Chunks() []ChunkInfo {
	out := make([]ChunkInfo, 0, len(img.before)+len(img.after)+3)
	out = append(out, ChunkInfo{Type: chunk.IHDR.String(), Length: headerLength})
	for _, c := range img.before {
		out = append(out, ChunkInfo{Type: c.Type.String(), Length: len(c.Data)})
	}
	out = append(out, ChunkInfo{Type: chunk.IDAT.String(), Length: img.idatSize})
	for _, c := range img.after {
		out = append(out, ChunkInfo{Type: c.Type.String(), Length: len(c.Data)})
	}
	out = append(out, ChunkInfo{Type: chunk.IEND.String(), Length: 0})
	return out
}

// IDATCount returns the number of IDAT chunks read by Parse.
func (img *Image) IDATCount() int {
	return img.idatChunks
}

// Encode writes the image as a PNG datastream. All chunks get fresh CRCs and
// the image data is deflated into one or more IDAT chunks.
func (img *Image) Encode(w io.Writer, opts ...EncodeOption) error {
	o := defaultEncodeOptions()
	for _, opt := range opts {
		opt(o)
	}

	compressed, err := filters.Deflate(img.data, o.level)
	if err != nil {
		return fmt.Errorf("failed to deflate image data: %w", err)
	}

	if _, err := w.Write(Signature); err != nil {
		return err
	}
	if err := chunk.New(chunk.IHDR, img.Header.bytes()).Encode(w); err != nil {
		return fmt.Errorf("failed to encode IHDR: %w", err)
	}
	for _, c := range img.before {
		if err := chunk.New(c.Type, c.Data).Encode(w); err != nil {
			return fmt.Errorf("failed to encode %s: %w", c.Type, err)
		}
	}
	for start := 0; start == 0 || start < len(compressed); start += o.maxIDATSize {
		end := start + o.maxIDATSize
		if end > len(compressed) {
			end = len(compressed)
		}
		if err := chunk.New(chunk.IDAT, compressed[start:end]).Encode(w); err != nil {
			return fmt.Errorf("failed to encode IDAT: %w", err)
		}
	}
	for _, c := range img.after {
		if err := chunk.New(c.Type, c.Data).Encode(w); err != nil {
			return fmt.Errorf("failed to encode %s: %w", c.Type, err)
		}
	}
	if err := chunk.New(chunk.IEND, nil).Encode(w); err != nil {
		return fmt.Errorf("failed to encode IEND: %w", err)
	}
	return nil
}

// Bytes encodes the image into a new byte slice.
func (img *Image) Bytes(opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := img.Encode(&buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes the image to the file at filename, replacing it if it exists.
func (img *Image) Save(filename string, opts ...EncodeOption) error {
	data, err := img.Bytes(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
