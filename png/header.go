package png

import (
	"encoding/binary"
	"fmt"

	"github.com/tsawler/pnglitch/scanline"
)

// headerLength is the size of the IHDR chunk data.
const headerLength = 13

// MaxDataSize is the largest inflated image data accepted from a header.
const MaxDataSize = 1 << 30

// adam7 lists the x offset, y offset, x step, and y step of each
// interlace pass.
var adam7 = [7][4]uint64{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// ColorType is the color type field of the IHDR chunk.
type ColorType uint8

const (
	// Grayscale stores one luminance sample per pixel.
	Grayscale ColorType = 0
	// Truecolor stores red, green, and blue samples.
	Truecolor ColorType = 2
	// Indexed stores a palette index per pixel.
	Indexed ColorType = 3
	// GrayscaleAlpha stores luminance and alpha samples.
	GrayscaleAlpha ColorType = 4
	// TruecolorAlpha stores red, green, blue, and alpha samples.
	TruecolorAlpha ColorType = 6
)

// String returns the name of the color type.
func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Grayscale"
	case Truecolor:
		return "Truecolor"
	case Indexed:
		return "Indexed"
	case GrayscaleAlpha:
		return "GrayscaleAlpha"
	case TruecolorAlpha:
		return "TruecolorAlpha"
	default:
		return fmt.Sprintf("ColorType(%d)", uint8(c))
	}
}

// Channels returns the number of samples per pixel, or 0 for an unknown
// color type.
func (c ColorType) Channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case Truecolor:
		return 3
	case TruecolorAlpha:
		return 4
	default:
		return 0
	}
}

// allowedDepths lists the bit depths permitted for each color type.
var allowedDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	Truecolor:      {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	TruecolorAlpha: {8, 16},
}

// Header holds the fields of the IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   ColorType
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// parseHeader decodes and validates IHDR chunk data.
func parseHeader(data []byte) (Header, error) {
	if len(data) != headerLength {
		return Header{}, fmt.Errorf("%w: length %d, expected %d", ErrInvalidHeader, len(data), headerLength)
	}

	h := Header{
		Width:       binary.BigEndian.Uint32(data[0:4]),
		Height:      binary.BigEndian.Uint32(data[4:8]),
		BitDepth:    data[8],
		ColorType:   ColorType(data[9]),
		Compression: data[10],
		Filter:      data[11],
		Interlace:   data[12],
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks the header against the rules of the PNG specification.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, h.Width, h.Height)
	}
	if h.Width > 1<<31-1 || h.Height > 1<<31-1 {
		return fmt.Errorf("%w: dimensions %dx%d exceed 2^31-1", ErrInvalidHeader, h.Width, h.Height)
	}

	depths, ok := allowedDepths[h.ColorType]
	if !ok {
		return fmt.Errorf("%w: color type %d", ErrInvalidHeader, h.ColorType)
	}
	valid := false
	for _, d := range depths {
		if d == h.BitDepth {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: bit depth %d not allowed for %s", ErrInvalidHeader, h.BitDepth, h.ColorType)
	}

	if h.Compression != 0 {
		return fmt.Errorf("%w: compression method %d", ErrInvalidHeader, h.Compression)
	}
	if h.Filter != 0 {
		return fmt.Errorf("%w: filter method %d", ErrInvalidHeader, h.Filter)
	}
	if h.Interlace > 1 {
		return fmt.Errorf("%w: interlace method %d", ErrInvalidHeader, h.Interlace)
	}
	if size := h.dataSize(); size > MaxDataSize {
		return fmt.Errorf("%w: %dx%d image needs %d bytes of data, limit is %d",
			ErrInvalidHeader, h.Width, h.Height, size, MaxDataSize)
	}
	return nil
}

// Interlaced reports whether the image uses Adam7 interlacing.
func (h Header) Interlaced() bool {
	return h.Interlace == 1
}

// BitsPerPixel returns the number of bits used by one pixel.
func (h Header) BitsPerPixel() int {
	return h.ColorType.Channels() * int(h.BitDepth)
}

// BytesPerPixel returns the predictor distance of the image: the number of
// whole bytes per pixel, or 1 when a pixel is smaller than a byte.
func (h Header) BytesPerPixel() int {
	if bpp := h.BitsPerPixel() / 8; bpp > 1 {
		return bpp
	}
	return 1
}

// rowSize returns the byte width of a scanline of width pixels, tag byte
// included.
func (h Header) rowSize(width uint64) uint64 {
	return (uint64(h.BitsPerPixel())*width+7)/8 + 1
}

// dataSize returns the inflated size implied by the header. Widths and
// heights below 2^31 keep every product inside uint64.
func (h Header) dataSize() uint64 {
	w, ht := uint64(h.Width), uint64(h.Height)
	if !h.Interlaced() {
		return h.rowSize(w) * ht
	}

	var total uint64
	for _, p := range adam7 {
		if w <= p[0] || ht <= p[1] {
			continue
		}
		pw := (w - p[0] + p[2] - 1) / p[2]
		ph := (ht - p[1] + p[3] - 1) / p[3]
		total += h.rowSize(pw) * ph
	}
	return total
}

// DataSize returns the number of bytes of inflated image data the header
// implies, counting every interlace pass of interlaced images. It is only
// meaningful for headers that pass Validate.
func (h Header) DataSize() int {
	return int(h.dataSize())
}

// Stride returns the byte width of one scanline including its tag byte.
func (h Header) Stride() int {
	return int(h.rowSize(uint64(h.Width)))
}

// Layout returns the scanline layout of a non-interlaced image.
func (h Header) Layout() scanline.Layout {
	return scanline.Layout{Stride: h.Stride(), BytesPerPixel: h.BytesPerPixel()}
}

// bytes encodes the header as IHDR chunk data.
func (h Header) bytes() []byte {
	data := make([]byte, headerLength)
	binary.BigEndian.PutUint32(data[0:4], h.Width)
	binary.BigEndian.PutUint32(data[4:8], h.Height)
	data[8] = h.BitDepth
	data[9] = uint8(h.ColorType)
	data[10] = h.Compression
	data[11] = h.Filter
	data[12] = h.Interlace
	return data
}
