package scanline

import "fmt"

// Layout describes how raw image data is divided into scanlines.
type Layout struct {
	// Stride is the byte width of one scanline, including its tag byte.
	Stride int
	// BytesPerPixel is the predictor distance of the Sub, Average, and
	// Paeth filters. Values below 1 are treated as 1.
	BytesPerPixel int
}

// bpp returns the effective predictor distance.
func (l Layout) bpp() int {
	if l.BytesPerPixel < 1 {
		return 1
	}
	return l.BytesPerPixel
}

// Count returns the number of complete scanlines of the given stride in n
// bytes. It fails with ErrInvalidBuffer if the stride is not positive or n is
// not a whole multiple of it.
func Count(n, stride int) (int, error) {
	if stride <= 0 {
		return 0, fmt.Errorf("%w: stride %d cannot hold a scanline", ErrInvalidBuffer, stride)
	}
	if n < 0 || n%stride != 0 {
		return 0, fmt.Errorf("%w: length %d is not a multiple of stride %d", ErrInvalidBuffer, n, stride)
	}
	return n / stride, nil
}

// Buffer is raw scanline data together with its layout. Its methods change
// the data in place and never change its length.
//
// A Buffer does not copy the slice it is created from; the caller must not
// use the slice concurrently with Buffer operations.
type Buffer struct {
	data   []byte
	layout Layout
}

// New returns a Buffer over data. The layout is validated lazily: operations
// on a buffer whose length does not match its stride fail with
// ErrInvalidBuffer.
func New(data []byte, layout Layout) *Buffer {
	return &Buffer{data: data, layout: layout}
}

// Bytes returns the underlying data.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the length of the underlying data in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Layout returns the layout of the buffer.
func (b *Buffer) Layout() Layout {
	return b.layout
}

// Count returns the number of scanlines in the buffer.
func (b *Buffer) Count() (int, error) {
	return Count(len(b.data), b.layout.Stride)
}

// checkRange validates the scanline range [from, from+lines).
func (b *Buffer) checkRange(from, lines int) error {
	total, err := b.Count()
	if err != nil {
		return err
	}
	if from < 0 || lines < 0 || from > total || lines > total-from {
		return fmt.Errorf("%w: scanlines [%d, %d+%d) of %d", ErrRange, from, from, lines, total)
	}
	return nil
}

// offset returns the byte offset of scanline i.
func (b *Buffer) offset(i int) int {
	return i * b.layout.Stride
}

// line returns all bytes of scanline i, including its tag byte.
func (b *Buffer) line(i int) []byte {
	start := b.offset(i)
	return b.data[start : start+b.layout.Stride]
}

// pixels returns the pixel bytes of scanline i.
func (b *Buffer) pixels(i int) []byte {
	return b.line(i)[1:]
}

// prior returns the pixel bytes of the scanline above i, or nil for the
// first scanline.
func (b *Buffer) prior(i int) []byte {
	if i == 0 {
		return nil
	}
	return b.pixels(i - 1)
}

// span returns the bytes of lines whole scanlines starting at scanline i.
func (b *Buffer) span(i, lines int) []byte {
	return b.data[b.offset(i):b.offset(i+lines)]
}

// Line returns a view of scanline i.
func (b *Buffer) Line(i int) (ScanLine, error) {
	if err := b.checkRange(i, 1); err != nil {
		return ScanLine{}, err
	}
	return ScanLine{buf: b, index: i}, nil
}

// Lines returns views of at most lines scanlines starting at from. The
// result is truncated at the end of the buffer.
func (b *Buffer) Lines(from, lines int) ([]ScanLine, error) {
	total, err := b.Count()
	if err != nil {
		return nil, err
	}
	if from < 0 || lines < 0 || from > total {
		return nil, fmt.Errorf("%w: scanline %d of %d", ErrRange, from, total)
	}
	if from+lines > total {
		lines = total - from
	}

	out := make([]ScanLine, lines)
	for i := range out {
		out[i] = ScanLine{buf: b, index: from + i}
	}
	return out, nil
}

// Each calls fn for every scanline in order. Iteration stops at the first
// error returned by fn.
func (b *Buffer) Each(fn func(ScanLine) error) error {
	total, err := b.Count()
	if err != nil {
		return err
	}
	for i := 0; i < total; i++ {
		if err := fn(ScanLine{buf: b, index: i}); err != nil {
			return fmt.Errorf("scanline %d: %w", i, err)
		}
	}
	return nil
}

// ScanLine is a view of a single scanline inside a Buffer. Writes through a
// ScanLine change the buffer.
type ScanLine struct {
	buf   *Buffer
	index int
}

// Index returns the position of the scanline in its buffer.
func (l ScanLine) Index() int {
	return l.index
}

// FilterType returns the tag byte of the scanline. The value may be invalid
// for corrupted data; check it with FilterType.Valid.
func (l ScanLine) FilterType() FilterType {
	return FilterType(l.buf.line(l.index)[0])
}

// SetFilterType overwrites the tag byte without touching the pixel bytes.
func (l ScanLine) SetFilterType(f FilterType) {
	l.buf.line(l.index)[0] = byte(f)
}

// Size returns the number of pixel bytes in the scanline.
func (l ScanLine) Size() int {
	return l.buf.layout.Stride - 1
}

// Pixels returns the pixel bytes of the scanline. The slice aliases the
// buffer.
func (l ScanLine) Pixels() []byte {
	return l.buf.pixels(l.index)
}

// At returns pixel byte i and whether i is inside the scanline.
func (l ScanLine) At(i int) (byte, bool) {
	px := l.Pixels()
	if i < 0 || i >= len(px) {
		return 0, false
	}
	return px[i], true
}

// Set overwrites pixel byte i. It reports false, leaving the buffer
// untouched, if i is outside the scanline.
func (l ScanLine) Set(i int, v byte) bool {
	px := l.Pixels()
	if i < 0 || i >= len(px) {
		return false
	}
	px[i] = v
	return true
}
