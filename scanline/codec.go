package scanline

import "fmt"

// ApplyFilter encodes the scanlines [from, from+lines) with filter f and sets
// their tag bytes to f.
//
// The scanlines are expected to hold unfiltered bytes. They are processed
// from the last one to the first so each predictor sees the unfiltered bytes
// of the scanline above. The scanline just before from is used as it is
// stored.
func (b *Buffer) ApplyFilter(f FilterType, from, lines int) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFilterType, byte(f))
	}
	if err := b.checkRange(from, lines); err != nil {
		return err
	}

	bpp := b.layout.bpp()
	for i := from + lines - 1; i >= from; i-- {
		filterRow(f, b.pixels(i), b.prior(i), bpp)
		b.line(i)[0] = byte(f)
	}
	return nil
}

// ApplyFilterAll encodes every scanline with filter f.
func (b *Buffer) ApplyFilterAll(f FilterType) error {
	total, err := b.Count()
	if err != nil {
		return err
	}
	return b.ApplyFilter(f, 0, total)
}

// RemoveFilter decodes the scanlines [from, from+lines) using the filter
// named by each scanline's tag byte and resets the tags to None.
//
// Every tag in the range is checked before any byte is changed. The scanline
// just before from must already hold unfiltered bytes for the result to be
// the original image data.
func (b *Buffer) RemoveFilter(from, lines int) error {
	if err := b.checkRange(from, lines); err != nil {
		return err
	}
	for i := from; i < from+lines; i++ {
		if f := FilterType(b.line(i)[0]); !f.Valid() {
			return fmt.Errorf("%w: tag %d on scanline %d", ErrInvalidFilterType, byte(f), i)
		}
	}

	bpp := b.layout.bpp()
	for i := from; i < from+lines; i++ {
		line := b.line(i)
		unfilterRow(FilterType(line[0]), line[1:], b.prior(i), bpp)
		line[0] = byte(None)
	}
	return nil
}

// RemoveFilterAll decodes every scanline.
func (b *Buffer) RemoveFilterAll() error {
	total, err := b.Count()
	if err != nil {
		return err
	}
	return b.RemoveFilter(0, total)
}
