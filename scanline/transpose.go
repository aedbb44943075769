package scanline

import "fmt"

// Transpose copies lines whole scanlines, tag bytes included, from scanline
// src onto scanline dst. Overlapping ranges are handled.
func (b *Buffer) Transpose(src, dst, lines int) error {
	if err := b.checkRange(src, lines); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := b.checkRange(dst, lines); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if src == dst || lines == 0 {
		return nil
	}

	copy(b.span(dst, lines), b.span(src, lines))
	return nil
}

// Swap exchanges the lines scanlines starting at a with those starting at c.
// The two ranges must not overlap unless they are identical.
func (b *Buffer) Swap(a, c, lines int) error {
	if err := b.checkRange(a, lines); err != nil {
		return fmt.Errorf("first range: %w", err)
	}
	if err := b.checkRange(c, lines); err != nil {
		return fmt.Errorf("second range: %w", err)
	}
	if a == c || lines == 0 {
		return nil
	}
	if a < c+lines && c < a+lines {
		return fmt.Errorf("%w: ranges at %d and %d overlap", ErrInvalidArgument, a, c)
	}

	first, second := b.span(a, lines), b.span(c, lines)
	tmp := make([]byte, len(first))
	copy(tmp, first)
	copy(first, second)
	copy(second, tmp)
	return nil
}
