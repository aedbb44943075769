package scanline

import "fmt"

// Source is a source of uniformly distributed random integers.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// RandomCopy performs times random duplications. Each one picks a source and
// a destination scanline uniformly from src and copies the whole source
// scanline, tag byte included, over the destination. Later copies overwrite
// earlier ones. A buffer without scanlines is left untouched.
func (b *Buffer) RandomCopy(src Source, times int) error {
	if times < 0 {
		return fmt.Errorf("%w: negative copy count %d", ErrInvalidArgument, times)
	}
	if src == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	total, err := b.Count()
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	for i := 0; i < times; i++ {
		from := src.IntN(total)
		to := src.IntN(total)
		if from == to {
			continue
		}
		copy(b.line(to), b.line(from))
	}
	return nil
}
