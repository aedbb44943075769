package scanline

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterType identifies one of the PNG scanline filters. Its value is the
// tag byte stored at the start of each filtered scanline.
type FilterType byte

const (
	// None stores the bytes unchanged.
	None FilterType = iota
	// Sub predicts each byte from the byte one pixel to its left.
	Sub
	// Up predicts each byte from the byte directly above it.
	Up
	// Average predicts each byte from the floor-average of left and above.
	Average
	// Paeth predicts each byte with the Paeth predictor over left, above,
	// and upper-left.
	Paeth
)

// String returns the name of the filter type.
func (f FilterType) String() string {
	switch f {
	case None:
		return "None"
	case Sub:
		return "Sub"
	case Up:
		return "Up"
	case Average:
		return "Average"
	case Paeth:
		return "Paeth"
	default:
		return fmt.Sprintf("FilterType(%d)", byte(f))
	}
}

// Valid reports whether f is one of the five PNG filter types.
func (f FilterType) Valid() bool {
	return f <= Paeth
}

// ParseFilterType converts a filter name ("sub", "Paeth", ...) or its tag
// value ("0" through "4") into a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "sub":
		return Sub, nil
	case "up":
		return Up, nil
	case "average", "avg":
		return Average, nil
	case "paeth":
		return Paeth, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > int(Paeth) {
		return None, fmt.Errorf("%w: %q", ErrInvalidFilterType, s)
	}
	return FilterType(n), nil
}

// predict returns the predictor value of filter f for a byte whose left,
// above, and upper-left neighbors are a, b, and c.
func predict(f FilterType, a, b, c byte) byte {
	switch f {
	case Sub:
		return a
	case Up:
		return b
	case Average:
		return byte((int(a) + int(b)) / 2)
	case Paeth:
		return paethPredictor(a, b, c)
	default:
		return 0
	}
}

// paethPredictor implements the Paeth predictor algorithm from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to a linear prediction.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// neighbors returns the left, above, and upper-left bytes of position x in
// cur. prev is nil for the first scanline of the image.
func neighbors(cur, prev []byte, x, bpp int) (a, b, c byte) {
	if x >= bpp {
		a = cur[x-bpp]
	}
	if prev != nil {
		b = prev[x]
		if x >= bpp {
			c = prev[x-bpp]
		}
	}
	return a, b, c
}

// filterRow encodes the unfiltered pixel bytes in cur with filter f. The row
// is walked right to left so every neighbor read is still unfiltered.
func filterRow(f FilterType, cur, prev []byte, bpp int) {
	if f == None {
		return
	}
	for x := len(cur) - 1; x >= 0; x-- {
		a, b, c := neighbors(cur, prev, x, bpp)
		cur[x] -= predict(f, a, b, c)
	}
}

// unfilterRow reconstructs the pixel bytes in cur that were encoded with
// filter f. prev must already be reconstructed.
func unfilterRow(f FilterType, cur, prev []byte, bpp int) {
	if f == None {
		return
	}
	for x := 0; x < len(cur); x++ {
		a, b, c := neighbors(cur, prev, x, bpp)
		cur[x] += predict(f, a, b, c)
	}
}
