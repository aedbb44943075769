package pnglitch

import (
	"fmt"

	"github.com/tsawler/pnglitch/png"
	"github.com/tsawler/pnglitch/scanline"
)

// run decodes data, applies fn to its scanlines, and encodes the result.
func run(data []byte, opts []Option, fn func(b *scanline.Buffer, o options) error) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img, err := png.Parse(data, o.decodeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	buf, err := img.Scanlines()
	if err != nil {
		return nil, err
	}
	if err := fn(buf, o); err != nil {
		return nil, err
	}
	out, err := img.Bytes(o.encodeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return out, nil
}

// ApplyFilter filters lines scanlines of the PNG image in data, starting at
// scanline from, and returns the re-encoded image. data is not modified.
func ApplyFilter(data []byte, f scanline.FilterType, from, lines int, opts ...Option) ([]byte, error) {
	return run(data, opts, func(b *scanline.Buffer, _ options) error {
		return b.ApplyFilter(f, from, lines)
	})
}

// RemoveFilter reverses the filters of lines scanlines of the PNG image in
// data, starting at scanline from.
func RemoveFilter(data []byte, from, lines int, opts ...Option) ([]byte, error) {
	return run(data, opts, func(b *scanline.Buffer, _ options) error {
		return b.RemoveFilter(from, lines)
	})
}

// Transpose copies lines scanlines starting at src over the scanlines
// starting at dst.
func Transpose(data []byte, src, dst, lines int, opts ...Option) ([]byte, error) {
	return run(data, opts, func(b *scanline.Buffer, _ options) error {
		return b.Transpose(src, dst, lines)
	})
}

// RandomCopy copies a randomly chosen scanline over another randomly chosen
// scanline, times times. Pass WithSeed or WithSource for reproducible
// output.
func RandomCopy(data []byte, times int, opts ...Option) ([]byte, error) {
	return run(data, opts, func(b *scanline.Buffer, o options) error {
		return b.RandomCopy(o.random(), times)
	})
}

// CountScanlines returns the number of scanlines in the PNG image in data.
func CountScanlines(data []byte, opts ...Option) (int, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img, err := png.Parse(data, o.decodeOptions()...)
	if err != nil {
		return 0, fmt.Errorf("failed to decode PNG: %w", err)
	}
	buf, err := img.Scanlines()
	if err != nil {
		return 0, err
	}
	return buf.Count()
}
