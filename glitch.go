package pnglitch

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/pnglitch/internal/filters"
	"github.com/tsawler/pnglitch/png"
	"github.com/tsawler/pnglitch/scanline"
)

// step is one queued operation on the scanline data.
type step struct {
	name string
	run  func(b *scanline.Buffer, rng scanline.Source) error
}

// Glitch provides a fluent interface for chaining scanline operations on a
// PNG image. Each configuration method returns a new Glitch instance, so a
// partially built chain can be reused and shared between goroutines.
//
// Steps run in the order they were added when a terminal method (Image,
// Bytes, Encode, Save, ScanlineCount) is called. Every terminal call
// decodes the input afresh.
type Glitch struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Configuration
	options options
	steps   []step

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Glitch that can be extended without affecting
// the receiver.
func (g *Glitch) clone() *Glitch {
	return &Glitch{
		filename: g.filename,
		data:     g.data,
		loaded:   g.loaded,
		options:  g.options,
		steps:    append([]step(nil), g.steps...),
		err:      g.err,
	}
}

// with returns a copy of the Glitch with one more step queued.
func (g *Glitch) with(name string, run func(b *scanline.Buffer, rng scanline.Source) error) *Glitch {
	newG := g.clone()
	newG.steps = append(newG.steps, step{name: name, run: run})
	return newG
}

// fail returns a copy of the Glitch carrying err, unless an earlier error is
// already recorded.
func (g *Glitch) fail(err error) *Glitch {
	newG := g.clone()
	if newG.err == nil {
		newG.err = err
	}
	return newG
}

// Err returns the first configuration error recorded on the chain.
func (g *Glitch) Err() error {
	return g.err
}

// ============================================================================
// Configuration Methods (return new Glitch instance)
// ============================================================================

// Seed makes RandomCopy steps reproducible.
//
// Example:
//
//	out, _, err := pnglitch.Open("in.png").Seed(42).RandomCopy(10).Bytes()
func (g *Glitch) Seed(seed uint64) *Glitch {
	newG := g.clone()
	newG.options.seed = seed
	newG.options.seeded = true
	return newG
}

// Source makes RandomCopy steps draw from src. It takes precedence over Seed.
func (g *Glitch) Source(src scanline.Source) *Glitch {
	if src == nil {
		return g.fail(fmt.Errorf("%w: nil random source", scanline.ErrInvalidArgument))
	}
	newG := g.clone()
	newG.options.source = src
	return newG
}

// CompressionLevel sets the zlib level used when the image is written back
// (-2 through 9).
func (g *Glitch) CompressionLevel(level int) *Glitch {
	if !filters.ValidLevel(level) {
		return g.fail(fmt.Errorf("%w: compression level %d", scanline.ErrInvalidArgument, level))
	}
	newG := g.clone()
	newG.options.level = level
	return newG
}

// MaxIDATSize sets the largest IDAT chunk written back.
func (g *Glitch) MaxIDATSize(size int) *Glitch {
	if size <= 0 {
		return g.fail(fmt.Errorf("%w: IDAT size %d", scanline.ErrInvalidArgument, size))
	}
	newG := g.clone()
	newG.options.maxIDATSize = size
	return newG
}

// StrictCRC makes decoding fail on chunk CRC mismatches instead of
// reporting them as warnings.
func (g *Glitch) StrictCRC() *Glitch {
	newG := g.clone()
	newG.options.strictCRC = true
	return newG
}

// ============================================================================
// Steps (return new Glitch instance)
// ============================================================================

// ApplyFilter filters lines scanlines starting at from with f.
//
// Example:
//
//	out, _, err := pnglitch.Open("in.png").ApplyFilter(scanline.Up, 0, 20).Bytes()
func (g *Glitch) ApplyFilter(f scanline.FilterType, from, lines int) *Glitch {
	if !f.Valid() {
		return g.fail(fmt.Errorf("%w: %d", scanline.ErrInvalidFilterType, byte(f)))
	}
	return g.with("apply filter", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.ApplyFilter(f, from, lines)
	})
}

// ApplyFilterAll filters every scanline with f.
func (g *Glitch) ApplyFilterAll(f scanline.FilterType) *Glitch {
	if !f.Valid() {
		return g.fail(fmt.Errorf("%w: %d", scanline.ErrInvalidFilterType, byte(f)))
	}
	return g.with("apply filter", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.ApplyFilterAll(f)
	})
}

// RemoveFilter reverses the filters of lines scanlines starting at from.
func (g *Glitch) RemoveFilter(from, lines int) *Glitch {
	return g.with("remove filter", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.RemoveFilter(from, lines)
	})
}

// RemoveFilterAll reverses the filter of every scanline.
func (g *Glitch) RemoveFilterAll() *Glitch {
	return g.with("remove filter", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.RemoveFilterAll()
	})
}

// Transpose copies lines scanlines from src over the scanlines at dst.
func (g *Glitch) Transpose(src, dst, lines int) *Glitch {
	return g.with("transpose", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.Transpose(src, dst, lines)
	})
}

// Swap exchanges two non-overlapping runs of lines scanlines.
func (g *Glitch) Swap(a, b, lines int) *Glitch {
	return g.with("swap", func(buf *scanline.Buffer, _ scanline.Source) error {
		return buf.Swap(a, b, lines)
	})
}

// RandomCopy copies a randomly chosen scanline over another one, times
// times.
func (g *Glitch) RandomCopy(times int) *Glitch {
	if times < 0 {
		return g.fail(fmt.Errorf("%w: negative copy count %d", scanline.ErrInvalidArgument, times))
	}
	return g.with("random copy", func(b *scanline.Buffer, rng scanline.Source) error {
		return b.RandomCopy(rng, times)
	})
}

// Each calls fn for every scanline, in order, when the chain runs.
//
// Example:
//
//	// Shift the red channel of every RGBA scanline.
//	g := pnglitch.Open("in.png").RemoveFilterAll().Each(func(l scanline.ScanLine) error {
//	    px := l.Pixels()
//	    for i := 0; i+4 < len(px); i += 4 {
//	        px[i] = px[i+4]
//	    }
//	    return nil
//	})
func (g *Glitch) Each(fn func(scanline.ScanLine) error) *Glitch {
	if fn == nil {
		return g.fail(fmt.Errorf("%w: nil scanline function", scanline.ErrInvalidArgument))
	}
	return g.with("each", func(b *scanline.Buffer, _ scanline.Source) error {
		return b.Each(fn)
	})
}

// ============================================================================
// Terminal Operations
// ============================================================================

// load returns the encoded input.
func (g *Glitch) load() ([]byte, error) {
	if g.loaded {
		return g.data, nil
	}
	if g.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(g.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return data, nil
}

// Image decodes the input, runs every step, and returns the modified image.
// Steps are skipped entirely when the chain has none, so images without a
// fixed stride can still be decoded and written back.
func (g *Glitch) Image() (*png.Image, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}

	data, err := g.load()
	if err != nil {
		return nil, nil, err
	}
	img, err := png.Parse(data, g.options.decodeOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	warnings := img.Warnings()

	if len(g.steps) == 0 {
		return img, warnings, nil
	}

	buf, err := img.Scanlines()
	if err != nil {
		return nil, warnings, err
	}
	rng := g.options.random()
	for i, s := range g.steps {
		if err := s.run(buf, rng); err != nil {
			return nil, warnings, fmt.Errorf("step %d (%s): %w", i+1, s.name, err)
		}
	}
	return img, warnings, nil
}

// Bytes runs the chain and returns the encoded result.
func (g *Glitch) Bytes() ([]byte, []Warning, error) {
	var buf bytes.Buffer
	warnings, err := g.Encode(&buf)
	if err != nil {
		return nil, warnings, err
	}
	return buf.Bytes(), warnings, nil
}

// Encode runs the chain and writes the encoded result to w.
func (g *Glitch) Encode(w io.Writer) ([]Warning, error) {
	img, warnings, err := g.Image()
	if err != nil {
		return warnings, err
	}
	if err := img.Encode(w, g.options.encodeOptions()...); err != nil {
		return warnings, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return warnings, nil
}

// Save runs the chain and writes the result to filename.
//
// Example:
//
//	_, err := pnglitch.Open("in.png").RandomCopy(5).Save("out.png")
func (g *Glitch) Save(filename string) ([]Warning, error) {
	data, warnings, err := g.Bytes()
	if err != nil {
		return warnings, err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return warnings, fmt.Errorf("failed to write file: %w", err)
	}
	return warnings, nil
}

// ScanlineCount returns the number of scanlines in the input. Queued steps
// do not run; none of them changes the count.
func (g *Glitch) ScanlineCount() (int, error) {
	if g.err != nil {
		return 0, g.err
	}
	data, err := g.load()
	if err != nil {
		return 0, err
	}
	img, err := png.Parse(data, g.options.decodeOptions()...)
	if err != nil {
		return 0, fmt.Errorf("failed to decode PNG: %w", err)
	}
	buf, err := img.Scanlines()
	if err != nil {
		return 0, err
	}
	return buf.Count()
}
