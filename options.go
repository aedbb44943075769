package pnglitch

import (
	"math/rand/v2"

	"github.com/tsawler/pnglitch/internal/filters"
	"github.com/tsawler/pnglitch/png"
	"github.com/tsawler/pnglitch/scanline"
)

// options holds configuration shared by Glitch and the package-level
// operations. It holds no slices or maps, so assigning it copies it.
type options struct {
	// Randomness
	seed   uint64
	seeded bool
	source scanline.Source // overrides seed when set

	// Decoding
	strictCRC bool

	// Encoding
	level       int
	maxIDATSize int
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		seeded:      false,
		strictCRC:   false,
		level:       filters.DefaultCompression,
		maxIDATSize: png.DefaultMaxIDATSize,
	}
}

// random returns the source for one run. Seeded runs are reproducible.
func (o options) random() scanline.Source {
	if o.source != nil {
		return o.source
	}
	if o.seeded {
		return rand.New(rand.NewPCG(o.seed, o.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (o options) decodeOptions() []png.DecodeOption {
	if o.strictCRC {
		return []png.DecodeOption{png.WithStrictCRC()}
	}
	return nil
}

func (o options) encodeOptions() []png.EncodeOption {
	return []png.EncodeOption{
		png.WithCompressionLevel(o.level),
		png.WithMaxIDATSize(o.maxIDATSize),
	}
}

// Option configures a package-level operation.
type Option func(*options)

// WithSeed makes random choices reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithSource draws random choices from src.
func WithSource(src scanline.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithCompressionLevel sets the zlib level of the re-encoded image data.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithStrictCRC rejects input files with chunk CRC mismatches.
func WithStrictCRC() Option {
	return func(o *options) {
		o.strictCRC = true
	}
}
