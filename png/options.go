package png

import "github.com/tsawler/pnglitch/internal/filters"

// DefaultMaxIDATSize is the largest IDAT chunk written by Encode unless
// WithMaxIDATSize says otherwise.
const DefaultMaxIDATSize = 1 << 20

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	strictCRC bool
}

func defaultDecodeOptions() *decodeOptions {
	return &decodeOptions{strictCRC: false}
}

// WithStrictCRC makes Decode fail on the first chunk whose CRC does not match
// instead of recording a warning.
func WithStrictCRC() DecodeOption {
	return func(o *decodeOptions) {
		o.strictCRC = true
	}
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	level       int
	maxIDATSize int
}

func defaultEncodeOptions() *encodeOptions {
	return &encodeOptions{
		level:       filters.DefaultCompression,
		maxIDATSize: DefaultMaxIDATSize,
	}
}

// WithCompressionLevel sets the zlib level used for the IDAT stream
// (-2 through 9). Encode fails for other values.
func WithCompressionLevel(level int) EncodeOption {
	return func(o *encodeOptions) {
		o.level = level
	}
}

// WithMaxIDATSize sets the largest data length of a single IDAT chunk.
// Non-positive sizes are ignored.
func WithMaxIDATSize(size int) EncodeOption {
	return func(o *encodeOptions) {
		if size > 0 {
			o.maxIDATSize = size
		}
	}
}
