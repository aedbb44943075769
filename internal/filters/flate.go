package filters

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

// Compression levels accepted by Deflate.
const (
	NoCompression      = zlib.NoCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
	DefaultCompression = zlib.DefaultCompression
	HuffmanOnly        = zlib.HuffmanOnly
)

// ValidLevel reports whether level is accepted by Deflate.
func ValidLevel(level int) bool {
	return level >= HuffmanOnly && level <= BestCompression
}

// maxRatio bounds the expansion of a deflate stream.
const maxRatio = 1032

// Inflate decompresses a zlib stream. It reads at most limit+1 bytes of
// output so callers can tell an overlong stream from one of the expected
// size; a limit of zero or less reads the whole stream.
func Inflate(data []byte, limit int) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	var buf bytes.Buffer
	if limit > 0 {
		n := int64(limit)
		if n < math.MaxInt64 {
			n++
		}
		src = io.LimitReader(reader, n)

		hint := limit
		if len(data) < limit/maxRatio {
			hint = len(data) * maxRatio
		}
		buf.Grow(hint)
	}
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return buf.Bytes(), nil
}

// Deflate compresses data into a zlib stream at the given level.
func Deflate(data []byte, level int) ([]byte, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("invalid compression level: %d", level)
	}

	var buf bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish zlib stream: %w", err)
	}

	return buf.Bytes(), nil
}
