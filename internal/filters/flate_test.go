package filters

import (
	"bytes"
	"compress/zlib"
	"math"
	"testing"
)

// zlibCompress compresses data with the standard library for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestInflateBasic tests decompression of a stream from another encoder
func TestInflateBasic(t *testing.T) {
	original := []byte("Hello, World! This is test data for Inflate.")

	decoded, err := Inflate(zlibCompress(original), len(original))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestInflateNoLimit tests that a zero limit decodes everything
func TestInflateNoLimit(t *testing.T) {
	original := bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 4096)

	decoded, err := Inflate(zlibCompress(original), 0)
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded %d bytes, want %d", len(decoded), len(original))
	}
}

// TestInflateLimit tests that output stops one byte past the limit
func TestInflateLimit(t *testing.T) {
	compressed := zlibCompress(make([]byte, 1<<20))

	decoded, err := Inflate(compressed, 100)
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if len(decoded) != 101 {
		t.Errorf("decoded %d bytes, want 101", len(decoded))
	}
}

// TestInflateHugeLimit tests that a huge limit does not pre-allocate it
func TestInflateHugeLimit(t *testing.T) {
	original := []byte("tiny")

	decoded, err := Inflate(zlibCompress(original), math.MaxInt)
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded %q, want %q", decoded, original)
	}
}

// TestInflateInvalid tests error handling for data that isn't zlib
func TestInflateInvalid(t *testing.T) {
	if _, err := Inflate([]byte("not zlib data"), 0); err == nil {
		t.Error("expected error for invalid zlib data")
	}
}

// TestInflateTruncated tests error handling for a cut-off stream
func TestInflateTruncated(t *testing.T) {
	compressed := zlibCompress(bytes.Repeat([]byte("glitch"), 500))

	if _, err := Inflate(compressed[:len(compressed)/2], 0); err == nil {
		t.Error("expected error for truncated zlib data")
	}
}

// TestDeflateRoundTrip tests that every level produces a readable stream
func TestDeflateRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte{1, 10, 10, 10, 0, 20, 30, 40}, 1000)

	levels := []int{HuffmanOnly, DefaultCompression, NoCompression, BestSpeed, 6, BestCompression}
	for _, level := range levels {
		compressed, err := Deflate(original, level)
		if err != nil {
			t.Fatalf("Deflate(level %d) failed: %v", level, err)
		}

		// Read back with the standard library to check interoperability.
		r, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("level %d: zlib.NewReader failed: %v", level, err)
		}
		var out bytes.Buffer
		if _, err := out.ReadFrom(r); err != nil {
			t.Fatalf("level %d: read failed: %v", level, err)
		}
		r.Close()

		if !bytes.Equal(out.Bytes(), original) {
			t.Errorf("level %d: round trip mismatch", level)
		}
	}
}

// TestDeflateInvalidLevel tests rejection of out-of-range levels
func TestDeflateInvalidLevel(t *testing.T) {
	for _, level := range []int{-3, 10, 42} {
		if _, err := Deflate([]byte("data"), level); err == nil {
			t.Errorf("expected error for level %d", level)
		}
	}
}

// TestDeflateEmpty tests compression of empty input
func TestDeflateEmpty(t *testing.T) {
	compressed, err := Deflate(nil, DefaultCompression)
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	decoded, err := Inflate(compressed, 0)
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(decoded))
	}
}
