// Package format identifies the image formats pnglitch reads and writes.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a Tagged Image File Format image.
	TIFF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	default:
		return Unknown
	}
}

// Parse maps a format name such as "png" or "TIFF" to a Format.
func Parse(name string) Format {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "" {
		return Unknown
	}
	return Detect("x." + name)
}

var (
	pngMagic    = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	bmpMagic    = []byte("BM")
	tiffMagicLE = []byte{'I', 'I', 42, 0}
	tiffMagicBE = []byte{'M', 'M', 0, 42}
)

// DetectFromMagic checks file magic bytes to determine the format.
// This provides more reliable detection than extension-based detection.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, tiffMagicLE), bytes.HasPrefix(data, tiffMagicBE):
		return TIFF
	case bytes.HasPrefix(data, bmpMagic) && len(data) >= 14:
		return BMP
	default:
		return Unknown
	}
}

// DetectFromReader reads the start of r and inspects its magic bytes.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 16)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
