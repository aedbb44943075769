// Package pnglitch glitches PNG images by rewriting the filter layer of their
// scanlines.
//
// Basic usage:
//
//	data, warnings, err := pnglitch.Open("input.png").
//	    RemoveFilterAll().
//	    ApplyFilter(scanline.Paeth, 10, 40).
//	    RandomCopy(8).
//	    Bytes()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pnglitch.FormatWarnings(warnings))
//	}
//
// Every step works on the filtered image data exactly as it is stored in the
// file; decoders then reconstruct pixels from whatever the steps left behind.
//
// The package-level functions ApplyFilter, RemoveFilter, Transpose,
// RandomCopy, and CountScanlines run a single operation on encoded PNG bytes.
// For direct access to the scanline data, use the png and scanline packages.
package pnglitch

// Open returns a Glitch that reads the PNG file at filename when a terminal
// operation runs.
//
// Example:
//
//	n, err := pnglitch.Open("input.png").ScanlineCount()
func Open(filename string) *Glitch {
	return &Glitch{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Glitch over a PNG datastream held in memory. The data
// is copied.
//
// Example:
//
//	out, _, err := pnglitch.FromBytes(data).Transpose(0, 5, 2).Bytes()
func FromBytes(data []byte) *Glitch {
	return &Glitch{
		data:    append([]byte(nil), data...),
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pnglitch.Must(pnglitch.Open("input.png").ScanlineCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustBytes is a helper that wraps a call to Bytes() and panics if the error
// is non-nil. It discards warnings and returns just the data.
//
// Example:
//
//	out := pnglitch.MustBytes(pnglitch.Open("input.png").RandomCopy(4).Bytes())
func MustBytes(val []byte, _ []Warning, err error) []byte {
	if err != nil {
		panic(err)
	}
	return val
}
