// Package png decodes and encodes the container of a PNG file while keeping
// its image data as raw, filtered scanlines.
//
// Unlike image/png, this package does not reconstruct pixels. Decode parses
// the chunks, concatenates and inflates the IDAT stream, and exposes the
// result as a [scanline.Buffer]. Encode deflates the (possibly modified)
// scanlines again and writes every other chunk back in its original place.
//
// # Basic Usage
//
//	img, err := png.Open("input.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, err := img.Scanlines()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = buf.RemoveFilterAll()
//	err = img.Save("output.png")
//
// # Warnings
//
// CRC mismatches and other recoverable problems are collected as [Warning]s
// and returned by (*Image).Warnings. Use [WithStrictCRC] to treat CRC
// mismatches as errors.
package png
