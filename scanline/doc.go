// Package scanline manipulates the raw scanline data of a PNG image.
//
// Raw PNG image data is a sequence of fixed-width scanlines. Each scanline
// starts with a filter-type tag byte followed by the filtered pixel bytes of
// one image row. This package applies and removes the five standard PNG
// filters, copies scanlines around, and randomly duplicates them, always in
// place and without changing the length of the data.
//
// # Layout
//
// A [Buffer] pairs the data with a [Layout]:
//
//	buf := scanline.New(data, scanline.Layout{Stride: 1 + width*4, BytesPerPixel: 4})
//	n, err := buf.Count()
//
// Stride is the byte width of one scanline including its tag byte.
// BytesPerPixel is the distance used by the Sub, Average, and Paeth
// predictors to find the "left" byte; it is 1 for images with fewer than
// eight bits per pixel.
//
// # Filters
//
//	err := buf.RemoveFilterAll()                  // decode every scanline
//	err = buf.ApplyFilter(scanline.Paeth, 10, 5)  // re-encode scanlines 10-14
//
// ApplyFilter computes every predictor against unfiltered bytes, so applying
// a filter to a range and then removing it restores the original bytes.
//
// # Errors
//
// Operations validate their arguments before touching the data. Failures
// wrap one of [ErrRange], [ErrInvalidFilterType], [ErrInvalidBuffer] or
// [ErrInvalidArgument] and can be matched with errors.Is.
package scanline
