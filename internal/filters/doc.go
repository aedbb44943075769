// Package filters compresses and decompresses the zlib stream carried by the
// IDAT chunks of a PNG file.
//
// # Inflate
//
//	raw, err := filters.Inflate(idat, stride*height)
//
// The limit bounds the output: at most limit+1 bytes are returned, so a
// stream longer than the header implies shows up as one extra byte instead
// of being decompressed to the end.
//
// # Deflate
//
//	idat, err := filters.Deflate(raw, filters.DefaultCompression)
//
// Levels follow zlib: NoCompression (0) through BestCompression (9),
// DefaultCompression (-1), and HuffmanOnly (-2).
package filters
