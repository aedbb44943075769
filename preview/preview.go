// Package preview converts glitched PNG images into viewable files.
//
// Glitched images keep their PNG structure, so any PNG decoder can read them.
// Render decodes one, optionally shrinks it, and writes it as PNG, BMP, or
// TIFF:
//
//	f, _ := os.Create("preview.bmp")
//	defer f.Close()
//	err := preview.Render(f, bytes.NewReader(glitched), format.BMP, preview.Options{MaxSize: 800})
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/tsawler/pnglitch/format"
)

// ErrUnsupportedFormat is returned for output formats Render cannot write.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options configures Render.
type Options struct {
	// MaxSize bounds the longer side of the output in pixels. Zero keeps
	// the original size.
	MaxSize int

	// Scaler resamples the image when it is shrunk. Nil selects
	// draw.ApproxBiLinear.
	Scaler draw.Scaler
}

// Render decodes the PNG image read from r and writes it to w in format f.
func Render(w io.Writer, r io.Reader, f format.Format, opts Options) error {
	img, err := png.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode PNG: %w", err)
	}
	return Encode(w, Resize(img, opts.MaxSize, opts.Scaler), f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f format.Format) error {
	var err error
	switch f {
	case format.PNG:
		err = png.Encode(w, img)
	case format.BMP:
		err = bmp.Encode(w, img)
	case format.TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// Resize shrinks img so that neither side exceeds maxSize, keeping its
// aspect ratio. Images that already fit are returned unchanged.
func Resize(img image.Image, maxSize int, scaler draw.Scaler) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}

	nw, nh := maxSize, maxSize
	if w >= h {
		nh = max(1, h*maxSize/w)
	} else {
		nw = max(1, w*maxSize/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
