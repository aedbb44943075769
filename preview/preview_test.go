package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/tsawler/pnglitch/format"
)

// solidPNG encodes a w x h image filled with c.
func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	red := color.RGBA{R: 200, G: 10, B: 30, A: 255}
	src := solidPNG(t, 40, 20, red)

	decoders := map[format.Format]func(*bytes.Reader) (image.Image, error){
		format.PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		format.BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		format.TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for f, decode := range decoders {
		t.Run(f.String(), func(t *testing.T) {
			var out bytes.Buffer
			if err := Render(&out, bytes.NewReader(src), f, Options{}); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got := format.DetectFromMagic(out.Bytes()); got != f {
				t.Errorf("output detected as %v, want %v", got, f)
			}

			img, err := decode(bytes.NewReader(out.Bytes()))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
				t.Errorf("size %v, want 40x20", img.Bounds().Size())
			}
			r, g, b, _ := img.At(5, 5).RGBA()
			if r>>8 != 200 || g>>8 != 10 || b>>8 != 30 {
				t.Errorf("pixel = (%d, %d, %d), want (200, 10, 30)", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestRenderMaxSize(t *testing.T) {
	src := solidPNG(t, 40, 20, color.RGBA{G: 255, A: 255})

	var out bytes.Buffer
	if err := Render(&out, bytes.NewReader(src), format.PNG, Options{MaxSize: 10, Scaler: draw.NearestNeighbor}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Errorf("size %v, want 10x5", img.Bounds().Size())
	}
	if _, g, _, _ := img.At(3, 3).RGBA(); g>>8 != 255 {
		t.Errorf("green = %d, want 255", g>>8)
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		maxSize int
		wantW   int
		wantH   int
	}{
		{"no limit", 30, 10, 0, 30, 10},
		{"fits", 30, 10, 30, 30, 10},
		{"landscape", 300, 100, 60, 60, 20},
		{"portrait", 100, 300, 60, 20, 60},
		{"thin", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Resize(img, tt.maxSize, nil).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Resize() = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	src := solidPNG(t, 2, 2, color.RGBA{A: 255})

	var out bytes.Buffer
	if err := Render(&out, bytes.NewReader(src), format.Unknown, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got error %v, want ErrUnsupportedFormat", err)
	}
	if err := Render(&out, bytes.NewReader([]byte("not a png")), format.PNG, Options{}); err == nil {
		t.Error("expected error for invalid input")
	}
}
