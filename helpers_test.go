package pnglitch

import (
	"bytes"
	"image"
	"image/color"
	stdpng "image/png"
	"testing"
)

// testPNG encodes a translucent w x h gradient with image/png and returns
// both the file and the source image.
func testPNG(t *testing.T, w, h int) ([]byte, *image.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*23 + y),
				G: uint8(y * 41),
				B: uint8(x ^ y),
				A: uint8(120 + (x+y)%100),
			})
		}
	}

	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, img); err != nil {
		t.Fatalf("image/png Encode failed: %v", err)
	}
	return buf.Bytes(), img
}

// decodeNRGBA decodes data with image/png.
func decodeNRGBA(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image/png Decode failed: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	return nrgba
}

// row returns the pixel bytes of row y.
func row(img *image.NRGBA, y int) []byte {
	w := img.Rect.Dx() * 4
	return img.Pix[y*img.Stride : y*img.Stride+w]
}
