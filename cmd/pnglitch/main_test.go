package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	stdpng "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pnglitch/format"
	"github.com/tsawler/pnglitch/png"
	"github.com/tsawler/pnglitch/scanline"
)

// writeTestPNG writes a small gradient image and returns its path.
func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 30), B: 90, A: uint8(150 + x)})
		}
	}
	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, img); err != nil {
		t.Fatalf("image/png Encode failed: %v", err)
	}
	path := filepath.Join(dir, "in.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCount(t *testing.T) {
	in := writeTestPNG(t, t.TempDir())

	out, err := runCLI(t, "count", in)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if strings.TrimSpace(out) != "8" {
		t.Errorf("count printed %q, want 8", out)
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.png")

	if _, err := runCLI(t, "apply", "-remove", "-filter", "up", "-from", "2", in, out); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	img, err := png.Open(out)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	buf, err := img.Scanlines()
	if err != nil {
		t.Fatalf("Scanlines failed: %v", err)
	}
	for i := 2; i < 8; i++ {
		line, _ := buf.Line(i)
		if line.FilterType() != scanline.Up {
			t.Errorf("scanline %d tag = %v, want Up", i, line.FilterType())
		}
	}
}

func TestGlitchCommands(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)

	tests := [][]string{
		{"remove", "-level", "9"},
		{"remove", "-from", "3", "-lines", "2"},
		{"transpose", "-src", "0", "-dst", "4", "-lines", "3"},
		{"swap", "-a", "0", "-b", "5", "-lines", "2"},
		{"random", "-times", "5", "-seed", "3"},
	}

	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			out := filepath.Join(dir, args[0]+".png")
			argv := append(append([]string(nil), args...), in, out)
			if _, err := runCLI(t, argv...); err != nil {
				t.Fatalf("%s failed: %v", args[0], err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if _, err := stdpng.Decode(bytes.NewReader(data)); err != nil {
				t.Errorf("output does not decode: %v", err)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	in := writeTestPNG(t, t.TempDir())

	out, err := runCLI(t, "info", in)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Size:         12x8", "TruecolorAlpha", "Scanlines:    8", "IHDR 13", "IEND 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestInfoFilterCounts(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	clean := filepath.Join(dir, "clean.png")
	if _, err := runCLI(t, "remove", in, clean); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	mixed := filepath.Join(dir, "mixed.png")
	if _, err := runCLI(t, "apply", "-filter", "sub", "-from", "5", clean, mixed); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	out, err := runCLI(t, "info", mixed)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"  None        5\n", "  Sub         3\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "invalid") {
		t.Errorf("info reported invalid tags:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)

	tests := []struct {
		args []string
		want format.Format
	}{
		{[]string{"export", in, filepath.Join(dir, "out.bmp")}, format.BMP},
		{[]string{"export", "-max", "6", in, filepath.Join(dir, "out.tif")}, format.TIFF},
		{[]string{"export", "-format", "png", in, filepath.Join(dir, "out.img")}, format.PNG},
	}

	for _, tt := range tests {
		if _, err := runCLI(t, tt.args...); err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		data, err := os.ReadFile(tt.args[len(tt.args)-1])
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if got := format.DetectFromMagic(data); got != tt.want {
			t.Errorf("%v wrote %v, want %v", tt.args, got, tt.want)
		}
	}

	if _, err := runCLI(t, "export", in, filepath.Join(dir, "out.gif")); err == nil {
		t.Error("expected error for unsupported output format")
	}
}

func TestUsageErrors(t *testing.T) {
	in := writeTestPNG(t, t.TempDir())

	tests := [][]string{
		nil,
		{"explode"},
		{"count"},
		{"apply", in},
		{"apply", "-bogus", in, in},
	}
	for _, args := range tests {
		if _, err := runCLI(t, args...); !errors.Is(err, errUsage) {
			t.Errorf("%v: got error %v, want errUsage", args, err)
		}
	}

	if _, err := runCLI(t, "help"); err != nil {
		t.Errorf("help failed: %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "out.png")

	if _, err := runCLI(t, "apply", "-filter", "sideways", in, out); !errors.Is(err, scanline.ErrInvalidFilterType) {
		t.Errorf("got error %v, want ErrInvalidFilterType", err)
	}
	if _, err := runCLI(t, "apply", "-from", "20", in, out); !errors.Is(err, scanline.ErrRange) {
		t.Errorf("got error %v, want ErrRange", err)
	}
	if _, err := runCLI(t, "swap", "-a", "0", "-b", "1", "-lines", "2", in, out); !errors.Is(err, scanline.ErrInvalidArgument) {
		t.Errorf("got error %v, want ErrInvalidArgument", err)
	}
	if _, err := runCLI(t, "count", filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, want os.ErrNotExist", err)
	}
}
