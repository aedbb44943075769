package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tsawler/pnglitch"
	"github.com/tsawler/pnglitch/format"
	"github.com/tsawler/pnglitch/internal/filters"
	"github.com/tsawler/pnglitch/png"
	"github.com/tsawler/pnglitch/preview"
	"github.com/tsawler/pnglitch/scanline"
)

// encodeFlags are shared by every command that writes a PNG file.
type encodeFlags struct {
	level  *int
	strict *bool
}

func addEncodeFlags(fs *flag.FlagSet) encodeFlags {
	return encodeFlags{
		level:  fs.Int("level", filters.DefaultCompression, "zlib compression level (-2 to 9)"),
		strict: fs.Bool("strict", false, "reject input with chunk CRC mismatches"),
	}
}

// apply configures g from the flags.
func (f encodeFlags) apply(g *pnglitch.Glitch) *pnglitch.Glitch {
	g = g.CompressionLevel(*f.level)
	if *f.strict {
		g = g.StrictCRC()
	}
	return g
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pnglitch %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and checks the number of positional arguments.
func parse(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() != positional {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", errUsage, positional, fs.NArg())
	}
	return fs.Args(), nil
}

// save runs g, writes the result to out, and logs any warnings.
func save(g *pnglitch.Glitch, out string) error {
	warnings, err := g.Save(out)
	if len(warnings) > 0 {
		log.Printf("Warnings: %s", pnglitch.FormatWarnings(warnings))
	}
	return err
}

// span resolves a negative line count to the rest of the image.
func span(in string, from, lines int) (int, error) {
	if lines >= 0 {
		return lines, nil
	}
	total, err := pnglitch.Open(in).ScanlineCount()
	if err != nil {
		return 0, err
	}
	if from > total {
		return 0, fmt.Errorf("%w: scanline %d of %d", scanline.ErrRange, from, total)
	}
	return total - from, nil
}

func runApply(args []string, _ io.Writer) error {
	fs := newFlagSet("apply", "<input> <output>")
	name := fs.String("filter", "paeth", "filter type: none, sub, up, average, paeth, or 0-4")
	from := fs.Int("from", 0, "first scanline")
	lines := fs.Int("lines", -1, "number of scanlines")
	remove := fs.Bool("remove", false, "remove existing filters from the range first")
	enc := addEncodeFlags(fs)
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	ft, err := scanline.ParseFilterType(*name)
	if err != nil {
		return err
	}
	n, err := span(pos[0], *from, *lines)
	if err != nil {
		return err
	}

	g := enc.apply(pnglitch.Open(pos[0]))
	if *remove {
		g = g.RemoveFilter(*from, n)
	}
	return save(g.ApplyFilter(ft, *from, n), pos[1])
}

func runRemove(args []string, _ io.Writer) error {
	fs := newFlagSet("remove", "<input> <output>")
	from := fs.Int("from", 0, "first scanline")
	lines := fs.Int("lines", -1, "number of scanlines")
	enc := addEncodeFlags(fs)
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	n, err := span(pos[0], *from, *lines)
	if err != nil {
		return err
	}
	return save(enc.apply(pnglitch.Open(pos[0])).RemoveFilter(*from, n), pos[1])
}

func runTranspose(args []string, _ io.Writer) error {
	fs := newFlagSet("transpose", "<input> <output>")
	src := fs.Int("src", 0, "first source scanline")
	dst := fs.Int("dst", 0, "first destination scanline")
	lines := fs.Int("lines", 1, "number of scanlines")
	enc := addEncodeFlags(fs)
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	return save(enc.apply(pnglitch.Open(pos[0])).Transpose(*src, *dst, *lines), pos[1])
}

func runSwap(args []string, _ io.Writer) error {
	fs := newFlagSet("swap", "<input> <output>")
	a := fs.Int("a", 0, "first scanline of the first run")
	b := fs.Int("b", 0, "first scanline of the second run")
	lines := fs.Int("lines", 1, "number of scanlines")
	enc := addEncodeFlags(fs)
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	return save(enc.apply(pnglitch.Open(pos[0])).Swap(*a, *b, *lines), pos[1])
}

func runRandom(args []string, _ io.Writer) error {
	fs := newFlagSet("random", "<input> <output>")
	times := fs.Int("times", 10, "number of copies")
	seed := fs.Uint64("seed", 0, "random seed (0 picks a random one)")
	enc := addEncodeFlags(fs)
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	g := enc.apply(pnglitch.Open(pos[0]))
	if *seed != 0 {
		g = g.Seed(*seed)
	}
	return save(g.RandomCopy(*times), pos[1])
}

func runCount(args []string, stdout io.Writer) error {
	fs := newFlagSet("count", "<input>")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	n, err := pnglitch.Open(pos[0]).ScanlineCount()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, n)
	return nil
}

func runInfo(args []string, stdout io.Writer) error {
	fs := newFlagSet("info", "<input>")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	img, err := png.Open(pos[0])
	if err != nil {
		return err
	}

	h := img.Header
	fmt.Fprintf(stdout, "Size:         %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(stdout, "Color type:   %s\n", h.ColorType)
	fmt.Fprintf(stdout, "Bit depth:    %d\n", h.BitDepth)
	fmt.Fprintf(stdout, "Interlaced:   %t\n", h.Interlaced())
	fmt.Fprintf(stdout, "Stride:       %d\n", h.Stride())
	fmt.Fprintf(stdout, "IDAT chunks:  %d\n", img.IDATCount())

	if buf, err := img.Scanlines(); err == nil {
		if err := printFilterCounts(stdout, buf); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(stdout, "Scanlines:    unavailable (%v)\n", err)
	}

	fmt.Fprintln(stdout, "Chunks:")
	for _, c := range img.Chunks() {
		fmt.Fprintf(stdout, "  %s %d\n", c.Type, c.Length)
	}

	entries, err := img.Text()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "Text %s: %s\n", e.Keyword, e.Text)
	}

	for _, w := range img.Warnings() {
		fmt.Fprintf(stdout, "Warning: %s\n", w)
	}
	return nil
}

// printFilterCounts prints the number of scanlines using each filter type.
func printFilterCounts(w io.Writer, buf *scanline.Buffer) error {
	n, err := buf.Count()
	if err != nil {
		return err
	}
	lines, err := buf.Lines(0, n)
	if err != nil {
		return err
	}

	counts := make(map[scanline.FilterType]int)
	invalid := 0
	for _, l := range lines {
		if !l.FilterType().Valid() {
			invalid++
			continue
		}
		counts[l.FilterType()]++
	}

	fmt.Fprintf(w, "Scanlines:    %d\n", n)
	for ft := scanline.None; ft <= scanline.Paeth; ft++ {
		if counts[ft] > 0 {
			fmt.Fprintf(w, "  %-8s    %d\n", ft, counts[ft])
		}
	}
	if invalid > 0 {
		fmt.Fprintf(w, "  %-8s    %d\n", "invalid", invalid)
	}
	return nil
}

func runExport(args []string, _ io.Writer) error {
	fs := newFlagSet("export", "<input> <output>")
	name := fs.String("format", "", "output format: png, bmp, or tiff (default: from the output extension)")
	maxSize := fs.Int("max", 0, "largest side of the output in pixels (0 keeps the size)")
	pos, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	f := format.Detect(pos[1])
	if *name != "" {
		f = format.Parse(*name)
	}
	if f == format.Unknown {
		return fmt.Errorf("%w for %s", preview.ErrUnsupportedFormat, pos[1])
	}

	in, err := os.Open(pos[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(pos[1])
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := preview.Render(out, in, f, preview.Options{MaxSize: *maxSize}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
