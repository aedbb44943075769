// Command pnglitch corrupts PNG images by rewriting their scanline filters.
//
// Usage:
//
//	pnglitch apply -filter paeth -from 10 -lines 40 in.png out.png
//	pnglitch remove in.png out.png
//	pnglitch transpose -src 0 -dst 100 -lines 25 in.png out.png
//	pnglitch swap -a 0 -b 100 -lines 25 in.png out.png
//	pnglitch random -times 20 -seed 7 in.png out.png
//	pnglitch count in.png
//	pnglitch info in.png
//	pnglitch export -max 800 out.png preview.bmp
//
// Scanlines are numbered from 0. A negative -lines value selects every
// scanline from -from to the end of the image.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// errUsage reports a command line that could not be parsed. The flag set has
// already printed the details.
var errUsage = errors.New("invalid usage")

type command struct {
	name    string
	summary string
	run     func(args []string, stdout io.Writer) error
}

var commands = []command{
	{"apply", "filter a range of scanlines", runApply},
	{"remove", "remove the filters of a range of scanlines", runRemove},
	{"transpose", "copy a run of scanlines over another", runTranspose},
	{"swap", "exchange two runs of scanlines", runSwap},
	{"random", "copy random scanlines over random scanlines", runRandom},
	{"count", "print the number of scanlines", runCount},
	{"info", "print the header, chunks, and text of an image", runInfo},
	{"export", "convert an image to PNG, BMP, or TIFF", runExport},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("pnglitch: ")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			log.Printf("Error: %v", err)
		}
		os.Exit(1)
	}
}

// run dispatches args to a subcommand.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout)
		}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return nil
	}
	usage(stderr)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pnglitch <command> [flags] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pnglitch <command> -h' for the flags of a command.")
}
