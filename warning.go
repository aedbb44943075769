package pnglitch

import (
	"strings"

	"github.com/tsawler/pnglitch/png"
)

// Warning describes a recoverable problem found in the input file.
type Warning = png.Warning

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
