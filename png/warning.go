package png

import "fmt"

// Warning describes a recoverable problem found while decoding.
type Warning struct {
	// Offset is the byte offset of the chunk in the file.
	Offset int
	// Chunk is the type of the chunk, if any.
	Chunk string
	// Message describes the problem.
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Chunk == "" {
		return fmt.Sprintf("offset %d: %s", w.Offset, w.Message)
	}
	return fmt.Sprintf("%s chunk at offset %d: %s", w.Chunk, w.Offset, w.Message)
}
