package png

import "errors"

// Common errors
var (
	ErrInvalidSignature = errors.New("invalid PNG signature")
	ErrNoIHDR           = errors.New("no IHDR chunk found")
	ErrNoIDAT           = errors.New("no IDAT chunk found")
	ErrNoIEND           = errors.New("no IEND chunk found")
	ErrDuplicateIHDR    = errors.New("another IHDR chunk found")
	ErrInvalidHeader    = errors.New("invalid IHDR chunk")
	ErrCRCMismatch      = errors.New("chunk CRC mismatch")
	ErrInvalidText      = errors.New("invalid tEXt chunk")
)
