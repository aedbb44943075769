package scanline

import "errors"

// Common errors
var (
	ErrRange             = errors.New("scanline range out of bounds")
	ErrInvalidFilterType = errors.New("invalid filter type")
	ErrInvalidBuffer     = errors.New("invalid scanline buffer")
	ErrInvalidArgument   = errors.New("invalid argument")
)
