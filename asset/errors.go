package asset

import "errors"

// ErrInvalidPrimitiveMode is returned when a model's stream data names
// a primitive assembly mode other than 0 (triangle list) or 1 (triangle
// strip).
var ErrInvalidPrimitiveMode = errors.New("asset: invalid primitive assembly mode")

// ErrTruncatedStream is returned when a map, model, point or texture
// read runs out of input before its fixed-size fields are complete.
var ErrTruncatedStream = errors.New("asset: unexpected end of stream")
