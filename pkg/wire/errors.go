package wire

import "errors"

// Decode errors.
var (
	ErrFrameLength     = errors.New("frame must be 14 bytes")
	ErrVersionMismatch = errors.New("unsupported protocol version")
	ErrCountTooLarge   = errors.New("memory byte count exceeds frame capacity")
)
