package protocol

import "errors"

// Drop reasons. They never reach the bus; the engine logs and captures them.
var (
	ErrAddressMismatch = errors.New("frame addressed to another device")
	ErrNotProgramming  = errors.New("device not in programming mode")
	ErrUnsupportedPage = errors.New("unsupported property page")
	ErrUnhandledType   = errors.New("unhandled message type")
)
