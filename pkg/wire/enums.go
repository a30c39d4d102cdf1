package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolVersion is the only protocol version this implementation speaks.
const ProtocolVersion byte = 0x01

// FrameSize is the size of every frame in bytes.
const FrameSize = 14

// Fill is the value of unused payload bytes.
const Fill byte = 0xFF

// MaxMemoryData is the number of memory bytes that fit into one frame.
const MaxMemoryData = FrameSize - 5

// MessageType identifies the message carried by a frame.
type MessageType uint8

const (
	MsgAck                     MessageType = 0x00
	MsgPropertyPageRead        MessageType = 0x01
	MsgPropertyPageResponse    MessageType = 0x02
	MsgRestart                 MessageType = 0x09
	MsgProgrammingModeWrite    MessageType = 0x0A
	MsgProgrammingModeRead     MessageType = 0x0B
	MsgProgrammingModeResponse MessageType = 0x0C
	MsgMemoryWrite             MessageType = 0x1E
	MsgMemoryRead              MessageType = 0x1F
	MsgMemoryResponse          MessageType = 0x20
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MsgAck:
		return "ACK"
	case MsgPropertyPageRead:
		return "PROPERTY_PAGE_READ"
	case MsgPropertyPageResponse:
		return "PROPERTY_PAGE_RESPONSE"
	case MsgRestart:
		return "RESTART"
	case MsgProgrammingModeWrite:
		return "PROGRAMMING_MODE_WRITE"
	case MsgProgrammingModeRead:
		return "PROGRAMMING_MODE_READ"
	case MsgProgrammingModeResponse:
		return "PROGRAMMING_MODE_RESPONSE"
	case MsgMemoryWrite:
		return "MEMORY_WRITE"
	case MsgMemoryRead:
		return "MEMORY_READ"
	case MsgMemoryResponse:
		return "MEMORY_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// ParseMessageType parses a message type given by name (case-insensitive,
// as returned by String) or by number.
func ParseMessageType(s string) (MessageType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range messageTypes {
		if t.String() == name {
			return t, nil
		}
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown message type %q", s)
	}
	return MessageType(v), nil
}

var messageTypes = []MessageType{
	MsgAck, MsgPropertyPageRead, MsgPropertyPageResponse, MsgRestart,
	MsgProgrammingModeWrite, MsgProgrammingModeRead, MsgProgrammingModeResponse,
	MsgMemoryWrite, MsgMemoryRead, MsgMemoryResponse,
}

// AckType distinguishes positive from negative acknowledgements.
type AckType uint8

const (
	// AckOK is a positive acknowledgement.
	AckOK AckType = 0x00

	// AckNegative is a negative acknowledgement. Devices never send it; it is
	// defined so tools and captures can name it.
	AckNegative AckType = 0xFF
)

// String returns the ack type name.
func (a AckType) String() string {
	switch a {
	case AckOK:
		return "ACK"
	case AckNegative:
		return "NACK"
	default:
		return "UNKNOWN"
	}
}

// ErrorCode is carried in acknowledgements.
type ErrorCode uint8

// ErrCodeOK reports success.
const ErrCodeOK ErrorCode = 0x00

// SystemTypeDefault is reported in the device info page.
const SystemTypeDefault byte = 0x00

// PageDeviceInfo is the property page holding the device identification.
const PageDeviceInfo byte = 0x00
