// Package wire defines the fixed-size frame format of the KONNEKTING
// provisioning protocol.
//
// Every frame is exactly 14 bytes and travels through the reserved
// provisioning communication object:
//
//	[VERSION][TYPE][PAYLOAD(12)]
//
// Multi-byte fields are big-endian. Unused payload bytes are filled with
// 0xFF. A frame is only interpreted once its version byte equals
// ProtocolVersion.
//
// # Message Types
//
//   - Ack: acknowledgement with ack type and error code
//   - PropertyPageRead / PropertyPageResponse: device identification
//   - Restart: restart the addressed device
//   - ProgrammingModeWrite / ProgrammingModeRead / ProgrammingModeResponse
//   - MemoryWrite / MemoryRead / MemoryResponse: raw store access, at most
//     MaxMemoryData bytes per frame
//
// Decode turns a frame into one of the typed message structs; each message
// encodes itself back into a Frame.
package wire
