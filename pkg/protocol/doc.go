// Package protocol implements the device side of the provisioning protocol.
//
// The Engine claims the reserved provisioning communication object. For each
// notification on that object it reads the 14-byte frame from the bus,
// checks the protocol version and dispatches the decoded message through a
// table keyed by message type:
//
//	ACK                     ignored
//	PROPERTY_PAGE_READ      address match, page 0: device info response
//	RESTART                 address match: restart requested
//	PROGRAMMING_MODE_WRITE  address match: set mode, commit store, ACK
//	PROGRAMMING_MODE_READ   programming mode: address response
//	MEMORY_WRITE            programming mode: write store, ACK
//	MEMORY_READ             programming mode: memory response
//
// Requests that fail a precondition are dropped. The engine never sends a
// negative acknowledgement; the configuration tool treats a missing answer
// as failure and retries.
package protocol
