// Package memory provides the byte-addressable non-volatile store that backs
// a KONNEKTING device's configuration.
//
// # Store Variants
//
//   - MemoryStore: RAM-backed image, useful for tests and devices without
//     persistence. Commit is a no-op.
//   - FileStore: write-back image of a file, emulating EEPROM on flash.
//     Writes stay in RAM until Commit flushes the whole image atomically.
//   - FuncStore: caller-supplied functions for platform-specific backends.
//
// # Failure Model
//
// Store I/O is synchronous and assumed to succeed. Reads outside the store
// return the erased value 0xFF and writes outside the store are ignored.
// Only Commit reports an error, because only Commit touches the medium.
package memory
