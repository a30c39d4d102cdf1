// Package progmode implements the programming-mode state machine of a
// KONNEKTING device.
//
// # States
//
//   - IDLE: normal operation, memory writes over the bus are refused
//   - PROGRAMMING: the configuration tool may read and write device memory
//
// The state flips on an explicit toggle (programming button) or when the
// tool writes the programming mode. Every change drives the indicator
// synchronously.
//
// # Forced Reboot
//
// Three toggles in a row, each within ForcedRebootWindow of the previous
// one, request a restart regardless of state. This lets an operator recover
// a device without bus access.
//
// # Reboot Required
//
// Any store mutation marks the device as needing a restart. The flag is
// sticky and consulted only when toggling: leaving programming mode by
// button after a write restarts the device so it picks up the new
// configuration.
//
// # Button Interrupts
//
// PressButton may be called from any goroutine, such as a GPIO edge handler.
// It only sets a pending flag; Poll performs the toggle on the goroutine
// that owns the device.
package progmode
