// Package log provides protocol capture for KONNEKTING devices.
//
// This package defines the Logger interface and Event types for recording
// every provisioning frame a device receives or sends, every
// programming-mode transition and every dropped request. It is separate
// from operational logging (slog): protocol capture is a machine-readable
// trace for debugging provisioning sessions after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/konnekting/device.klog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # Event Types
//
//   - Bus layer: raw 14-byte frames (FrameEvent)
//   - Protocol layer: dropped requests (ErrorEventData)
//   - Device layer: programming mode and restart (StateChangeEvent)
//
// # File Format
//
// Capture files use CBOR encoding with the .klog extension. The konnekt-log
// CLI tool views and summarizes them.
package log
