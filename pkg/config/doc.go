// Package config loads device description files.
//
// A description names the device identity, its communication objects and
// parameter types, and where the simulated device keeps its store image and
// protocol capture. Files are YAML (.yaml, .yml) or TOML (.toml):
//
//	manufacturer: 0xDEAD
//	device: 0x01
//	revision: 0x00
//	objects: 4
//	params: [uint8, uint16, string11]
//	store:
//	  path: device.eep
//	  size: 8192
//	protocol_log: device.klog
package config
