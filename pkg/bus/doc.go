// Package bus provides an in-process bus device for KONNEKTING devices.
//
// Loopback holds communication object values and their group address
// configuration, records every telegram the device sends and lets a driver
// (the device simulator, a test) inject telegrams that are delivered as
// object notifications.
package bus
