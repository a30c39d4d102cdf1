// Package device holds the state of a KONNEKTING device and routes bus
// notifications.
//
// A Device is constructed from its identity, parameter layout, persistent
// store and bus. Init loads the device flags, bus address and
// communication-object table from the store. OnObjectIndex is the single
// entry point for object notifications: the provisioning object goes to the
// protocol engine, every other object to the application handler.
//
// # Usage
//
//	dev, err := device.New(device.Config{
//	    Identity:    device.Identity{Manufacturer: 0xDEAD, Device: 0x01, Revision: 0x00},
//	    Layout:      lay,
//	    Store:       store,
//	    Bus:         loopback,
//	    Restarter:   progmode.RestartFunc(reboot),
//	    Application: device.ApplicationFunc(app.HandleObject),
//	})
//	dev.Init()
//	loopback.OnNotify(dev.OnObjectIndex)
package device
