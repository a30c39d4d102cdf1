package device

// ApplicationHandler receives notifications of application objects.
type ApplicationHandler interface {
	HandleObject(index uint8)
}

// ApplicationFunc adapts a function to ApplicationHandler.
type ApplicationFunc func(index uint8)

// HandleObject calls f(index).
func (f ApplicationFunc) HandleObject(index uint8) { f(index) }

// OnObjectIndex routes a notification for communication object index. The
// provisioning object is consumed by the protocol engine and never reaches
// the application.
func (d *Device) OnObjectIndex(index uint8) {
	if d.engine.HandleInbound(index) {
		return
	}
	if d.app != nil {
		d.app.HandleObject(index)
	}
}
