// Package interactive provides the interactive command-line interface
// for the simulated KONNEKTING device.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/konnekting/konnekting-go/pkg/bus"
	"github.com/konnekting/konnekting-go/pkg/device"
	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/protocol"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Runtime is the simulated device the console drives.
type Runtime interface {
	// Do runs fn on the device goroutine and waits for it. It fails once
	// the device has stopped.
	Do(fn func(d *device.Device)) error

	// Inject delivers a frame to the provisioning object.
	Inject(f wire.Frame) error

	// PressButton presses the programming button.
	PressButton() error

	// OnSend registers a callback for every telegram the device sends.
	OnSend(fn func(t bus.Telegram))

	// Sent returns the telegrams sent since the last restart.
	Sent() []bus.Telegram

	// ParamTypes returns the configured parameter types.
	ParamTypes() []layout.ParamType
}

// Console handles interactive mode for konnekt-device.
type Console struct {
	rl *readline.Instance
	rt Runtime
}

// New creates a console.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "device> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc, rt Runtime) {
	defer c.rl.Close()
	c.rt = rt

	rt.OnSend(func(t bus.Telegram) {
		if t.Index != protocol.ProvisioningObjectIndex {
			return
		}
		if f, err := wire.FrameFromBytes(t.Data); err == nil {
			fmt.Fprintf(c.rl.Stdout(), "<- %s\n   %s\n", f, wire.Describe(f))
		}
	})

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "s":
			c.cmdStatus()

		case "button", "b":
			c.report(c.rt.PressButton())

		case "toggle":
			c.do(func(d *device.Device) { d.ToggleProgrammingMode() })

		case "send":
			c.cmdSend(args)

		case "info":
			c.cmdInfo(args)

		case "prog":
			c.cmdProg(args)

		case "progread":
			c.inject(&wire.ProgrammingModeRead{})

		case "write", "w":
			c.cmdWrite(args)

		case "read", "r":
			c.cmdRead(args)

		case "restart":
			c.cmdRestart(args)

		case "params", "p":
			c.cmdParams()

		case "objects", "o":
			c.cmdObjects()

		case "sent":
			c.cmdSent()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
KONNEKTING Device Commands:
  Device:
    status                   - Show address, flags and programming mode
    button                   - Press the programming button
    toggle                   - Toggle programming mode directly
    params                   - Show parameter values
    objects                  - Show the communication object table

  Tool requests (sent to the provisioning object):
    send <hex>               - Send a raw 14-byte frame
    info [addr]              - Property page read (device info)
    prog [addr] on|off       - Programming mode write
    progread                 - Programming mode read
    write <start> <hex>      - Memory write (max 9 bytes)
    read <start> <count>     - Memory read
    restart [addr]           - Restart

  Other:
    sent                     - Show frames sent since the last restart
    help                     - Show this help
    quit                     - Exit

  Addresses are area.line.member or numbers; [addr] defaults to the
  device's own address.`)
}

func (c *Console) cmdStatus() {
	c.do(func(d *device.Device) {
		out := c.rl.Stdout()
		fmt.Fprintf(out, "Identity:          %s\n", d.Identity())
		fmt.Fprintf(out, "Address:           %s (0x%04X)\n", wire.FormatPhysical(d.Address()), d.Address())
		fmt.Fprintf(out, "Flags:             0x%02X (factory: %v)\n", d.Flags(), d.IsFactorySetting())
		fmt.Fprintf(out, "Programming mode:  %s\n", d.ProgrammingMode().State())
		fmt.Fprintf(out, "Reboot required:   %v\n", d.RebootRequired())
		fmt.Fprintf(out, "Ready for app:     %v\n", d.IsReadyForApplication())
		fmt.Fprintf(out, "Free store offset: 0x%04X\n", d.FreeStoreOffset())
		fmt.Fprintf(out, "Session:           %s\n", d.SessionID())
	})
}

func (c *Console) cmdSend(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: send <hex>")
		return
	}
	f, err := wire.ParseHex(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return
	}
	c.injectFrame(f)
}

func (c *Console) cmdInfo(args []string) {
	addr, ok := c.targetAddress(args)
	if !ok {
		return
	}
	c.inject(&wire.PropertyPageRead{Address: addr, Page: wire.PageDeviceInfo})
}

func (c *Console) cmdProg(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: prog [addr] on|off")
		return
	}
	state := strings.ToLower(args[len(args)-1])
	if state != "on" && state != "off" {
		fmt.Fprintf(c.rl.Stdout(), "Error: expected on or off, got %q\n", state)
		return
	}
	addr, ok := c.targetAddress(args[:len(args)-1])
	if !ok {
		return
	}
	c.inject(&wire.ProgrammingModeWrite{Address: addr, Enabled: state == "on"})
}

func (c *Console) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: write <start> <hex>")
		return
	}
	start, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: invalid start %q\n", args[0])
		return
	}
	data, err := parseHexBytes(strings.Join(args[1:], ""))
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return
	}
	m, err := wire.NewMemoryWrite(uint16(start), data)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return
	}
	c.inject(m)
}

func (c *Console) cmdRead(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: read <start> <count>")
		return
	}
	start, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: invalid start %q\n", args[0])
		return
	}
	count, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil || count > wire.MaxMemoryData {
		fmt.Fprintf(c.rl.Stdout(), "Error: count must be 0..%d\n", wire.MaxMemoryData)
		return
	}
	c.inject(&wire.MemoryRead{Count: uint8(count), Start: uint16(start)})
}

func (c *Console) cmdRestart(args []string) {
	addr, ok := c.targetAddress(args)
	if !ok {
		return
	}
	c.inject(&wire.Restart{Address: addr})
}

func (c *Console) cmdParams() {
	types := c.rt.ParamTypes()
	c.do(func(d *device.Device) {
		out := c.rl.Stdout()
		if len(types) == 0 {
			fmt.Fprintln(out, "No parameters configured")
			return
		}
		for i, t := range types {
			fmt.Fprintf(out, "  [%2d] %-8s @0x%04X = %s\n", i, t, d.Layout().ParamOffset(i), FormatParam(d, i, t))
		}
	})
}

func (c *Console) cmdObjects() {
	c.do(func(d *device.Device) {
		out := c.rl.Stdout()
		if d.IsFactorySetting() {
			fmt.Fprintln(out, "Factory settings: object table not loaded")
			return
		}
		for i := 0; ; i++ {
			e, ok := d.Object(i)
			if !ok {
				break
			}
			fmt.Fprintf(out, "  [%3d] %-9s settings=0x%02X active=%v\n", i, wire.FormatGroup(e.Address), e.Settings, e.Active())
		}
	})
}

func (c *Console) cmdSent() {
	sent := c.rt.Sent()
	if len(sent) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No frames sent")
		return
	}
	for _, t := range sent {
		f, err := wire.FrameFromBytes(t.Data)
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "  obj %3d: % X\n", t.Index, t.Data)
			continue
		}
		fmt.Fprintf(c.rl.Stdout(), "  obj %3d: %s  %s\n", t.Index, f, wire.Describe(f))
	}
}

// targetAddress parses an optional address argument, defaulting to the
// device's own address.
func (c *Console) targetAddress(args []string) (uint16, bool) {
	if len(args) == 0 {
		var addr uint16
		ok := c.do(func(d *device.Device) { addr = d.Address() })
		return addr, ok
	}
	addr, err := wire.ParsePhysical(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return 0, false
	}
	return addr, true
}

func (c *Console) inject(m wire.Message) {
	c.injectFrame(m.Encode())
}

func (c *Console) injectFrame(f wire.Frame) {
	fmt.Fprintf(c.rl.Stdout(), "-> %s\n   %s\n", f, wire.Describe(f))
	c.report(c.rt.Inject(f))
}

// do runs fn on the device and reports whether it ran.
func (c *Console) do(fn func(d *device.Device)) bool {
	err := c.rt.Do(fn)
	c.report(err)
	return err == nil
}

func (c *Console) report(err error) {
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
	}
}
