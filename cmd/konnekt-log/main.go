// Command konnekt-log views and analyzes KONNEKTING protocol capture files.
//
// Capture files are written by konnekt-device when started with the
// -protocol-log flag. Each device boot appears as its own session.
//
// Usage:
//
//	konnekt-log <command> [flags] <file.klog>
//
// Commands:
//
//	view     View capture in human-readable format
//	export   Export capture to JSONL or CSV
//	filter   Filter capture and write to new file
//	stats    Show statistics about the capture
//
// Examples:
//
//	# View only dropped requests
//	konnekt-log view -category error device.klog
//
//	# View only frames sent by the device
//	konnekt-log view -direction out device.klog
//
//	# View the memory writes a tool sent to 1.1.10
//	konnekt-log view -device 1.1.10 -type memory_write device.klog
//
//	# Keep one boot session
//	konnekt-log filter -session 3f1c2a9e-... -o boot2.klog device.klog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/konnekting/konnekting-go/cmd/konnekt-log/commands"
)

const usage = `konnekt-log - KONNEKTING Protocol Capture Analyzer

Usage:
  konnekt-log <command> [flags] <file.klog>

Commands:
  view     View capture in human-readable format
  export   Export capture to JSONL or CSV
  filter   Filter capture and write to new file
  stats    Show statistics about the capture

Use "konnekt-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseArgs parses flags and returns the single positional capture path.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func usageFor(fs *flag.FlagSet, name, summary string) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "konnekt-log %s - %s\n\nUsage:\n  konnekt-log %s [flags] <file.klog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	usageFor(fs, "view", "View capture in human-readable format")

	session := fs.String("session", "", "Filter by session ID")
	layer := fs.String("layer", "", "Filter by layer (bus, protocol, device)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	device := fs.String("device", "", "Filter by device address (e.g. 1.1.254)")
	msgType := fs.String("type", "", "Filter frames by message type (e.g. memory_write, 0x1E)")

	path := parseArgs(fs, args)

	filter := commands.ViewFilter{SessionID: *session}

	if *device != "" {
		addr, err := commands.ParseDeviceFlag(*device)
		if err != nil {
			fail(err)
		}
		filter.DeviceAddress = &addr
	}

	if *msgType != "" {
		mt, err := commands.ParseTypeFlag(*msgType)
		if err != nil {
			fail(err)
		}
		filter.MessageType = &mt
	}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	usageFor(fs, "export", "Export capture to JSONL or CSV")

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseArgs(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	usageFor(fs, "filter", "Filter capture and write to new file")

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (bus, protocol, device)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	device := fs.String("device", "", "Filter by device address (e.g. 1.1.254)")
	msgType := fs.String("type", "", "Filter frames by message type (e.g. memory_write, 0x1E)")

	path := parseArgs(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Layer:     *layer,
		Direction: *direction,
		Category:  *category,
		Device:    *device,
		Type:      *msgType,
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "%d events written to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	usageFor(fs, "stats", "Show statistics about the capture")

	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
