package commands

import (
	"fmt"
	"io"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// timeFormat is used for event timestamps in all outputs.
const timeFormat = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer         *log.Layer
	Direction     *log.Direction
	Category      *log.Category
	DeviceAddress *uint16
	MessageType   *wire.MessageType
	SessionID     string
}

func (f ViewFilter) toLogFilter() log.Filter {
	return log.Filter{
		SessionID:     f.SessionID,
		Layer:         f.Layer,
		Direction:     f.Direction,
		Category:      f.Category,
		DeviceAddress: f.DeviceAddress,
		MessageType:   f.MessageType,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] device DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format(timeFormat)

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = event.Frame.MessageType.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Dropped"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %s %-3s %s %s\n",
		ts, shortenSessionID(event.SessionID), wire.FormatPhysical(event.DeviceAddress),
		event.Direction.String(), event.Layer.String(), typeLabel)

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	f, err := wire.FrameFromBytes(frame.Data)
	if err != nil {
		fmt.Fprintf(w, "  Data: % X (%v)\n", frame.Data, err)
		return
	}
	fmt.Fprintf(w, "  Data: %s\n", f)
	fmt.Fprintf(w, "  %s\n", wire.Describe(f))
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Reason: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Request: %s\n", err.Context)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.toLogFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
