package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/konnekting/konnekting-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
	Device    string
	Type      string
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter := log.Filter{SessionID: opts.SessionID}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return 0, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return 0, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Layer != "" {
		l, err := parseLayer(opts.Layer)
		if err != nil {
			return 0, err
		}
		filter.Layer = &l
	}

	if opts.Direction != "" {
		d, err := parseDirection(opts.Direction)
		if err != nil {
			return 0, err
		}
		filter.Direction = &d
	}

	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return 0, err
		}
		filter.Category = &c
	}

	if opts.Device != "" {
		addr, err := ParseDeviceFlag(opts.Device)
		if err != nil {
			return 0, err
		}
		filter.DeviceAddress = &addr
	}

	if opts.Type != "" {
		mt, err := ParseTypeFlag(opts.Type)
		if err != nil {
			return 0, err
		}
		filter.MessageType = &mt
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	file, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer file.Close()
	out := log.NewFilteredLogger(file, filter)

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return file.Written(), fmt.Errorf("failed to read event: %w", err)
		}
		out.Log(event)
	}
	if err := file.Err(); err != nil {
		return file.Written(), fmt.Errorf("failed to write event: %w", err)
	}
	return file.Written(), nil
}
