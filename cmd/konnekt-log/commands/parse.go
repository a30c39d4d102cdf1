// Package commands implements the konnekt-log CLI commands.
package commands

import (
	"fmt"
	"strings"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "bus":
		return log.LayerBus, nil
	case "protocol":
		return log.LayerProtocol, nil
	case "device":
		return log.LayerDevice, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be bus, protocol, or device)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, or error)", s)
	}
}

// ParseDeviceFlag parses a device address flag, as area.line.member or number.
func ParseDeviceFlag(s string) (uint16, error) {
	addr, err := wire.ParsePhysical(s)
	if err != nil {
		return 0, fmt.Errorf("invalid device: %w", err)
	}
	return addr, nil
}

// ParseTypeFlag parses a message type flag, by name (memory_write) or number.
func ParseTypeFlag(s string) (wire.MessageType, error) {
	t, err := wire.ParseMessageType(s)
	if err != nil {
		return 0, fmt.Errorf("invalid type: %w", err)
	}
	return t, nil
}
