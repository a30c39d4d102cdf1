package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

func TestFormatFrameEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

	var buf bytes.Buffer
	formatEvent(&buf, progModeWriteEvent(ts))
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[session:abc12345]",
		"1.1.254",
		"IN",
		"PROTOCOL",
		"PROGRAMMING_MODE_WRITE",
		"01 0A 11 FE 01",
		"enabled=true",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatInvalidFrameData(t *testing.T) {
	event := log.Event{
		Category: log.CategoryMessage,
		Frame:    &log.FrameEvent{Data: []byte{0x01, 0x02}},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)

	if !strings.Contains(buf.String(), "01 02") {
		t.Errorf("expected raw bytes in output, got:\n%s", buf.String())
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		SessionID: "abc",
		Layer:     log.LayerDevice,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDevice,
			OldState: "RUNNING",
			NewState: "RESTARTING",
			Reason:   "restart message",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{"[session:abc]", "State", "Entity: DEVICE", "RUNNING -> RESTARTING", "Reason: restart message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := log.Event{
		Layer:    log.LayerProtocol,
		Category: log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerProtocol,
			Message: "address mismatch",
			Context: "RESTART",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{"Dropped", "Reason: address mismatch", "Request: RESTART"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestRunViewWithFilter(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		progModeWriteEvent(ts),
		{Timestamp: ts, SessionID: "other-session", Category: log.CategoryError, Error: &log.ErrorEventData{Message: "count too large"}},
	}
	path := createTestLogFile(t, events)

	cat := log.CategoryError
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "PROGRAMMING_MODE_WRITE") {
		t.Errorf("message event should be filtered out, got:\n%s", output)
	}
	if !strings.Contains(output, "count too large") {
		t.Errorf("expected error event, got:\n%s", output)
	}
}

func TestRunViewByDevice(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	other := progModeWriteEvent(ts)
	other.DeviceAddress = 0x110A
	other.Frame = &log.FrameEvent{MessageType: wire.MsgRestart}
	path := createTestLogFile(t, []log.Event{progModeWriteEvent(ts), other})

	addr := wire.FactoryAddress
	mt := wire.MsgProgrammingModeWrite
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{DeviceAddress: &addr, MessageType: &mt}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "1.1.10") || strings.Contains(output, "RESTART") {
		t.Errorf("1.1.10 event should be filtered out, got:\n%s", output)
	}
	if !strings.Contains(output, "PROGRAMMING_MODE_WRITE") {
		t.Errorf("expected 1.1.254 event, got:\n%s", output)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"bus", false},
		{"PROTOCOL", false},
		{"Device", false},
		{"wire", true},
	}
	for _, tt := range tests {
		_, err := ParseLayerFlag(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLayerFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}

	if d, err := ParseDirectionFlag("OUT"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(OUT) = %v, %v; want OUT", d, err)
	}
	if _, err := ParseDirectionFlag("sideways"); err == nil {
		t.Error("ParseDirectionFlag(sideways) expected error")
	}
	if c, err := ParseCategoryFlag("state"); err != nil || c != log.CategoryState {
		t.Errorf("ParseCategoryFlag(state) = %v, %v; want STATE", c, err)
	}
	if _, err := ParseCategoryFlag("control"); err == nil {
		t.Error("ParseCategoryFlag(control) expected error")
	}
	if a, err := ParseDeviceFlag("1.1.254"); err != nil || a != wire.FactoryAddress {
		t.Errorf("ParseDeviceFlag(1.1.254) = 0x%04X, %v; want 0x11FE", a, err)
	}
	if m, err := ParseTypeFlag("0x1e"); err != nil || m != wire.MsgMemoryWrite {
		t.Errorf("ParseTypeFlag(0x1e) = %v, %v; want MEMORY_WRITE", m, err)
	}
}
