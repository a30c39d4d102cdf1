package wire

import "testing"

func TestParseMessageType(t *testing.T) {
	tests := []struct {
		in      string
		want    MessageType
		wantErr bool
	}{
		{"MEMORY_WRITE", MsgMemoryWrite, false},
		{"programming_mode_read", MsgProgrammingModeRead, false},
		{"ack", MsgAck, false},
		{"0x1F", MsgMemoryRead, false},
		{"9", MsgRestart, false},
		{"0x100", 0, true},
		{"write", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMessageType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMessageType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMessageType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
