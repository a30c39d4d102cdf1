package scenario

import "testing"

func TestDefaultChecker(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"int vs int64", 42, int64(42), true},
		{"int mismatch", 41, int64(42), false},
		{"bool", true, true, true},
		{"bool mismatch", false, true, false},
		{"string", "1.1.10", "1.1.10", true},
		{"number vs string", 1, "1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultChecker("k", tt.expected, tt.actual).Passed; got != tt.want {
				t.Errorf("defaultChecker(%v, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestCheckFrame(t *testing.T) {
	full := "01 00 00 00 FF FF FF FF FF FF FF FF FF FF"
	tests := []struct {
		name     string
		expected any
		actual   string
		want     bool
	}{
		{"padded", "01 00 00 00", full, true},
		{"full", full, full, true},
		{"lower case", "01000000", full, true},
		{"none", "none", "", true},
		{"none but replied", "none", full, false},
		{"different", "01 00 00 01", full, false},
		{"invalid hex", "zz", full, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFrame(KeyReply, tt.expected, tt.actual).Passed; got != tt.want {
				t.Errorf("checkFrame(%v, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestCheckHex(t *testing.T) {
	if !checkHex(KeyData, "ab:cd", "AB CD").Passed {
		t.Error("checkHex should ignore case and separators")
	}
	if checkHex(KeyData, "AB", "AB CD").Passed {
		t.Error("checkHex should compare length")
	}
}

func TestParseFrame(t *testing.T) {
	f, err := parseFrame("01 0B")
	if err != nil {
		t.Fatalf("parseFrame() error = %v", err)
	}
	if got, want := f.String(), "01 0B FF FF FF FF FF FF FF FF FF FF FF FF"; got != want {
		t.Errorf("parseFrame() = %s, want %s", got, want)
	}

	if _, err := parseFrame("01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F"); err == nil {
		t.Error("parseFrame() should reject more than 14 bytes")
	}
}
