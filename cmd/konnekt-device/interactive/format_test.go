package interactive

import "testing"

func TestParseHexBytes(t *testing.T) {
	got, err := parseHexBytes("01 02:0a-FF")
	if err != nil {
		t.Fatalf("parseHexBytes() error = %v", err)
	}
	want := []byte{0x01, 0x02, 0x0A, 0xFF}
	if string(got) != string(want) {
		t.Errorf("parseHexBytes() = % X, want % X", got, want)
	}

	if _, err := parseHexBytes("zz"); err == nil {
		t.Error("parseHexBytes() expected error for invalid hex")
	}
}
