package buffer

import (
	"testing"

	"github.com/Iron-Ham/condrv/internal/errors"
)

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name       string
		units      []uint16
		want       string
		wantOffset int
		wantErr    bool
	}{
		{name: "empty", units: nil, want: ""},
		{name: "bmp", units: []uint16{'-', 0x16C4, '-'}, want: "-ᛄ-"},
		{name: "pair", units: []uint16{0xD802, 0xDE60}, want: "\U00010A60"},
		{name: "trailing high", units: []uint16{'-', '{', 0xD802}, wantErr: true, wantOffset: 2},
		{name: "high then bmp", units: []uint16{0xD802, 'x'}, wantErr: true, wantOffset: 0},
		{name: "lone low", units: []uint16{'a', 0xDE60}, wantErr: true, wantOffset: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF16(tt.units)
			if tt.wantErr {
				var decodeErr *errors.DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("DecodeUTF16() error = %v, want *errors.DecodeError", err)
				}
				if decodeErr.Offset != tt.wantOffset {
					t.Errorf("Offset = %d, want %d", decodeErr.Offset, tt.wantOffset)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeUTF16() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeUTF16() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeUTF16(t *testing.T) {
	got := EncodeUTF16("a\U00010A60")
	want := []uint16{'a', 0xD802, 0xDE60}
	if len(got) != len(want) {
		t.Fatalf("EncodeUTF16() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unit %d = %#04x, want %#04x", i, got[i], want[i])
		}
	}
}
