package buffer

import (
	"testing"

	"github.com/Iron-Ham/condrv/internal/errors"
)

func TestWideFromText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantUnits []uint16
		wantRepr  string
	}{
		{"foo", "foo", []uint16{'f', 'o', 'o', 0}, `U'foo\x00'`},
		{"empty", "", []uint16{0}, `U'\x00'`},
		{"runic", "\u1681\u1693", []uint16{0x1681, 0x1693, 0}, `U'\u1681\u1693\x00'`},
		{"supplementary", "\U00010A60", []uint16{0xD802, 0xDE60, 0}, `U'\U00010a60\x00'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := WideFromText(tt.text)
			if b.Len() != len(tt.wantUnits) {
				t.Fatalf("Len() = %d, want %d", b.Len(), len(tt.wantUnits))
			}
			for i, want := range tt.wantUnits {
				got, err := b.At(i)
				if err != nil {
					t.Fatalf("At(%d) failed: %v", i, err)
				}
				if got != want {
					t.Errorf("At(%d) = %#04x, want %#04x", i, got, want)
				}
			}
			if _, err := b.At(b.Len()); !errors.Is(err, errors.ErrIndexOutOfRange) {
				t.Errorf("At(Len()) error = %v, want ErrIndexOutOfRange", err)
			}
			text, err := b.Text()
			if err != nil {
				t.Fatalf("Text() failed: %v", err)
			}
			if text != tt.text {
				t.Errorf("Text() = %q, want %q", text, tt.text)
			}
			if got := b.Repr(); got != tt.wantRepr {
				t.Errorf("Repr() = %q, want %q", got, tt.wantRepr)
			}
		})
	}
}

func TestNewWide(t *testing.T) {
	b, err := NewWide(8)
	if err != nil {
		t.Fatalf("NewWide(8) failed: %v", err)
	}
	if b.Len() != 8 {
		t.Errorf("Len() = %d, want 8", b.Len())
	}
	for i := 0; i < 8; i++ {
		if u, _ := b.At(i); u != 0 {
			t.Errorf("At(%d) = %d, want 0", i, u)
		}
	}
	if got := b.Repr(); got != `U'\x00\x00\x00\x00\x00\x00\x00\x00'` {
		t.Errorf("Repr() = %q", got)
	}
	if text, err := b.Text(); err != nil || text != "" {
		t.Errorf("Text() = %q, %v", text, err)
	}

	if _, err := NewWide(0); !errors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("NewWide(0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestWideDanglingSurrogate(t *testing.T) {
	b, _ := NewWide(4)
	copy(b.Raw(), []uint16{'-', 0xD802, 0})

	_, err := b.Text()
	if !errors.IsDecodeError(err) {
		t.Fatalf("Text() error = %v, want decode error", err)
	}
	var decodeErr *errors.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Text() error is %T, want *errors.DecodeError", err)
	}
	if decodeErr.Offset != 1 || decodeErr.Unit != 0xD802 {
		t.Errorf("DecodeError = offset %d unit %#04x", decodeErr.Offset, decodeErr.Unit)
	}

	// Raw access is never validated.
	if u, err := b.At(1); err != nil || u != 0xD802 {
		t.Errorf("At(1) = %#04x, %v", u, err)
	}
	if got := b.Repr(); got != `U'-\ud802\x00\x00'` {
		t.Errorf("Repr() = %q", got)
	}
}

func TestWideTextStopsAtCapacity(t *testing.T) {
	b, _ := NewWide(2)
	copy(b.Raw(), []uint16{0xD802, 0xDE60})
	text, err := b.Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if text != "\U00010A60" {
		t.Errorf("Text() = %q", text)
	}

	copy(b.Raw(), []uint16{'a', 0xD802})
	if _, err := b.Text(); !errors.IsDecodeError(err) {
		t.Errorf("Text() error = %v, want decode error", err)
	}
}

func TestWideUnits(t *testing.T) {
	b := WideFromText("ab")
	units := b.Units()
	if len(units) != 2 || units[0] != 'a' || units[1] != 'b' {
		t.Fatalf("Units() = %v", units)
	}
	units[0] = 'z'
	if u, _ := b.At(0); u != 'a' {
		t.Error("Units() should return a copy")
	}
}

func TestWideRoundTripProperty(t *testing.T) {
	texts := []string{"TITLE", "-[ᛄ]-", "-{\U00010A60}-", "😀😀", "日本語"}
	for _, text := range texts {
		b := WideFromText(text)
		got, err := b.Text()
		if err != nil || got != text {
			t.Errorf("WideFromText(%q).Text() = %q, %v", text, got, err)
		}
		if want := len(EncodeUTF16(text)) + 1; b.Len() != want {
			t.Errorf("WideFromText(%q).Len() = %d, want %d", text, b.Len(), want)
		}
	}
}

func TestWideReprHead(t *testing.T) {
	b := WideFromText("-{\U00010A60}-")

	if got := b.ReprHead(3); got != `U'-{\ud802'...(+4)` {
		t.Errorf("ReprHead(3) = %q", got)
	}
	if got := b.ReprHead(4); got != `U'-{\U00010a60'...(+3)` {
		t.Errorf("ReprHead(4) = %q", got)
	}
	if got := b.ReprHead(b.Len()); got != b.Repr() {
		t.Errorf("ReprHead(Len) = %q, want %q", got, b.Repr())
	}
}
