package conapi

import (
	"math"
	"testing"

	"github.com/Iron-Ham/condrv/internal/errors"
)

func TestDwordRef(t *testing.T) {
	ref := NewDwordRef()
	if ref.Get() != 0 {
		t.Errorf("Get() = %d, want 0", ref.Get())
	}
	if ref.String() != "&0" {
		t.Errorf("String() = %q, want &0", ref.String())
	}

	if err := ref.Set(99); err != nil {
		t.Fatalf("Set(99) failed: %v", err)
	}
	if ref.Get() != 99 || ref.String() != "&99" {
		t.Errorf("after Set(99): Get() = %d, String() = %q", ref.Get(), ref.String())
	}

	if err := ref.Set(-1); err != nil {
		t.Fatalf("Set(-1) failed: %v", err)
	}
	if ref.Get() != -1 || ref.String() != "&-1" {
		t.Errorf("after Set(-1): Get() = %d, String() = %q", ref.Get(), ref.String())
	}
	if ref.Dword() != math.MaxUint32 {
		t.Errorf("Dword() = %d, want %d", ref.Dword(), uint32(math.MaxUint32))
	}
}

func TestDwordRefOverflow(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantErr bool
	}{
		{"max int32", math.MaxInt32, false},
		{"min int32", math.MinInt32, false},
		{"one past max", math.MaxInt32 + 1, true},
		{"one past min", math.MinInt32 - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewDwordRef()
			if err := ref.Set(7); err != nil {
				t.Fatalf("Set(7) failed: %v", err)
			}
			err := ref.Set(tt.value)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrOverflow) {
					t.Fatalf("Set(%d) error = %v, want ErrOverflow", tt.value, err)
				}
				if ref.Get() != 7 {
					t.Errorf("failed Set changed value to %d", ref.Get())
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%d) failed: %v", tt.value, err)
			}
			if int64(ref.Get()) != tt.value {
				t.Errorf("Get() = %d, want %d", ref.Get(), tt.value)
			}
		})
	}
}

func TestDwordRefSetDword(t *testing.T) {
	var ref DwordRef
	ref.SetDword(0xFFFFFFFE)
	if ref.Get() != -2 {
		t.Errorf("Get() = %d, want -2", ref.Get())
	}
}
