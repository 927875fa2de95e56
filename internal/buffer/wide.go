package buffer

import (
	"slices"

	"github.com/Iron-Ham/condrv/internal/errors"
)

// Wide is a fixed-capacity, null-terminated buffer of UTF-16 code units.
type Wide struct {
	units []uint16
}

// NewWide returns a zero-filled buffer of capacity code units, terminator
// included.
func NewWide(capacity int) (*Wide, error) {
	if capacity < 1 {
		return nil, errors.NewArgumentError("wide buffer capacity must be positive").
			WithField("capacity").
			WithValue(capacity)
	}
	return &Wide{units: make([]uint16, capacity)}, nil
}

// WideFromText returns a buffer holding text as UTF-16 followed by a
// terminator. Supplementary code points occupy two units.
func WideFromText(text string) *Wide {
	encoded := EncodeUTF16(text)
	units := make([]uint16, len(encoded)+1)
	copy(units, encoded)
	return &Wide{units: units}
}

// Len returns the capacity in code units, not in decoded characters.
func (b *Wide) Len() int { return len(b.units) }

// Raw returns the backing storage. Writes through it are visible to the
// buffer.
func (b *Wide) Raw() []uint16 { return b.units }

// At returns the raw code unit at index i without decode validation, so
// partially written buffers can be inspected.
func (b *Wide) At(i int) (uint16, error) {
	if i < 0 || i >= len(b.units) {
		return 0, errors.NewIndexError("wide buffer", i, len(b.units))
	}
	return b.units[i], nil
}

// TextLen returns the number of units before the first zero unit, or the
// capacity when the buffer holds no zero unit.
func (b *Wide) TextLen() int {
	if n := slices.Index(b.units, 0); n >= 0 {
		return n
	}
	return len(b.units)
}

// Units returns a copy of the units before the first zero unit.
func (b *Wide) Units() []uint16 {
	return slices.Clone(b.units[:b.TextLen()])
}

// Text decodes the buffer up to the first zero unit or capacity. It fails
// with a decode error when the retained units hold an unpaired surrogate.
func (b *Wide) Text() (string, error) {
	return DecodeUTF16(b.units[:b.TextLen()])
}

// Repr renders every unit of the buffer, terminator included, as U'...'.
// Unpaired surrogates are escaped rather than rejected.
func (b *Wide) Repr() string {
	return reprUnits(b.units)
}

// ReprHead is Repr limited to the first n units.
func (b *Wide) ReprHead(n int) string {
	n = max(0, min(n, len(b.units)))
	return reprUnits(b.units[:n]) + headSuffix(n, len(b.units))
}

// String implements fmt.Stringer with Repr.
func (b *Wide) String() string { return b.Repr() }
