package conapi

import (
	"math"
	"strconv"

	"github.com/Iron-Ham/condrv/internal/errors"
)

// DwordRef is a mutable signed 32-bit value passed to calls as an output
// parameter. The zero value holds 0.
//
// Set rejects values outside the int32 range with an *errors.OverflowError
// instead of wrapping. Negative values are stored as-is; Dword exposes the
// two's-complement bits the native side would see.
type DwordRef struct {
	value int32
}

// NewDwordRef returns a reference holding 0.
func NewDwordRef() *DwordRef {
	return &DwordRef{}
}

// Get returns the current value.
func (r *DwordRef) Get() int32 {
	return r.value
}

// Set stores v, failing when it does not fit in 32 signed bits.
func (r *DwordRef) Set(v int64) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return errors.NewOverflowError(v, math.MinInt32, math.MaxInt32)
	}
	r.value = int32(v)
	return nil
}

// Dword returns the value reinterpreted as an unsigned 32-bit word.
func (r *DwordRef) Dword() uint32 {
	return uint32(r.value)
}

// SetDword stores an unsigned word, reinterpreting it as two's complement.
// Console calls use it to write native DWORD results.
func (r *DwordRef) SetDword(v uint32) {
	r.value = int32(v)
}

// String renders the reference as &value.
func (r *DwordRef) String() string {
	return "&" + strconv.FormatInt(int64(r.value), 10)
}
