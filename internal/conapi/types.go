// Package conapi defines the value types exchanged with console calls: output
// scalar references, cursor descriptors, coordinates, rectangles and handles.
package conapi

import "fmt"

// Handle identifies a console object.
type Handle int64

// InvalidHandle is returned for unknown standard handle ids.
const InvalidHandle Handle = -1

// Standard handle ids accepted by GetStdHandle.
const (
	StdInputHandle  int32 = -10
	StdOutputHandle int32 = -11
	StdErrorHandle  int32 = -12
)

// String renders the handle as H[0x..].
func (h Handle) String() string {
	if h == InvalidHandle {
		return "H[invalid]"
	}
	return fmt.Sprintf("H[%#x]", int64(h))
}

// CursorInfo describes the console cursor. Size is the percentage of the
// character cell the cursor fills, 1 to 100.
type CursorInfo struct {
	Size    uint32
	Visible bool
}

// Valid reports whether Size is within 1..100.
func (c CursorInfo) Valid() bool {
	return c.Size >= 1 && c.Size <= 100
}

// Coord is a character cell position.
type Coord struct {
	X int16
	Y int16
}

// SmallRect is a rectangle of character cells.
type SmallRect struct {
	Left   int16
	Top    int16
	Right  int16
	Bottom int16
}

// Width returns the number of columns the rectangle spans, edges inclusive.
func (r SmallRect) Width() int {
	return int(r.Right) - int(r.Left) + 1
}

// Height returns the number of rows the rectangle spans, edges inclusive.
func (r SmallRect) Height() int {
	return int(r.Bottom) - int(r.Top) + 1
}
