package buffer

import (
	"bytes"

	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/errors"
)

// Ansi is a fixed-capacity, null-terminated single-byte text buffer. Its
// bytes are interpreted in a console code page, Latin-1 unless configured
// otherwise.
type Ansi struct {
	data []byte
	cp   *codepage.Codepage
}

// AnsiOption configures an Ansi buffer.
type AnsiOption func(*Ansi)

// WithCodepage sets the code page used to encode and decode the buffer.
// A nil code page keeps the default. Title set calls reject a buffer whose
// code page differs from the console input code page.
func WithCodepage(cp *codepage.Codepage) AnsiOption {
	return func(b *Ansi) {
		if cp != nil {
			b.cp = cp
		}
	}
}

func newAnsi(data []byte, opts []AnsiOption) *Ansi {
	b := &Ansi{data: data, cp: codepage.MustLookup(codepage.Default)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewAnsi returns a zero-filled buffer of capacity bytes, terminator included.
func NewAnsi(capacity int, opts ...AnsiOption) (*Ansi, error) {
	if capacity < 1 {
		return nil, errors.NewArgumentError("ansi buffer capacity must be positive").
			WithField("capacity").
			WithValue(capacity)
	}
	return newAnsi(make([]byte, capacity), opts), nil
}

// AnsiFromText returns a buffer holding text in the buffer's code page
// followed by a terminator. Characters the code page cannot represent are
// stored as '?'.
func AnsiFromText(text string, opts ...AnsiOption) *Ansi {
	b := newAnsi(nil, opts)
	encoded := b.cp.Encode(text)
	b.data = make([]byte, len(encoded)+1)
	copy(b.data, encoded)
	return b
}

// Len returns the capacity in bytes, not the length of the text it holds.
func (b *Ansi) Len() int { return len(b.data) }

// Codepage returns the code page the buffer's bytes are interpreted in.
func (b *Ansi) Codepage() *codepage.Codepage { return b.cp }

// Raw returns the backing storage. Writes through it are visible to the
// buffer.
func (b *Ansi) Raw() []byte { return b.data }

// At returns the raw byte at index i.
func (b *Ansi) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, errors.NewIndexError("ansi buffer", i, len(b.data))
	}
	return b.data[i], nil
}

// TextLen returns the number of bytes before the first zero, or the capacity
// when the buffer holds no zero byte.
func (b *Ansi) TextLen() int {
	if n := bytes.IndexByte(b.data, 0); n >= 0 {
		return n
	}
	return len(b.data)
}

// Text decodes the buffer up to the first zero byte or capacity.
func (b *Ansi) Text() string {
	return b.cp.Decode(b.data[:b.TextLen()])
}

// Repr renders every byte of the buffer, terminator and trailing bytes
// included, as A'...'.
func (b *Ansi) Repr() string {
	return reprBytes(b.data)
}

// ReprHead is Repr limited to the first n bytes. Omitted bytes are counted
// after the closing quote, as in A'ab\x00'...(+5).
func (b *Ansi) ReprHead(n int) string {
	n = max(0, min(n, len(b.data)))
	return reprBytes(b.data[:n]) + headSuffix(n, len(b.data))
}

// String implements fmt.Stringer with Repr.
func (b *Ansi) String() string { return b.Repr() }
