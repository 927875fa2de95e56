// Package codepage maps console code page ids to single-byte character tables
// and transcodes between Go strings and those tables.
//
// Encoding is lossy in exactly one way: a code point with no byte in the table
// becomes a single '?'. Decoding never fails; bytes the table leaves undefined
// decode to U+FFFD.
package codepage

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/Iron-Ham/condrv/internal/errors"
)

// Placeholder is the byte substituted for code points a table cannot represent.
const Placeholder byte = '?'

// Well-known code page ids.
const (
	USASCII     uint32 = 20127
	Latin1      uint32 = 28591
	Latin9      uint32 = 28605
	OEMUS       uint32 = 437
	OEMLatin1   uint32 = 850
	OEMCyrillic uint32 = 866
	Windows1250 uint32 = 1250
	Windows1251 uint32 = 1251
	Windows1252 uint32 = 1252
	KOI8R       uint32 = 20866
)

// Default is the code page used when none is configured.
const Default = Latin1

// table converts single code points and bytes.
type table interface {
	encodeRune(r rune) (byte, bool)
	decodeByte(b byte) rune
}

// xtextTable adapts a golang.org/x/text charmap.
type xtextTable struct {
	cm *charmap.Charmap
}

func (t xtextTable) encodeRune(r rune) (byte, bool) { return t.cm.EncodeRune(r) }

func (t xtextTable) decodeByte(b byte) rune { return t.cm.DecodeByte(b) }

// byteTable is a table decoded once from an x/text style Encoding.
type byteTable struct {
	runes [256]rune
	bytes map[rune]byte
}

// newASCIITable builds US-ASCII from a gdamore charmap whose upper half is
// undefined.
func newASCIITable() *byteTable {
	undefined := make(map[byte]rune, 128)
	for i := 0x80; i <= 0xFF; i++ {
		undefined[byte(i)] = utf8.RuneError
	}
	cm := &encoding.Charmap{Map: undefined, ReplacementChar: Placeholder}
	cm.Init()

	t := &byteTable{bytes: make(map[rune]byte, 128)}
	dec := cm.NewDecoder()
	for i := 0; i < 256; i++ {
		r := utf8.RuneError
		if out, err := dec.Bytes([]byte{byte(i)}); err == nil && len(out) > 0 {
			r, _ = utf8.DecodeRune(out)
		}
		t.runes[i] = r
		if r != utf8.RuneError {
			t.bytes[r] = byte(i)
		}
	}
	return t
}

func (t *byteTable) encodeRune(r rune) (byte, bool) {
	b, ok := t.bytes[r]
	return b, ok
}

func (t *byteTable) decodeByte(b byte) rune { return t.runes[b] }

// Codepage is a registered single-byte code page.
type Codepage struct {
	id    uint32
	name  string
	table table
}

// ID returns the numeric code page id.
func (c *Codepage) ID() uint32 { return c.id }

// Name returns the human readable code page name.
func (c *Codepage) Name() string { return c.name }

// String returns "name (id)".
func (c *Codepage) String() string {
	return c.name + " (" + strconv.FormatUint(uint64(c.id), 10) + ")"
}

// Encode converts text to the code page, replacing every code point without
// a mapping with Placeholder.
func (c *Codepage) Encode(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := c.table.encodeRune(r)
		if !ok {
			b = Placeholder
		}
		out = append(out, b)
	}
	return out
}

// Representable reports whether text encodes without substitution.
func (c *Codepage) Representable(text string) bool {
	for _, r := range text {
		if _, ok := c.table.encodeRune(r); !ok {
			return false
		}
	}
	return true
}

// Decode converts bytes in the code page to a Go string.
func (c *Codepage) Decode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(c.table.decodeByte(b))
	}
	return sb.String()
}

var registry = map[uint32]*Codepage{
	USASCII:     {id: USASCII, name: "US-ASCII", table: newASCIITable()},
	Latin1:      {id: Latin1, name: "ISO-8859-1", table: xtextTable{charmap.ISO8859_1}},
	Latin9:      {id: Latin9, name: "ISO-8859-15", table: xtextTable{charmap.ISO8859_15}},
	OEMUS:       {id: OEMUS, name: "IBM437", table: xtextTable{charmap.CodePage437}},
	OEMLatin1:   {id: OEMLatin1, name: "IBM850", table: xtextTable{charmap.CodePage850}},
	OEMCyrillic: {id: OEMCyrillic, name: "IBM866", table: xtextTable{charmap.CodePage866}},
	Windows1250: {id: Windows1250, name: "windows-1250", table: xtextTable{charmap.Windows1250}},
	Windows1251: {id: Windows1251, name: "windows-1251", table: xtextTable{charmap.Windows1251}},
	Windows1252: {id: Windows1252, name: "windows-1252", table: xtextTable{charmap.Windows1252}},
	KOI8R:       {id: KOI8R, name: "KOI8-R", table: xtextTable{charmap.KOI8R}},
}

// Lookup returns the code page registered under id.
func Lookup(id uint32) (*Codepage, error) {
	cp, ok := registry[id]
	if !ok {
		return nil, errors.NewArgumentError("code page is not supported").
			WithField("codepage").
			WithValue(id).
			WithCause(errors.ErrUnknownCodepage)
	}
	return cp, nil
}

// MustLookup is Lookup for ids known at compile time.
func MustLookup(id uint32) *Codepage {
	cp, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return cp
}

// IDs returns the registered code page ids in ascending order.
func IDs() []uint32 {
	ids := make([]uint32, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
