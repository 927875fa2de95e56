// Package title implements the console title protocol: a single current title
// read back through size-bounded ANSI and wide buffers.
//
// The two getters account for sizes differently, reproducing the console API
// they emulate:
//
//   - GetTitleAnsi takes its declared capacity in characters and rejects the
//     request wholesale, returning 0, when the title plus terminator does not
//     fit.
//   - GetTitleWide takes its declared capacity in bytes, halves it to get a
//     code-unit budget, copies as much as fits less one unit for the
//     terminator, and always returns the full title length in code units.
//
// For a 15-unit title, GetTitleWide(buf, 16) therefore copies 7 units and
// returns 15.
package title

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/condrv/internal/buffer"
	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/errors"
)

// Service holds the current console title. It is safe for concurrent use.
type Service struct {
	mu    sync.Mutex
	title []uint16
	cp    *codepage.Codepage
}

// Option configures a Service.
type Option func(*Service)

// WithCodepage sets the code page ANSI reads and writes transcode through.
func WithCodepage(cp *codepage.Codepage) Option {
	return func(s *Service) {
		if cp != nil {
			s.cp = cp
		}
	}
}

// WithInitialTitle sets the title the service starts with.
func WithInitialTitle(text string) Option {
	return func(s *Service) {
		s.title = buffer.EncodeUTF16(text)
	}
}

// New creates a Service with an empty title and the default code page.
func New(opts ...Option) *Service {
	s := &Service{
		title: []uint16{},
		cp:    codepage.MustLookup(codepage.Default),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce    sync.Once
	defaultService *Service
)

// Default returns the process-wide Service.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = New()
	})
	return defaultService
}

// Codepage returns the code page used for ANSI transcoding.
func (s *Service) Codepage() *codepage.Codepage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cp
}

// SetCodepage changes the code page used for ANSI transcoding.
func (s *Service) SetCodepage(cp *codepage.Codepage) error {
	if cp == nil {
		return errors.NewArgumentError("code page is nil").WithField("codepage")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cp = cp
	return nil
}

// Title returns the current title.
func (s *Service) Title() string {
	s.mu.Lock()
	units := slices.Clone(s.title)
	s.mu.Unlock()

	// Stored titles always come from valid text or a strictly decoded buffer.
	text, _ := buffer.DecodeUTF16(units)
	return text
}

// Length returns the current title length in UTF-16 code units.
func (s *Service) Length() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.title)
}

// SetTitle replaces the current title. It always succeeds.
func (s *Service) SetTitle(text string) bool {
	units := buffer.EncodeUTF16(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = units
	return true
}

// SetTitleAnsi replaces the current title with the text of buf decoded in the
// service code page. buf must be tagged with that same code page so that
// buf.Text and the stored title agree; otherwise the call fails with an
// ArgumentError and the title is unchanged.
func (s *Service) SetTitleAnsi(buf *buffer.Ansi) (bool, error) {
	if buf == nil {
		return false, errNilBuffer()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id := buf.Codepage().ID(); id != s.cp.ID() {
		return false, errors.NewArgumentError("buffer code page does not match the title code page " + s.cp.String()).
			WithField("codepage").
			WithValue(id)
	}
	raw := buf.Raw()
	s.title = buffer.EncodeUTF16(s.cp.Decode(raw[:buf.TextLen()]))
	return true, nil
}

// SetTitleWide replaces the current title with the decoded text of buf. A
// buffer holding an unpaired surrogate fails with a decode error and leaves
// the current title unchanged.
func (s *Service) SetTitleWide(buf *buffer.Wide) (bool, error) {
	if buf == nil {
		return false, errNilBuffer()
	}
	units := buf.Units()
	if _, err := buffer.DecodeUTF16(units); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = units
	return true, nil
}

// GetTitleAnsi copies the title, transcoded to the service code page, into
// buf and returns the number of characters copied.
//
// declared is the usable size of buf in bytes, terminator included, and must
// not exceed buf.Len(). When the transcoded title does not fit in declared-1
// bytes nothing of it is copied, the first byte of buf is cleared and 0 is
// returned. Characters without a mapping in the code page become '?'.
func (s *Service) GetTitleAnsi(buf *buffer.Ansi, declared int) (int, error) {
	if buf == nil {
		return 0, errNilBuffer()
	}
	if err := checkDeclared(declared, declared, buf.Len(), "declaredCapacity"); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	text, _ := buffer.DecodeUTF16(s.title)
	encoded := s.cp.Encode(text)
	raw := buf.Raw()
	if len(encoded) >= declared {
		if declared > 0 {
			raw[0] = 0
		}
		return 0, nil
	}
	n := copy(raw, encoded)
	raw[n] = 0
	return n, nil
}

// GetTitleWide copies as much of the title as fits into buf and returns the
// full title length in code units, independent of how much was copied.
//
// declaredBytes is the usable size of buf in bytes; it is halved, rounding
// down, to get a code-unit budget. min(budget-1, length) units are copied
// followed by a terminator. A budget of zero copies nothing. The copy may end
// between the halves of a surrogate pair, in which case buf.Text() fails.
func (s *Service) GetTitleWide(buf *buffer.Wide, declaredBytes int) (int, error) {
	if buf == nil {
		return 0, errNilBuffer()
	}
	budget := declaredBytes / 2
	if err := checkDeclared(declaredBytes, budget, buf.Len(), "declaredBytes"); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	length := len(s.title)
	if budget <= 0 {
		return length, nil
	}
	n := min(budget-1, length)
	raw := buf.Raw()
	copy(raw, s.title[:n])
	raw[n] = 0
	return length, nil
}

func errNilBuffer() error {
	return errors.NewArgumentError("title buffer is nil").WithField("buffer")
}

// checkDeclared rejects a declared size that is negative or whose element
// count exceeds the buffer capacity.
func checkDeclared(declared, elements, capacity int, field string) error {
	if declared < 0 {
		return errors.NewArgumentError("declared size is negative").WithField(field).WithValue(declared)
	}
	if elements > capacity {
		return errors.NewArgumentError("declared size exceeds buffer").WithField(field).WithValue(declared)
	}
	return nil
}
