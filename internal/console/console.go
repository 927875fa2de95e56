// Package console simulates the console API surface the title protocol is
// reached through: standard handles, modes, cursor, code pages, WriteConsole
// and the Get/SetConsoleTitle pass-throughs.
//
// All state lives in memory. Text written with WriteConsoleA or
// WriteConsoleW is decoded and copied to an io.Writer.
package console

import (
	"io"
	"sync"
	"unicode/utf16"

	"github.com/Iron-Ham/condrv/internal/buffer"
	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/conapi"
	"github.com/Iron-Ham/condrv/internal/errors"
	"github.com/Iron-Ham/condrv/internal/logging"
	"github.com/Iron-Ham/condrv/internal/title"
)

// Input mode flags.
const (
	EnableProcessedInput uint32 = 0x0001
	EnableLineInput      uint32 = 0x0002
	EnableEchoInput      uint32 = 0x0004
	EnableWindowInput    uint32 = 0x0008
)

// Output mode flags.
const (
	EnableProcessedOutput           uint32 = 0x0001
	EnableWrapAtEOLOutput           uint32 = 0x0002
	EnableVirtualTerminalProcessing uint32 = 0x0004
)

// Default modes of a freshly created console.
const (
	DefaultInputMode  = EnableProcessedInput | EnableLineInput | EnableEchoInput
	DefaultOutputMode = EnableProcessedOutput | EnableWrapAtEOLOutput
)

// handleBase is offset by the standard handle id, so -10 maps to 110.
const handleBase = 100

// Console is an in-memory console. It is safe for concurrent use.
type Console struct {
	mu       sync.Mutex
	titles   *title.Service
	out      io.Writer
	logger   *logging.Logger
	inputCP  *codepage.Codepage
	outputCP *codepage.Codepage
	modes    map[conapi.Handle]uint32
	cursor   conapi.CursorInfo
}

// Option configures a Console.
type Option func(*Console)

// WithTitleService shares an existing title service instead of creating a
// private one. Without WithInputCodepage the console adopts the service's
// code page; with it, the service is retargeted to the input code page.
func WithTitleService(s *title.Service) Option {
	return func(c *Console) {
		if s != nil {
			c.titles = s
		}
	}
}

// WithOutput sets where WriteConsole text goes. The default discards it.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLogger sets the logger every call is recorded to at DEBUG.
func WithLogger(l *logging.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInputCodepage sets the input code page, which ANSI title calls
// transcode through.
func WithInputCodepage(cp *codepage.Codepage) Option {
	return func(c *Console) {
		if cp != nil {
			c.inputCP = cp
		}
	}
}

// WithOutputCodepage sets the code page WriteConsoleA decodes with.
func WithOutputCodepage(cp *codepage.Codepage) Option {
	return func(c *Console) {
		if cp != nil {
			c.outputCP = cp
		}
	}
}

// WithCursorInfo sets the initial cursor. An invalid size is ignored.
func WithCursorInfo(info conapi.CursorInfo) Option {
	return func(c *Console) {
		if info.Valid() {
			c.cursor = info
		}
	}
}

// New creates a console with default modes, a 25% visible cursor and
// Latin-1 code pages.
func New(opts ...Option) *Console {
	c := &Console{
		out:      io.Discard,
		logger:   logging.NopLogger(),
		outputCP: codepage.MustLookup(codepage.Default),
		cursor:   conapi.CursorInfo{Size: 25, Visible: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.titles == nil {
		c.titles = title.New()
	}
	if c.inputCP == nil {
		c.inputCP = c.titles.Codepage()
	} else {
		_ = c.titles.SetCodepage(c.inputCP)
	}

	c.modes = map[conapi.Handle]uint32{
		stdHandle(conapi.StdInputHandle):  DefaultInputMode,
		stdHandle(conapi.StdOutputHandle): DefaultOutputMode,
		stdHandle(conapi.StdErrorHandle):  DefaultOutputMode,
	}
	return c
}

func stdHandle(n int32) conapi.Handle {
	return conapi.Handle(handleBase - int64(n))
}

// Titles returns the title service backing the title calls.
func (c *Console) Titles() *title.Service { return c.titles }

func (c *Console) logCall(call string, h conapi.Handle, result any, err error) {
	args := []any{"call", call}
	if h != 0 {
		args = append(args, "handle", h.String())
	}
	args = append(args, "result", result)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	c.logger.Debug("console call", args...)
}

// GetStdHandle maps a standard handle id to its handle. Ids other than
// StdInputHandle, StdOutputHandle and StdErrorHandle yield InvalidHandle.
func (c *Console) GetStdHandle(n int32) conapi.Handle {
	h := conapi.InvalidHandle
	switch n {
	case conapi.StdInputHandle, conapi.StdOutputHandle, conapi.StdErrorHandle:
		h = stdHandle(n)
	}
	c.logCall("GetStdHandle", 0, h.String(), nil)
	return h
}

// checkHandle must be called with c.mu held.
func (c *Console) checkHandle(call string, h conapi.Handle) error {
	if _, ok := c.modes[h]; !ok {
		return errors.NewHandleError(call, int64(h))
	}
	return nil
}

func (c *Console) checkOutputHandle(call string, h conapi.Handle) error {
	if h != stdHandle(conapi.StdOutputHandle) && h != stdHandle(conapi.StdErrorHandle) {
		return errors.NewHandleError(call, int64(h))
	}
	return nil
}

// GetConsoleMode stores the mode of h in mode.
func (c *Console) GetConsoleMode(h conapi.Handle, mode *conapi.DwordRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkHandle("GetConsoleMode", h)
	if err == nil && mode == nil {
		err = errors.NewArgumentError("mode reference is nil").WithField("mode")
	}
	if err != nil {
		c.logCall("GetConsoleMode", h, false, err)
		return err
	}
	mode.SetDword(c.modes[h])
	c.logCall("GetConsoleMode", h, mode.Dword(), nil)
	return nil
}

// SetConsoleMode replaces the mode of h.
func (c *Console) SetConsoleMode(h conapi.Handle, mode uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkHandle("SetConsoleMode", h); err != nil {
		c.logCall("SetConsoleMode", h, false, err)
		return err
	}
	c.modes[h] = mode
	c.logCall("SetConsoleMode", h, mode, nil)
	return nil
}

// GetConsoleCursorInfo stores the cursor of the screen buffer behind h.
func (c *Console) GetConsoleCursorInfo(h conapi.Handle, info *conapi.CursorInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkOutputHandle("GetConsoleCursorInfo", h)
	if err == nil && info == nil {
		err = errors.NewArgumentError("cursor info is nil").WithField("info")
	}
	if err != nil {
		c.logCall("GetConsoleCursorInfo", h, false, err)
		return err
	}
	*info = c.cursor
	c.logCall("GetConsoleCursorInfo", h, *info, nil)
	return nil
}

// SetConsoleCursorInfo replaces the cursor. Size must be within 1..100.
func (c *Console) SetConsoleCursorInfo(h conapi.Handle, info conapi.CursorInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkOutputHandle("SetConsoleCursorInfo", h)
	if err == nil && !info.Valid() {
		err = errors.NewArgumentError("cursor size must be between 1 and 100").
			WithField("size").
			WithValue(info.Size)
	}
	if err != nil {
		c.logCall("SetConsoleCursorInfo", h, false, err)
		return err
	}
	c.cursor = info
	c.logCall("SetConsoleCursorInfo", h, info, nil)
	return nil
}

// GetConsoleCP returns the input code page id.
func (c *Console) GetConsoleCP() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logCall("GetConsoleCP", 0, c.inputCP.ID(), nil)
	return c.inputCP.ID()
}

// GetConsoleOutputCP returns the output code page id.
func (c *Console) GetConsoleOutputCP() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logCall("GetConsoleOutputCP", 0, c.outputCP.ID(), nil)
	return c.outputCP.ID()
}

// SetConsoleCP changes the input code page. Subsequent ANSI title calls
// transcode through it.
func (c *Console) SetConsoleCP(id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp, err := codepage.Lookup(id)
	if err != nil {
		c.logCall("SetConsoleCP", 0, false, err)
		return err
	}
	if err := c.titles.SetCodepage(cp); err != nil {
		return err
	}
	c.inputCP = cp
	c.logCall("SetConsoleCP", 0, id, nil)
	return nil
}

// SetConsoleOutputCP changes the code page WriteConsoleA decodes with.
func (c *Console) SetConsoleOutputCP(id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp, err := codepage.Lookup(id)
	if err != nil {
		c.logCall("SetConsoleOutputCP", 0, false, err)
		return err
	}
	c.outputCP = cp
	c.logCall("SetConsoleOutputCP", 0, id, nil)
	return nil
}

// WriteConsoleA writes the first n bytes of buf, decoded with the output code
// page, and stores n in written. written may be nil.
func (c *Console) WriteConsoleA(h conapi.Handle, buf *buffer.Ansi, n int, written *conapi.DwordRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkOutputHandle("WriteConsoleA", h)
	if err == nil && buf == nil {
		err = errNilWriteBuffer()
	}
	if err == nil {
		err = checkWriteLength(n, buf.Len())
	}
	if err != nil {
		c.logCall("WriteConsoleA", h, false, err)
		return err
	}
	return c.write("WriteConsoleA", h, c.outputCP.Decode(buf.Raw()[:n]), n, written)
}

// WriteConsoleW writes the first n code units of buf and stores n in
// written. Unpaired surrogates are written as U+FFFD. written may be nil.
func (c *Console) WriteConsoleW(h conapi.Handle, buf *buffer.Wide, n int, written *conapi.DwordRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkOutputHandle("WriteConsoleW", h)
	if err == nil && buf == nil {
		err = errNilWriteBuffer()
	}
	if err == nil {
		err = checkWriteLength(n, buf.Len())
	}
	if err != nil {
		c.logCall("WriteConsoleW", h, false, err)
		return err
	}
	return c.write("WriteConsoleW", h, string(utf16.Decode(buf.Raw()[:n])), n, written)
}

func errNilWriteBuffer() error {
	return errors.NewArgumentError("write buffer is nil").WithField("buffer")
}

func checkWriteLength(n, capacity int) error {
	if n < 0 || n > capacity {
		return errors.NewArgumentError("write length outside buffer").WithField("n").WithValue(n)
	}
	return nil
}

// write must be called with c.mu held.
func (c *Console) write(call string, h conapi.Handle, text string, n int, written *conapi.DwordRef) error {
	if _, err := io.WriteString(c.out, text); err != nil {
		err = errors.Wrapf(err, "%s", call)
		c.logCall(call, h, false, err)
		return err
	}
	if written != nil {
		written.SetDword(uint32(n))
	}
	c.logCall(call, h, n, nil)
	return nil
}

// GetConsoleTitleA reads the title into an ANSI buffer. See
// title.Service.GetTitleAnsi.
func (c *Console) GetConsoleTitleA(buf *buffer.Ansi, declared int) (int, error) {
	n, err := c.titles.GetTitleAnsi(buf, declared)
	c.logCall("GetConsoleTitleA", 0, n, err)
	if err == nil && n == 0 {
		if required := len(c.titles.Codepage().Encode(c.titles.Title())) + 1; required > declared {
			c.logger.Debug("title read rejected", "call", "GetConsoleTitleA", "declared", declared, "required", required)
		}
	}
	return n, err
}

// GetConsoleTitleW reads the title into a wide buffer. See
// title.Service.GetTitleWide.
func (c *Console) GetConsoleTitleW(buf *buffer.Wide, declaredBytes int) (int, error) {
	n, err := c.titles.GetTitleWide(buf, declaredBytes)
	c.logCall("GetConsoleTitleW", 0, n, err)
	return n, err
}

// SetConsoleTitleA sets the title from an ANSI buffer in the input code page.
func (c *Console) SetConsoleTitleA(buf *buffer.Ansi) (bool, error) {
	ok, err := c.titles.SetTitleAnsi(buf)
	c.logCall("SetConsoleTitleA", 0, ok, err)
	return ok, err
}

// SetConsoleTitleW sets the title from a wide buffer.
func (c *Console) SetConsoleTitleW(buf *buffer.Wide) (bool, error) {
	ok, err := c.titles.SetTitleWide(buf)
	c.logCall("SetConsoleTitleW", 0, ok, err)
	return ok, err
}
