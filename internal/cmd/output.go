package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Iron-Ham/condrv/internal/config"
	"github.com/Iron-Ham/condrv/internal/util"
)

var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
)

// labelWidth aligns "label: value" rows.
const labelWidth = 22

// printer renders command output with styles bound to its writer.
type printer struct {
	w     io.Writer
	width int

	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	muted  lipgloss.Style
}

// terminalFd returns the descriptor of w when it is a terminal.
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// newPrinter creates a printer for w. color is an output.color mode.
func newPrinter(w io.Writer, color string) *printer {
	fd, isTerm := terminalFd(w)

	r := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		if !isTerm {
			r.SetColorProfile(termenv.Ascii)
		}
	}

	p := &printer{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(primaryColor),
		label:  r.NewStyle().Foreground(mutedColor),
		value:  r.NewStyle(),
		ok:     r.NewStyle().Foreground(successColor),
		warn:   r.NewStyle().Foreground(warningColor),
		bad:    r.NewStyle().Bold(true).Foreground(errorColor),
		muted:  r.NewStyle().Foreground(mutedColor),
	}
	if isTerm {
		if width, _, err := term.GetSize(fd); err == nil {
			p.width = width
		}
	}
	return p
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, util.TruncateANSI(s, p.width))
}

// Header prints a section title.
func (p *printer) Header(title string) {
	p.line(p.header.Render(title))
}

// Field prints an aligned "label: value" row.
func (p *printer) Field(label string, value any) {
	p.line("  " + util.PadRight(p.label.Render(label+":"), labelWidth) + p.value.Render(fmt.Sprint(value)))
}

// FieldStyled is Field with a pre-rendered value.
func (p *printer) FieldStyled(label, rendered string) {
	p.line("  " + util.PadRight(p.label.Render(label+":"), labelWidth) + rendered)
}

// Blank prints an empty line.
func (p *printer) Blank() {
	fmt.Fprintln(p.w)
}
