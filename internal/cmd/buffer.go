package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/condrv/internal/buffer"
	"github.com/Iron-Ham/condrv/internal/errors"
)

func newBufferCmd(a *app) *cobra.Command {
	bufferCmd := &cobra.Command{
		Use:   "buffer",
		Short: "Inspect fixed text buffers",
		Long: `Build an ANSI or wide fixed buffer from text and show its capacity,
text length, decoded text and raw contents.

With --capacity the text is cut to fit capacity-1 elements plus the
terminator, which for wide buffers may split a surrogate pair.

Text starting with a dash must follow "--":

  condrv buffer wide --capacity 4 -- "-{𐩠}-"`,
	}

	var ansiCapacity int
	var cpID uint32
	ansiCmd := &cobra.Command{
		Use:   "ansi <text>",
		Short: "Show the ANSI buffer for text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			cp, err := lookupCodepage(cpID, a.console.GetConsoleCP())
			if err != nil {
				return err
			}

			var b *buffer.Ansi
			if ansiCapacity == 0 {
				b = buffer.AnsiFromText(args[0], buffer.WithCodepage(cp))
			} else {
				if b, err = buffer.NewAnsi(ansiCapacity, buffer.WithCodepage(cp)); err != nil {
					return err
				}
				encoded := cp.Encode(args[0])
				copy(b.Raw()[:b.Len()-1], encoded)
			}
			return showAnsi(a.out, b)
		},
	}
	ansiCmd.Flags().IntVar(&ansiCapacity, "capacity", 0, "buffer capacity in bytes (default: fit the text)")
	ansiCmd.Flags().Uint32Var(&cpID, "codepage", 0, "code page id (default: console.codepage)")

	var wideCapacity int
	wideCmd := &cobra.Command{
		Use:   "wide <text>",
		Short: "Show the wide buffer for text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}

			var b *buffer.Wide
			if wideCapacity == 0 {
				b = buffer.WideFromText(args[0])
			} else {
				var err error
				if b, err = buffer.NewWide(wideCapacity); err != nil {
					return err
				}
				copy(b.Raw()[:b.Len()-1], buffer.EncodeUTF16(args[0]))
			}
			return showWide(a.out, b)
		},
	}
	wideCmd.Flags().IntVar(&wideCapacity, "capacity", 0, "buffer capacity in code units (default: fit the text)")

	bufferCmd.AddCommand(ansiCmd, wideCmd)
	return bufferCmd
}

func showAnsi(p *printer, b *buffer.Ansi) error {
	p.Header("ANSI buffer")
	p.Field("code page", b.Codepage())
	p.Field("capacity", fmt.Sprintf("%d bytes", b.Len()))
	p.Field("text length", fmt.Sprintf("%d bytes", b.TextLen()))
	p.Field("text", strconv.Quote(b.Text()))
	p.Field("repr", b.Repr())
	p.Blank()

	p.Header("Bytes")
	for i := 0; i < b.Len(); i++ {
		c, err := b.At(i)
		if err != nil {
			return err
		}
		var note string
		if c == 0 {
			note = p.muted.Render("NUL")
		} else {
			note = strconv.Quote(b.Codepage().Decode([]byte{c}))
		}
		p.line(fmt.Sprintf("  [%3d] 0x%02x  %s", i, c, note))
	}
	return nil
}

func showWide(p *printer, b *buffer.Wide) error {
	p.Header("Wide buffer")
	p.Field("capacity", fmt.Sprintf("%d units (%d bytes)", b.Len(), b.Len()*2))
	p.Field("text length", fmt.Sprintf("%d units", b.TextLen()))
	text, err := b.Text()
	switch {
	case errors.IsDecodeError(err):
		p.FieldStyled("text", p.bad.Render(err.Error()))
	case err != nil:
		return err
	default:
		p.Field("text", strconv.Quote(text))
	}
	p.Field("repr", b.Repr())
	p.Blank()

	p.Header("Units")
	for i := 0; i < b.Len(); i++ {
		u, err := b.At(i)
		if err != nil {
			return err
		}
		p.line(fmt.Sprintf("  [%3d] 0x%04x  %s", i, u, describeUnit(p, u)))
	}
	return nil
}

func describeUnit(p *printer, u uint16) string {
	switch {
	case u == 0:
		return p.muted.Render("NUL")
	case u >= 0xD800 && u <= 0xDBFF:
		return p.warn.Render("high surrogate")
	case u >= 0xDC00 && u <= 0xDFFF:
		return p.warn.Render("low surrogate")
	default:
		return strconv.Quote(string(rune(u)))
	}
}
