package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/condrv/internal/buffer"
	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/errors"
)

const (
	defaultAnsiSize = 256
	defaultWideSize = 512
)

// readbackOptions are the getter sizes shared by title subcommands.
type readbackOptions struct {
	ansiSize int
	wideSize int
}

func (o *readbackOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.ansiSize, "ansi-size", defaultAnsiSize, "declared capacity in characters passed to GetConsoleTitleA")
	cmd.Flags().IntVar(&o.wideSize, "wide-size", defaultWideSize, "declared capacity in bytes passed to GetConsoleTitleW")
}

func (o *readbackOptions) validate() error {
	if o.ansiSize < 0 {
		return errors.NewArgumentError("--ansi-size must be non-negative").WithField("ansi-size").WithValue(o.ansiSize)
	}
	if o.wideSize < 0 {
		return errors.NewArgumentError("--wide-size must be non-negative").WithField("wide-size").WithValue(o.wideSize)
	}
	return nil
}

func newTitleCmd(a *app) *cobra.Command {
	titleCmd := &cobra.Command{
		Use:   "title",
		Short: "Exercise the console title calls",
	}

	var probeOpts readbackOptions
	var wide bool
	probeCmd := &cobra.Command{
		Use:   "probe <text>",
		Short: "Set the title and read it back through both getters",
		Long: `Set the console title through SetConsoleTitleA (default) or
SetConsoleTitleW (--wide), then read it back with GetConsoleTitleA and
GetConsoleTitleW using the declared sizes given.

  condrv title probe QUITEALONGTITLE --ansi-size 8 --wide-size 16

GetConsoleTitleA rejects the read and returns 0 when the title does not fit.
GetConsoleTitleW copies what fits and always returns the full length.

A title starting with a dash must follow "--":

  condrv title probe --wide -- "-{𐩠}-"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := probeOpts.validate(); err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			return runTitleProbe(a, args[0], wide, probeOpts)
		},
	}
	probeOpts.bind(probeCmd)
	probeCmd.Flags().BoolVar(&wide, "wide", false, "set the title through SetConsoleTitleW")

	var getOpts readbackOptions
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Read the configured initial title through both getters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getOpts.validate(); err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			return runTitleReadback(a, getOpts)
		},
	}
	getOpts.bind(getCmd)

	titleCmd.AddCommand(probeCmd, getCmd)
	return titleCmd
}

func runTitleProbe(a *app, text string, wide bool, opts readbackOptions) error {
	con := a.console
	p := a.out

	p.Header("Title probe")
	var (
		call string
		err  error
	)
	if wide {
		call = "SetConsoleTitleW"
		_, err = con.SetConsoleTitleW(buffer.WideFromText(text))
	} else {
		call = "SetConsoleTitleA"
		cp := con.Titles().Codepage()
		if !cp.Representable(text) {
			p.FieldStyled("note", p.warn.Render("text is not representable in "+cp.String()+", unmappable characters become '?'"))
		}
		_, err = con.SetConsoleTitleA(buffer.AnsiFromText(text, buffer.WithCodepage(cp)))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", call, err)
	}
	p.Field("set via", call)
	p.Blank()

	return runTitleReadback(a, opts)
}

func runTitleReadback(a *app, opts readbackOptions) error {
	con := a.console
	p := a.out
	titles := con.Titles()

	p.Header("Readback")
	p.Field("title", strconv.Quote(titles.Title()))
	p.Field("length", fmt.Sprintf("%d units", titles.Length()))
	p.Field("code page", titles.Codepage())
	p.Blank()

	abuf, err := buffer.NewAnsi(max(opts.ansiSize, 1), buffer.WithCodepage(titles.Codepage()))
	if err != nil {
		return err
	}
	n, err := con.GetConsoleTitleA(abuf, opts.ansiSize)
	if err != nil {
		return fmt.Errorf("GetConsoleTitleA: %w", err)
	}
	p.Header(fmt.Sprintf("GetConsoleTitleA(%d)", opts.ansiSize))
	p.FieldStyled("returned", returnStyle(p, n, n > 0 || titles.Length() == 0))
	p.Field("text", strconv.Quote(abuf.Text()))
	p.Field("raw", abuf.ReprHead(abuf.TextLen()+1))
	p.Blank()

	wbuf, err := buffer.NewWide(max(opts.wideSize/2, 1))
	if err != nil {
		return err
	}
	n, err = con.GetConsoleTitleW(wbuf, opts.wideSize)
	if err != nil {
		return fmt.Errorf("GetConsoleTitleW: %w", err)
	}
	p.Header(fmt.Sprintf("GetConsoleTitleW(%d)", opts.wideSize))
	p.FieldStyled("returned", returnStyle(p, n, true))
	p.Field("copied", fmt.Sprintf("%d units", wbuf.TextLen()))
	if text, err := wbuf.Text(); err != nil {
		p.FieldStyled("text", p.bad.Render(err.Error()))
	} else {
		p.Field("text", strconv.Quote(text))
	}
	p.Field("raw", wbuf.ReprHead(wbuf.TextLen()+1))
	return nil
}

func returnStyle(p *printer, n int, ok bool) string {
	if ok {
		return p.ok.Render(strconv.Itoa(n))
	}
	return p.bad.Render(strconv.Itoa(n)) + " " + p.muted.Render("(rejected: title does not fit)")
}

// lookupCodepage resolves a --codepage flag value, 0 meaning fallback.
func lookupCodepage(id uint32, fallback uint32) (*codepage.Codepage, error) {
	if id == 0 {
		id = fallback
	}
	return codepage.Lookup(id)
}
