package console

import (
	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/conapi"
	"github.com/Iron-Ham/condrv/internal/config"
	"github.com/Iron-Ham/condrv/internal/logging"
	"github.com/Iron-Ham/condrv/internal/title"
)

// StdHandle pairs a standard handle id with its handle and mode.
type StdHandle struct {
	Name   string
	ID     int32
	Handle conapi.Handle
	Mode   uint32
}

// Info is a point-in-time view of the console state.
type Info struct {
	Handles        []StdHandle
	Cursor         conapi.CursorInfo
	InputCodepage  *codepage.Codepage
	OutputCodepage *codepage.Codepage
	Title          string
	TitleLength    int
}

var stdHandles = []struct {
	name string
	id   int32
}{
	{"STD_INPUT_HANDLE", conapi.StdInputHandle},
	{"STD_OUTPUT_HANDLE", conapi.StdOutputHandle},
	{"STD_ERROR_HANDLE", conapi.StdErrorHandle},
}

// Snapshot returns the current console state without logging calls.
func (c *Console) Snapshot() Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := Info{
		Cursor:         c.cursor,
		InputCodepage:  c.inputCP,
		OutputCodepage: c.outputCP,
		Title:          c.titles.Title(),
		TitleLength:    c.titles.Length(),
	}
	for _, sh := range stdHandles {
		h := stdHandle(sh.id)
		info.Handles = append(info.Handles, StdHandle{
			Name:   sh.name,
			ID:     sh.id,
			Handle: h,
			Mode:   c.modes[h],
		})
	}
	return info
}

// NewFromConfig creates a console initialised from cfg.Console. Extra options
// are applied after the configured ones.
func NewFromConfig(cfg *config.Config, logger *logging.Logger, opts ...Option) (*Console, error) {
	in, err := codepage.Lookup(cfg.Console.Codepage)
	if err != nil {
		return nil, err
	}
	out, err := codepage.Lookup(cfg.Console.OutputCodepage)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithInputCodepage(in),
		WithOutputCodepage(out),
		WithCursorInfo(conapi.CursorInfo{Size: cfg.Console.CursorSize, Visible: cfg.Console.CursorVisible}),
		WithTitleService(title.New(title.WithInitialTitle(cfg.Console.InitialTitle))),
		WithLogger(logger),
	}
	return New(append(base, opts...)...), nil
}
