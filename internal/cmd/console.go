package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newConsoleCmd(a *app) *cobra.Command {
	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Inspect the simulated console",
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show standard handles, modes, cursor, code pages and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			runConsoleInfo(a)
			return nil
		},
	}

	consoleCmd.AddCommand(infoCmd)
	return consoleCmd
}

func runConsoleInfo(a *app) {
	p := a.out
	info := a.console.Snapshot()

	p.Header("Standard handles")
	for _, h := range info.Handles {
		p.Field(h.Name, fmt.Sprintf("%-4d -> %s  mode=0x%04x", h.ID, h.Handle, h.Mode))
	}
	p.Blank()

	p.Header("Cursor")
	p.Field("size", fmt.Sprintf("%d%%", info.Cursor.Size))
	p.Field("visible", info.Cursor.Visible)
	p.Blank()

	p.Header("Code pages")
	p.Field("input", info.InputCodepage)
	p.Field("output", info.OutputCodepage)
	p.Blank()

	p.Header("Title")
	p.Field("text", strconv.Quote(info.Title))
	p.Field("length", fmt.Sprintf("%d units", info.TitleLength))
}
