package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/condrv/internal/config"
	"github.com/Iron-Ham/condrv/internal/console"
	"github.com/Iron-Ham/condrv/internal/logging"
)

// app is the per-invocation state shared by subcommands. It is built on
// first use so that commands which don't need a console never load one.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	console *console.Console
	out     *printer
}

// setup loads configuration and creates the logger, console and printer.
func (a *app) setup(cmd *cobra.Command) error {
	if a.console != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLoggerWithRotation(cfg.Logging.Dir, cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		return err
	}

	con, err := console.NewFromConfig(cfg, logger.WithComponent("console"), console.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		logger.Close()
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.console = con
	a.out = newPrinter(cmd.OutOrStdout(), cfg.Output.Color)
	logger.WithComponent("cli").Debug("command started", "command", cmd.CommandPath())
	return nil
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	a.console = nil
	return err
}
