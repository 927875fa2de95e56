package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/condrv/internal/cmd/config"
	"github.com/Iron-Ham/condrv/internal/config"
	"github.com/Iron-Ham/condrv/internal/errors"
)

// newRootCmd builds the condrv command tree. The returned app must be
// closed once the command has run.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "condrv",
		Short: "Console title protocol driver",
		Long: `condrv drives an in-memory console and exercises its title protocol.

It sets the console title through the ANSI or wide path and reads it back
through both size-bounded getters, showing exactly what each call copies
and returns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/condrv/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-dir", "", "directory for condrv.log (default: stderr)")
	flags.String("color", "", "colorize output: auto, always, never")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))
	_ = viper.BindPFlag("output.color", flags.Lookup("color"))

	rootCmd.AddCommand(newTitleCmd(a))
	rootCmd.AddCommand(newBufferCmd(a))
	rootCmd.AddCommand(newConsoleCmd(a))
	configcmd.Register(rootCmd)

	return rootCmd, a
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	rootCmd, a := newRootCmd()
	err := rootCmd.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints err labelled by its severity. For user-facing errors
// only the typed error is printed, without the call context wrapped around it.
func reportError(w io.Writer, err error) {
	msg := err.Error()
	var consoleErr errors.ConsoleError
	if errors.IsUserFacing(err) && errors.As(err, &consoleErr) {
		msg = consoleErr.Error()
	}

	label := "Error"
	if errors.GetSeverity(err) == errors.SeverityWarning {
		label = "Warning"
	}
	fmt.Fprintf(w, "%s: %s\n", label, msg)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CONDRV")
	// e.g., CONDRV_CONSOLE_CODEPAGE for console.codepage
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
