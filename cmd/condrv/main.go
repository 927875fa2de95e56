// Command condrv drives a simulated console and exercises its title protocol.
package main

import (
	"os"

	"github.com/Iron-Ham/condrv/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
