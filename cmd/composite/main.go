// Command composite runs and explores composite commands from the terminal.
package main

import (
	"os"

	"github.com/Iron-Ham/composite/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
