// Command motion inspects, plots and previews animation presets.
package main

import (
	"os"

	"github.com/go-drift/motion/cmd/motion/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		cmd.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
