package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/shuttle/internal/cmd"
	"github.com/Iron-Ham/shuttle/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shuttle: %v\n", err)
		if errors.IsUsage(err) {
			os.Exit(cmd.ExitUsage)
		}
		os.Exit(cmd.ExitRuntime)
	}
}
