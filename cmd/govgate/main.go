package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/govgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrBlocked) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
