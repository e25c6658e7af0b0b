package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/sops-pre-commit/cmd"
)

func main() {
	if err := cmd.CheckCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
