package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/cmd/goes5/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
