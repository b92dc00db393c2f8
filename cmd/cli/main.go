// Package main is the entry point for the tender-markup CLI.
package main

import (
	"os"

	"tender-markup/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
