// Package main is the entry point for the sherlock CLI.
package main

import (
	"os"

	"github.com/dgallion1/sherlock/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
