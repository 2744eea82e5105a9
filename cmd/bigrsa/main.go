// Package main is the entry point of the bigrsa command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/taurusgroup/bigrsa/cmd/bigrsa/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
