// Command legalease runs the document pipeline as an HTTP server or on a
// single local file.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
