package main

import (
	"os"

	"github.com/temirov/giberg/cmd/cli"
)

// main executes the giberg command-line application.
func main() {
	os.Exit(cli.Run(cli.NewApplication(), os.Stderr))
}
