package main

import (
	"os"

	"github.com/temirov/giberg/cmd/cli"
)

// main downloads repositories from the source provider.
func main() {
	os.Exit(cli.Run(cli.NewDownloaderApplication(), os.Stderr))
}
