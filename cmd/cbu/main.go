package main

import (
	"os"

	"github.com/temirov/giberg/cmd/cli"
)

// main uploads or deletes repositories on the target provider.
func main() {
	os.Exit(cli.Run(cli.NewUploaderApplication(), os.Stderr))
}
