//go:build !linux

package interrupt

import (
	"os"
)

func hideControlCharacters(*os.File) func() {
	return func() {}
}
