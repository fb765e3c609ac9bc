// main executable.
package main

import (
	"os"

	"github.com/bluenviron/pngme/internal/core"
)

func main() {
	os.Exit(core.Run(os.Args[1:]))
}
