// Ochre - An octree-based colour quantizer
//
// Ochre extracts colour palettes from images and quantizes images down to a
// bounded number of representative colours.
package main

import (
	"os"

	"github.com/jmylchreest/ochre/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
