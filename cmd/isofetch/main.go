// Package main is the isofetch binary entry point.
package main

import (
	"os"

	"github.com/starfield-labs/isofetch/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
