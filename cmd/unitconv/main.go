// Package main provides the unitconv command.
package main

import (
	"os"

	"github.com/leapstack-labs/unitconv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
