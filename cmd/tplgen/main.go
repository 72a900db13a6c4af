// Package main provides the tplgen CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/tplgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
