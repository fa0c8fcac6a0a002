// Package main provides the CLI for the delivery food ordering demo.
package main

import (
	"os"

	"github.com/leapstack-labs/delivery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
