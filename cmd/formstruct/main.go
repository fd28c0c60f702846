// Package main provides the CLI entry point for formstruct.
package main

import (
	"os"

	"github.com/ukaji3/formstruct-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
