// Package main implements the checkmerge CLI.
// It generates per-function memory dependence report artifacts for Go
// packages.
//
// Usage:
//
//	checkmerge analyze ./...
package main

import (
	"os"

	"github.com/checkmerge/checkmerge/cmd/checkmerge/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`checkmerge version {{.Version}}
`)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
