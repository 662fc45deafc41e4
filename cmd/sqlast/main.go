// Package main is the entry point for the sqlast binary.
package main

import (
	"os"

	cli "sqlast/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
