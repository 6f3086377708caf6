package main

import (
	"os"

	"tableflip.dev/daybook/pkg/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := commands.New().Execute(); err != nil {
		return 1
	}
	return 0
}
