package main

import (
	"os"

	"secureai/cmd/secureai/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
