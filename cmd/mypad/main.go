package main

import (
	"os"

	"mypad/cmd/mypad/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
