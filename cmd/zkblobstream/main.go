package main

import (
	"os"

	"github.com/celestiaorg/zkblobstream/cmd/zkblobstream/commands"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
