package main

import (
	"os"

	"github.com/rustyeddy/barscope/cmd/barscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
