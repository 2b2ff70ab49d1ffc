package main

import (
	"os"

	"github.com/jszinai/switch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
