package main

import (
	"os"

	"github.com/darkodi/alias-buddy/cmd/aliasbuddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
