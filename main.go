package main

import (
	"os"

	"github.com/abhisek/laban/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
