package main

import (
	"os"

	"github.com/go-drift/vlist/cmd/vlist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
