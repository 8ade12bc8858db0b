package main

import (
	"os"

	"github.com/sukab-restaurant/tableside/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
