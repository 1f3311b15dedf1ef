package main

import (
	"os"

	"github.com/MikeBiancalana/datepick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
