package main

import (
	"os"

	"github.com/rogersnm/opbatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
