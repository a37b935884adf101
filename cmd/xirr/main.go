package main

import (
	"os"

	"github.com/bobmcallan/xirr/cmd/xirr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
