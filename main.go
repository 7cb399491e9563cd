package main

import (
	"os"

	"github.com/robalobadob/hintle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
