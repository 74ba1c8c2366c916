package main

import (
	"os"

	"stocksim/cmd/stocksim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
