package main

import (
	"os"

	"github.com/foodrescue/rescue-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
