package main

import (
	"os"

	"github.com/ogtechminds/orgchart/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
