package main

import (
	"os"

	"github.com/web-inv/sitebuilder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
