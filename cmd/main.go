package main

import (
	"os"

	"strongbox.dev/cmd/cli"
)

func main() {
	err := cli.Run()
	if err != nil {
		os.Exit(1)
	}
}
