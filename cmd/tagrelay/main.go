package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/tagrelay/cmd/tagrelay/cmd"
)

func main() {
	err := cmd.Execute()
	memguard.Purge()
	if err != nil {
		os.Exit(1)
	}
}
