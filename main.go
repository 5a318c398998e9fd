package main

import (
	"github.com/xkilldash9x/beacon/cmd"
)

// main is the entry point for the beacon CLI.
func main() {
	cmd.Execute()
}
