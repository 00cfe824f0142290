package main

import (
	"os"

	"github.com/Makepad-fr/taskmaster/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
