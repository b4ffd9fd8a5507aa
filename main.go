package main

import (
	"os"

	"github.com/cheerioskun/sgrep/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
