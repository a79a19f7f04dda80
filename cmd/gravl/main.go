package main

import (
	"os"

	"github.com/kovacq/gravl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
