package main

import (
	"os"

	"github.com/jrsteele09/kvutil/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], &cli.Config{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exit:   os.Exit,
	}))
}
