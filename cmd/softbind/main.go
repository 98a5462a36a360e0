package main

import (
	"os"

	"github.com/funvibe/softbind/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
