package main

import (
	"os"

	"github.com/funvibe/funseal/pkg/cli"
)

func main() {
	os.Exit(cli.Run())
}
