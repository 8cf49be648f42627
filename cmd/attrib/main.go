package main

import (
	"os"

	_ "github.com/tliron/commonlog/simple"

	"github.com/garagon/attrib/cmd/attrib/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
