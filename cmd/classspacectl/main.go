// Command classspacectl is a thin wrapper around cli.NewRootCommand.
package main

import (
	"fmt"
	"os"

	"github.com/openmodule/classspace/cli"
	"github.com/openmodule/classspace/registry"
)

func main() {
	reg := registry.New(nil)
	if err := cli.NewRootCommand(reg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
