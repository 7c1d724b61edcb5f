// Command miniscript is the CLI collaborator for the MiniScript
// interpreter. Argument handling is delegated to cmd.Execute, a small
// cobra root command mirroring the command-package split used by the
// go-dws interpreter in the retrieval pack (cmd/dwscript/cmd).
package main

import (
	"os"

	"miniscript/cmd/miniscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
