// Package cmd defines the miniscript root command: zero arguments
// starts an interactive REPL, one argument runs that file, and more
// than one is a usage error with a non-zero exit, dispatched through
// cobra rather than a raw len(os.Args) switch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"miniscript/diag"
	"miniscript/eval"
	"miniscript/lexer"
	"miniscript/parser"
	"miniscript/repl"
	"miniscript/std"
)

const (
	banner  = "MiniScript"
	version = "0.1.0"
	author  = "MiniScript contributors"
	line    = "----------------------------------------"
	license = "MIT"
	prompt  = "ms >>> "
)

var rootCmd = &cobra.Command{
	Use:     "miniscript [script]",
	Short:   "MiniScript interpreter",
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

// Execute runs the root command and returns its error, if any.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		session := repl.NewRepl(banner, version, author, line, license, prompt)
		session.Start(os.Stdin, os.Stdout)
		return nil
	}
	return runFile(args[0])
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open file: %s\n", path)
		return err
	}

	sink := diag.NewSink()
	tokens := lexer.New(string(src), path, sink).ScanTokens()
	if sink.HadError() {
		return fmt.Errorf("lexer errors in %s", path)
	}

	stmts := parser.New(tokens, path, sink).Parse()
	if sink.HadError() {
		return fmt.Errorf("parser errors in %s", path)
	}

	evaluator := eval.New(sink, os.Stdout)
	std.Install(evaluator.Globals)
	evaluator.Interpret(stmts, path)
	if sink.HadError() {
		return fmt.Errorf("runtime error in %s", path)
	}
	return nil
}
