/*
Package repl implements the Read-Eval-Print Loop for the MiniScript
interpreter. The REPL provides an interactive environment where users
can:
- Enter MiniScript statements line by line
- See diagnostics for the line they just entered
- Navigate command history using arrow keys
- Receive colored feedback for different kinds of output

The REPL uses the readline library for enhanced line editing and
integrates with the lexer, parser, and evaluator to execute user input.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"miniscript/diag"
	"miniscript/eval"
	"miniscript/lexer"
	"miniscript/parser"
	"miniscript/std"
)

// Color definitions for REPL output.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive session. It encapsulates all the
// visual elements needed to run an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner string, version string, author string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to MiniScript!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: it reads one line at a time, lexes
// and parses it as a standalone program, and feeds the result to a
// single long-lived Evaluator so that variable and function
// definitions persist across lines — the session's "globals"
// environment is the evaluator's, shared for the whole run.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sink := diag.NewSinkTo(&redWriter{out: writer})
	evaluator := eval.New(sink, writer)
	std.Install(evaluator.Globals)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.executeLine(writer, line, sink, evaluator)
	}
}

// executeLine lexes, parses, and interprets one line of input. Unlike
// file execution mode, the REPL continues running after a diagnostic —
// the user can correct their mistake and try again on the next line.
func (r *Repl) executeLine(writer io.Writer, line string, sink *diag.Sink, evaluator *eval.Evaluator) {
	sink.Reset()

	tokens := lexer.New(line, "<repl>", sink).ScanTokens()
	if sink.HadError() {
		return
	}

	stmts := parser.New(tokens, "<repl>", sink).Parse()
	if sink.HadError() {
		return
	}

	evaluator.Interpret(stmts, "<repl>")
}

// redWriter renders every diagnostic line in red, distinguishing it
// from ordinary `print` output at a glance.
type redWriter struct {
	out io.Writer
}

func (w *redWriter) Write(p []byte) (int, error) {
	redColor.Fprint(w.out, string(p))
	return len(p), nil
}
