package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"

	"loxwalk/internal"
)

// stdPrinter adapts fmt.Println to the interpreter's IPrinter interface,
// the same thin wrapper the teacher's own cmd/grotsky/main.go uses to keep
// `print` output decoupled from everything else the driver writes.
type stdPrinter struct{}

func (stdPrinter) Println(a ...interface{}) (int, error) {
	return fmt.Println(a...)
}

func main() {
	debug := flag.Bool("debug", false, "enable verbose resolver/interpreter logging")
	flag.Parse()

	args := flag.Args()

	switch len(args) {
	case 0:
		os.Exit(runPrompt(*debug))
	case 1:
		os.Exit(runFile(args[0], *debug))
	default:
		fmt.Fprintln(os.Stderr, "Usage: loxwalk [path/to/source.lox]")
		os.Exit(64)
	}
}

func runFile(path string, debug bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open file '%s' (%v).\n", path, err)
		return 1
	}
	return internal.RunSourceWithPrinter(string(source), stdPrinter{}, debug)
}

// runPrompt is a line-at-a-time REPL: each line runs through a fresh
// scan/parse/resolve pass but shares the interpreter's globals across
// lines, via Session, so earlier declarations stay visible (spec §6).
func runPrompt(debug bool) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	session := internal.NewSession(stdPrinter{}, debug)

	for {
		input, err := line.Prompt(color.Cyan("> "))
		if err != nil { // io.EOF or Ctrl-C/Ctrl-D
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		session.Run(input)
	}
	return 0
}
