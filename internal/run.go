package internal

// Exit codes per spec §6 "CLI".
const (
	ExitOK      = 0
	ExitDataErr = 65
	ExitRuntime = 70
)

// Session is a REPL-friendly wrapper around an Interpreter: each call to
// Run shares the same global environment (so `var`/`fun`/`class` declared
// on one line are visible on the next) while errors reset no session state
// beyond the statements just parsed, matching the spec's "errors reset
// per-line state but preserve globals".
type Session struct {
	interp  *Interpreter
	printer IPrinter
	debug   bool
}

func NewSession(printer IPrinter, debug bool) *Session {
	st := newState("", debug)
	return &Session{interp: newInterpreter(st, printer), printer: printer, debug: debug}
}

// Run executes one chunk of source (a whole file, or one REPL line) through
// the full scan→parse→resolve→interpret pipeline, returning the CLI exit
// code the spec assigns to each outcome.
func (s *Session) Run(source string) int {
	st := newState(source, s.debug)
	s.interp.state = st

	tokens := newLexer(source, st).scan()
	if st.hadStaticError() {
		st.printErrors()
		return ExitDataErr
	}

	statements := newParser(tokens, st).parse()
	if st.hadStaticError() {
		st.printErrors()
		return ExitDataErr
	}

	newResolver(st).resolveProgram(statements)
	if st.hadStaticError() {
		st.printErrors()
		return ExitDataErr
	}

	if !s.interp.interpret(statements) {
		return ExitRuntime
	}
	return ExitOK
}

// RunSourceWithPrinter runs a single, self-contained program (one file) on
// a fresh session and returns its CLI exit code (ExitOK, ExitDataErr or
// ExitRuntime); this is
// the entry point the driver (cmd/loxwalk, out of spec scope) calls for
// "one argument: path to a source file".
func RunSourceWithPrinter(source string, printer IPrinter, debug bool) (exitCode int) {
	return NewSession(printer, debug).Run(source)
}
