package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"
)

// errKind distinguishes the three error families the spec calls out; all
// three share the same reporting surface but runtime errors unwind the
// interpreter instead of only being collected.
type errKind int

const (
	errScan errKind = iota
	errParse
	errResolve
	errRuntime
)

type reportedError struct {
	kind errKind
	err  error
	line int
	tok  *token
}

// state is the run-scoped accumulator shared by the lexer, parser, resolver
// and interpreter for one invocation: one source string, one error list.
// Only static (scan/parse/resolve) errors are collected in that list;
// runtime errors unwind via panic (see runtimeError) and are printed by
// reportRuntime.
type state struct {
	source string
	errors []reportedError

	log *logrus.Entry
}

func newState(source string, debug bool) *state {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return &state{source: source, log: logger.WithField("component", "lox")}
}

func (s *state) scanErr(err error, line int) {
	s.errors = append(s.errors, reportedError{kind: errScan, err: err, line: line})
}

func (s *state) parseErr(err error, tok *token) {
	s.errors = append(s.errors, reportedError{kind: errParse, err: err, line: tok.line, tok: tok})
}

func (s *state) resolveErr(err error, tok *token) {
	s.errors = append(s.errors, reportedError{kind: errResolve, err: err, line: tok.line, tok: tok})
}

// hadStaticError reports whether scan/parse/resolve collected any problem;
// a true result must suppress the next pipeline stage.
func (s *state) hadStaticError() bool {
	for _, e := range s.errors {
		if e.kind != errRuntime {
			return true
		}
	}
	return false
}

// printErrors renders every collected static diagnostic to stderr in the
// "[line N] Error<where>: message" format the spec requires, colorized via
// gommon the way the CLI renders everything else it writes to the terminal.
func (s *state) printErrors() {
	for _, e := range s.errors {
		where := ""
		if e.tok != nil && e.tok.kind == tkEOF {
			where = " at end"
		} else if e.tok != nil {
			where = fmt.Sprintf(" at '%s'", e.tok.lexeme)
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n",
			color.Red(fmt.Sprintf("[line %d] Error%s", e.line, where)),
			e.err.Error())
	}
}

// runtimeError carries the offending token for line attribution and is the
// only error type propagated via panic/recover. Control-flow signals never
// use this mechanism (see signal in function.go).
type runtimeError struct {
	tok *token
	err error
}

func (r *runtimeError) Error() string {
	return r.err.Error()
}

func throwRuntime(tok *token, err error) {
	panic(&runtimeError{tok: tok, err: err})
}

func reportRuntime(err *runtimeError) {
	line := 0
	if err.tok != nil {
		line = err.tok.line
	}
	fmt.Fprintf(os.Stderr, "%s\n%s\n", err.err.Error(), color.Yellow(fmt.Sprintf("[line %d]", line)))
}

// Scan/parse errors.
var (
	errIllegalChar          = errors.New("Illegal character")
	errUnterminatedString   = errors.New("Unterminated string")
	errUnterminatedComment  = errors.New("Unterminated block comment")
	errUnclosedParen        = errors.New("Expect ')' after expression")
	errExpectedRightBrace   = errors.New("Expect '}'")
	errExpectedLeftBrace    = errors.New("Expect '{'")
	errExpectedSemicolon    = errors.New("Expect ';'")
	errExpectedIdentifier   = errors.New("Expect identifier")
	errExpectedPropName     = errors.New("Expect property name after '.'")
	errExpectedParen        = errors.New("Expect '(' ")
	errExpectedColon        = errors.New("Expect ':' in ternary expression")
	errInvalidAssignTarget  = errors.New("Invalid assignment target")
	errTooManyArgs          = errors.New("Can't have more than 255 arguments")
	errTooManyParams        = errors.New("Can't have more than 255 parameters")
	errExpectedSuperDot     = errors.New("Expect '.' after 'super'")
	errExpectedSuperMethod  = errors.New("Expect superclass method name")
	errMissingLeftOperand   = errors.New("Missing left-hand operand")
	errExpectedClassName    = errors.New("Expect class name")
	errExpectedTraitName    = errors.New("Expect trait name")
	errExpectedMethodName   = errors.New("Expect method name")

	errAlreadyDeclared     = errors.New("Already a variable with this name in this scope")
	errReadOwnInitializer  = errors.New("Can't read local variable in its own initializer")
	errReturnOutsideFn     = errors.New("Can't return from top-level code")
	errReturnValueInInit   = errors.New("Can't return a value from an initializer")
	errThisOutsideClass    = errors.New("Can't use 'this' outside of a class")
	errSuperOutsideSubclass = errors.New("Can't use 'super' outside of a class with a superclass")
	errBreakOutsideLoop    = errors.New("Can't use 'break' outside of a loop")
	errContinueOutsideLoop = errors.New("Can't use 'continue' outside of a loop")
	errSelfInheritance     = errors.New("A class can't inherit from itself")
	errUnusedVariable      = errors.New("Local variable declared but never used")

	errUndefinedVar      = errors.New("Undefined variable")
	errUninitializedVar  = errors.New("Variable has not been initialized")
	errOnlyNumbers       = errors.New("Operands must be numbers")
	errOnlyNumbersOrStrs = errors.New("Operands must be two numbers or two strings")
	errDivisionByZero    = errors.New("Division by zero")
	errNotCallable       = errors.New("Can only call functions and classes")
	errWrongArity        = errors.New("Wrong number of arguments")
	errUndefinedProp     = errors.New("Undefined property")
	errOnlyInstancesGet  = errors.New("Only instances have properties")
	errOnlyInstancesSet  = errors.New("Only instances have fields")
	errNotAClass         = errors.New("Superclass must be a class")
	errNotATrait         = errors.New("Can only use traits")
	errDuplicateTraitMethod = errors.New("Trait method name conflicts with another used trait")
)
