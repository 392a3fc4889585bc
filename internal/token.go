package internal

// tokenType names every lexical category the scanner can produce.
type tokenType int

const (
	tkEOF tokenType = iota

	// Single-character punctuation.
	tkLeftParen
	tkRightParen
	tkLeftBrace
	tkRightBrace
	tkComma
	tkDot
	tkMinus
	tkPlus
	tkSemicolon
	tkSlash
	tkStar
	tkQuestion
	tkColon

	// One or two character operators.
	tkBang
	tkBangEqual
	tkEqual
	tkEqualEqual
	tkGreater
	tkGreaterEqual
	tkLess
	tkLessEqual

	// Literals.
	tkIdentifier
	tkString
	tkNumber

	// Keywords.
	tkAnd
	tkBreak
	tkClass
	tkContinue
	tkElse
	tkFalse
	tkFun
	tkFor
	tkIf
	tkNil
	tkOr
	tkPrint
	tkReturn
	tkSuper
	tkThis
	tkTrait
	tkTrue
	tkUse
	tkVar
	tkWhile
)

var keywords = map[string]tokenType{
	"and":      tkAnd,
	"break":    tkBreak,
	"class":    tkClass,
	"continue": tkContinue,
	"else":     tkElse,
	"false":    tkFalse,
	"fun":      tkFun,
	"for":      tkFor,
	"if":       tkIf,
	"nil":      tkNil,
	"or":       tkOr,
	"print":    tkPrint,
	"return":   tkReturn,
	"super":    tkSuper,
	"this":     tkThis,
	"trait":    tkTrait,
	"true":     tkTrue,
	"use":      tkUse,
	"var":      tkVar,
	"while":    tkWhile,
}

// token is a single lexeme produced by the scanner, carrying the source
// line it started on so downstream errors can point back at it.
type token struct {
	kind    tokenType
	lexeme  string
	literal interface{}
	line    int
}

func (t *token) String() string {
	return t.lexeme
}
