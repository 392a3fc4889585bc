package internal

import "testing"

func scanOK(t *testing.T, source string) []token {
	t.Helper()
	st := newState(source, false)
	tokens := newLexer(source, st).scan()
	if st.hadStaticError() {
		t.Fatalf("scanning %q: unexpected errors: %v", source, st.errors)
	}
	return tokens
}

func kinds(tokens []token) []tokenType {
	out := make([]tokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens := scanOK(t, "(){},.-+;*?:! != = == < <= > >=/")
	want := []tokenType{
		tkLeftParen, tkRightParen, tkLeftBrace, tkRightBrace, tkComma, tkDot,
		tkMinus, tkPlus, tkSemicolon, tkStar, tkQuestion, tkColon,
		tkBang, tkBangEqual, tkEqual, tkEqualEqual, tkLess, tkLessEqual,
		tkGreater, tkGreaterEqual, tkSlash, tkEOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanLineComment(t *testing.T) {
	tokens := scanOK(t, "var a = 1; // trailing comment\nvar b = 2;")
	if len(tokens) == 0 || tokens[len(tokens)-1].kind != tkEOF {
		t.Fatalf("expected a valid token stream, got %v", tokens)
	}
	for _, tok := range tokens {
		if tok.kind == tkIdentifier && tok.lexeme == "trailing" {
			t.Fatalf("line comment was not skipped: %v", tokens)
		}
	}
}

func TestScanNestedBlockComment(t *testing.T) {
	tokens := scanOK(t, "/* outer /* inner */ still outer */ var a = 1;")
	foundVar := false
	for _, tok := range tokens {
		if tok.kind == tkVar {
			foundVar = true
		}
		if tok.kind == tkIdentifier && (tok.lexeme == "outer" || tok.lexeme == "inner" || tok.lexeme == "still") {
			t.Fatalf("block comment body leaked a token: %v", tok)
		}
	}
	if !foundVar {
		t.Fatalf("expected the statement after the comment to scan, got %v", tokens)
	}
}

func TestScanUnterminatedBlockCommentIsError(t *testing.T) {
	st := newState("/* never closed", false)
	newLexer("/* never closed", st).scan()
	if !st.hadStaticError() {
		t.Fatalf("expected an unterminated-comment error")
	}
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	st := newState(`"never closed`, false)
	newLexer(`"never closed`, st).scan()
	if !st.hadStaticError() {
		t.Fatalf("expected an unterminated-string error")
	}
}

func TestScanNumberLiteral(t *testing.T) {
	tokens := scanOK(t, "3.14")
	if len(tokens) != 2 || tokens[0].kind != tkNumber {
		t.Fatalf("got %v", tokens)
	}
	if tokens[0].literal.(float64) != 3.14 {
		t.Errorf("got %v, want 3.14", tokens[0].literal)
	}
}

func TestScanStringLiteral(t *testing.T) {
	tokens := scanOK(t, `"hello world"`)
	if len(tokens) != 2 || tokens[0].kind != tkString {
		t.Fatalf("got %v", tokens)
	}
	if tokens[0].literal.(string) != "hello world" {
		t.Errorf("got %q, want %q", tokens[0].literal, "hello world")
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanOK(t, "class trait use break continue fun myVar")
	want := []tokenType{tkClass, tkTrait, tkUse, tkBreak, tkContinue, tkFun, tkIdentifier, tkEOF}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanIllegalCharacterIsError(t *testing.T) {
	st := newState("var a = @;", false)
	newLexer("var a = @;", st).scan()
	if !st.hadStaticError() {
		t.Fatalf("expected an illegal-character error")
	}
}
