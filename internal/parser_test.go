package internal

import "testing"

func parseOK(t *testing.T, source string) []stmt {
	t.Helper()
	st := newState(source, false)
	tokens := newLexer(source, st).scan()
	statements := newParser(tokens, st).parse()
	if st.hadStaticError() {
		t.Fatalf("parsing %q: unexpected errors: %v", source, st.errors)
	}
	return statements
}

func parseErr(t *testing.T, source string) *state {
	t.Helper()
	st := newState(source, false)
	tokens := newLexer(source, st).scan()
	newParser(tokens, st).parse()
	if !st.hadStaticError() {
		t.Fatalf("parsing %q: expected an error, got none", source)
	}
	return st
}

func TestParseExpressionPrecedence(t *testing.T) {
	statements := parseOK(t, "1 + 2 * 3;")
	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(statements))
	}
	es, ok := statements[0].(*expressionStmt)
	if !ok {
		t.Fatalf("got %T, want *expressionStmt", statements[0])
	}
	bin, ok := es.expression.(*binaryExpr)
	if !ok || bin.operator.kind != tkPlus {
		t.Fatalf("got %#v, want a top-level '+'", es.expression)
	}
	right, ok := bin.right.(*binaryExpr)
	if !ok || right.operator.kind != tkStar {
		t.Fatalf("right operand should be the '*' subexpression, got %#v", bin.right)
	}
}

func TestParseTernary(t *testing.T) {
	statements := parseOK(t, `a ? "yes" : "no";`)
	es := statements[0].(*expressionStmt)
	if _, ok := es.expression.(*ternaryExpr); !ok {
		t.Fatalf("got %#v, want *ternaryExpr", es.expression)
	}
}

func TestParseCommaExpression(t *testing.T) {
	statements := parseOK(t, "1, 2, 3;")
	es := statements[0].(*expressionStmt)
	bin, ok := es.expression.(*binaryExpr)
	if !ok || bin.operator.kind != tkComma {
		t.Fatalf("got %#v, want a comma-joined binaryExpr", es.expression)
	}
}

func TestParseForLoopIsFirstClass(t *testing.T) {
	statements := parseOK(t, "for (var i = 0; i < 10; i = i + 1) print i;")
	if _, ok := statements[0].(*forStmt); !ok {
		t.Fatalf("got %T, want *forStmt (no desugaring to while)", statements[0])
	}
}

func TestParseClassWithSuperclassAndTraits(t *testing.T) {
	statements := parseOK(t, `
		class Dog < Animal {
			use Friendly, Loud;
			bark() { print "woof"; }
			class create() { return Dog(); }
			name { return "dog"; }
		}
	`)
	class, ok := statements[0].(*classStmt)
	if !ok {
		t.Fatalf("got %T, want *classStmt", statements[0])
	}
	if class.superclass == nil || class.superclass.name.lexeme != "Animal" {
		t.Fatalf("superclass not parsed: %#v", class.superclass)
	}
	if len(class.uses) != 2 {
		t.Fatalf("got %d uses, want 2", len(class.uses))
	}
	if len(class.methods) != 3 {
		t.Fatalf("got %d methods, want 3 (method, class method, getter)", len(class.methods))
	}
	kindsSeen := map[funcKind]bool{}
	for _, m := range class.methods {
		kindsSeen[m.kind] = true
	}
	if !kindsSeen[fkMethod] || !kindsSeen[fkClassMethod] || !kindsSeen[fkGetter] {
		t.Fatalf("expected a method, a class method and a getter, got %#v", kindsSeen)
	}
}

func TestParseTraitDeclaration(t *testing.T) {
	statements := parseOK(t, `trait Greeter { hello() { print "hi"; } }`)
	if _, ok := statements[0].(*traitStmt); !ok {
		t.Fatalf("got %T, want *traitStmt", statements[0])
	}
}

func TestParseBreakOutsideLoopIsError(t *testing.T) {
	parseErr(t, "break;")
}

func TestParseContinueOutsideLoopIsError(t *testing.T) {
	parseErr(t, "continue;")
}

func TestParseMissingLeftOperandIsErrorButRecovers(t *testing.T) {
	st := parseErr(t, "+ 1; print 2;")
	if len(st.errors) != 1 {
		t.Fatalf("got %d errors, want exactly 1 (parser should recover and keep going)", len(st.errors))
	}
}

func TestParseAnonymousFunction(t *testing.T) {
	statements := parseOK(t, `var f = fun (a, b) { return a + b; };`)
	v := statements[0].(*varStmt)
	if _, ok := v.initializer.(*lambdaExpr); !ok {
		t.Fatalf("got %#v, want *lambdaExpr", v.initializer)
	}
}

func TestParseInvalidAssignTargetIsError(t *testing.T) {
	parseErr(t, "1 = 2;")
}

func TestParseTooManyArgumentsIsError(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ", "
		}
		args += "1"
	}
	parseErr(t, "f("+args+");")
}
