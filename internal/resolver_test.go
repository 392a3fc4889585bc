package internal

import "testing"

func resolveOK(t *testing.T, source string) ([]stmt, *state) {
	t.Helper()
	st := newState(source, false)
	tokens := newLexer(source, st).scan()
	statements := newParser(tokens, st).parse()
	if st.hadStaticError() {
		t.Fatalf("parsing %q: unexpected errors: %v", source, st.errors)
	}
	newResolver(st).resolveProgram(statements)
	return statements, st
}

func resolveErr(t *testing.T, source string) *state {
	t.Helper()
	st := newState(source, false)
	tokens := newLexer(source, st).scan()
	statements := newParser(tokens, st).parse()
	if st.hadStaticError() {
		t.Fatalf("parsing %q: unexpected errors: %v", source, st.errors)
	}
	newResolver(st).resolveProgram(statements)
	if !st.hadStaticError() {
		t.Fatalf("resolving %q: expected an error, got none", source)
	}
	return st
}

func TestResolveLocalVariableDepth(t *testing.T) {
	statements, _ := resolveOK(t, `
		var a = 1;
		{
			var b = 2;
			print a + b;
		}
	`)
	block := statements[1].(*blockStmt)
	printS := block.statements[1].(*printStmt)
	bin := printS.expression.(*binaryExpr)

	aRef := bin.left.(*variableExpr)
	if !aRef.isGlobal {
		t.Errorf("'a' should resolve as global, got depth=%d isGlobal=%v", aRef.depth, aRef.isGlobal)
	}

	bRef := bin.right.(*variableExpr)
	if bRef.isGlobal || bRef.depth != 0 {
		t.Errorf("'b' should resolve at depth 0 in its own block, got depth=%d isGlobal=%v", bRef.depth, bRef.isGlobal)
	}
}

func TestResolveReadOwnInitializerIsError(t *testing.T) {
	resolveErr(t, `{ var a = a; }`)
}

func TestResolveDuplicateDeclarationInSameScopeIsError(t *testing.T) {
	resolveErr(t, `{ var a = 1; var a = 2; }`)
}

func TestResolveUnusedLocalIsError(t *testing.T) {
	resolveErr(t, `fun f() { var unused = 1; }`)
}

func TestResolveParameterIsExemptFromUnusedCheck(t *testing.T) {
	resolveOK(t, `fun f(unused) { print "ok"; }`)
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	resolveErr(t, `return 1;`)
}

func TestResolveReturnValueInInitializerIsError(t *testing.T) {
	resolveErr(t, `class C { init() { return 1; } }`)
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	resolveErr(t, `print this;`)
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	resolveErr(t, `class C { m() { super.m(); } }`)
}

func TestResolveSelfInheritanceIsError(t *testing.T) {
	resolveErr(t, `class C < C {}`)
}

func TestResolveBreakInsideLoopIsFine(t *testing.T) {
	resolveOK(t, `while (true) { break; }`)
}

func TestResolveClassMethodSeesThisBinding(t *testing.T) {
	resolveOK(t, `
		class C {
			class make() { return this; }
		}
	`)
}
