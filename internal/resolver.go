package internal

// functionType tracks what kind of function body the resolver is currently
// inside, so return/this/super misuse can be flagged (spec §4.3).
type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftMethod
	ftClassMethod
	ftInitializer
)

// classType tracks the enclosing class context, similarly gating this/super.
type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
	ctTrait
)

type varSlot struct {
	defined bool
	used    bool
	isParam bool
	tok     *token
}

// resolver is a single pre-execution pass that assigns every variable
// reference its scope depth and flags misuse the interpreter must never
// have to check at run time (spec §4.3).
type resolver struct {
	state *state

	scopes []map[string]*varSlot

	currentFunction functionType
	currentClass    classType
	loopDepth       int
}

func newResolver(st *state) *resolver {
	return &resolver{state: st}
}

func (r *resolver) resolveProgram(statements []stmt) {
	r.resolveStmts(statements)
}

func (r *resolver) resolveStmts(statements []stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	s.accept(r)
}

func (r *resolver) resolveExpr(e expr) {
	e.accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]*varSlot{})
}

// endScope pops the innermost scope, flagging any local that was declared
// and defined but never read — except parameters and the synthetic
// this/super bindings, which the spec carves out explicitly.
func (r *resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	for name, slot := range scope {
		if slot.defined && !slot.used && name != "this" && name != "super" && !slot.isParam {
			r.state.resolveErr(errUnusedVariable, slot.tok)
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.lexeme]; ok {
		r.state.resolveErr(errAlreadyDeclared, name)
	}
	scope[name.lexeme] = &varSlot{tok: name}
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.lexeme] = &varSlot{defined: true, tok: name}
}

// declareParam behaves like declare+define but is exempt from the
// unused-variable check, per spec §4.3.
func (r *resolver) declareParam(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.lexeme]; ok {
		r.state.resolveErr(errAlreadyDeclared, name)
	}
	scope[name.lexeme] = &varSlot{defined: true, tok: name, isParam: true}
}

func (r *resolver) resolveLocal(name *token, markUsed func(depth int, isGlobal bool)) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if slot, ok := r.scopes[i][name.lexeme]; ok {
			slot.used = true
			depth := len(r.scopes) - 1 - i
			r.state.log.WithField("line", name.line).Debugf("resolved %q at depth %d", name.lexeme, depth)
			markUsed(depth, false)
			return
		}
	}
	r.state.log.WithField("line", name.line).Debugf("resolved %q as global", name.lexeme)
	markUsed(0, true)
}

func (r *resolver) resolveFunction(params []*token, body []stmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range params {
		r.declareParam(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- statement visitors ---

func (r *resolver) visitExpressionStmt(s *expressionStmt) interface{} {
	r.resolveExpr(s.expression)
	return nil
}

func (r *resolver) visitPrintStmt(s *printStmt) interface{} {
	r.resolveExpr(s.expression)
	return nil
}

func (r *resolver) visitVarStmt(s *varStmt) interface{} {
	r.declare(s.name)
	if s.initializer != nil {
		r.resolveExpr(s.initializer)
	}
	r.define(s.name)
	return nil
}

func (r *resolver) visitBlockStmt(s *blockStmt) interface{} {
	r.beginScope()
	r.resolveStmts(s.statements)
	r.endScope()
	return nil
}

func (r *resolver) visitIfStmt(s *ifStmt) interface{} {
	r.resolveExpr(s.condition)
	r.resolveStmt(s.thenBranch)
	if s.elseBranch != nil {
		r.resolveStmt(s.elseBranch)
	}
	return nil
}

func (r *resolver) visitWhileStmt(s *whileStmt) interface{} {
	r.resolveExpr(s.condition)
	r.loopDepth++
	r.resolveStmt(s.body)
	r.loopDepth--
	return nil
}

func (r *resolver) visitForStmt(s *forStmt) interface{} {
	r.beginScope()
	if s.initializer != nil {
		r.resolveStmt(s.initializer)
	}
	if s.condition != nil {
		r.resolveExpr(s.condition)
	}
	if s.increment != nil {
		r.resolveExpr(s.increment)
	}
	r.loopDepth++
	r.resolveStmt(s.body)
	r.loopDepth--
	r.endScope()
	return nil
}

func (r *resolver) visitBreakStmt(s *breakStmt) interface{} {
	if r.loopDepth == 0 {
		r.state.resolveErr(errBreakOutsideLoop, s.keyword)
	}
	return nil
}

func (r *resolver) visitContinueStmt(s *continueStmt) interface{} {
	if r.loopDepth == 0 {
		r.state.resolveErr(errContinueOutsideLoop, s.keyword)
	}
	return nil
}

func (r *resolver) visitFunctionStmt(s *functionStmt) interface{} {
	r.declare(s.name)
	r.define(s.name)

	ft := ftFunction
	switch s.kind {
	case fkMethod:
		ft = ftMethod
	case fkClassMethod:
		ft = ftClassMethod
	case fkInitializer:
		ft = ftInitializer
	}
	r.resolveFunction(s.params, s.body, ft)
	return nil
}

func (r *resolver) visitReturnStmt(s *returnStmt) interface{} {
	if r.currentFunction == ftNone {
		r.state.resolveErr(errReturnOutsideFn, s.keyword)
	}
	if s.value != nil {
		if r.currentFunction == ftInitializer {
			r.state.resolveErr(errReturnValueInInit, s.keyword)
		}
		r.resolveExpr(s.value)
	}
	return nil
}

func (r *resolver) visitClassStmt(s *classStmt) interface{} {
	enclosingClass := r.currentClass
	r.currentClass = ctClass

	r.declare(s.name)
	r.define(s.name)

	if s.superclass != nil {
		if s.superclass.name.lexeme == s.name.lexeme {
			r.state.resolveErr(errSelfInheritance, s.superclass.name)
		}
		r.currentClass = ctSubclass
		r.resolveExpr(s.superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = &varSlot{defined: true, used: true, tok: s.name}
	}

	for _, use := range s.uses {
		r.resolveExpr(use)
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &varSlot{defined: true, used: true, tok: s.name}

	for _, m := range s.methods {
		ft := ftMethod
		switch m.kind {
		case fkInitializer:
			ft = ftInitializer
		case fkClassMethod:
			ft = ftClassMethod
		case fkGetter:
			ft = ftMethod
		}
		r.resolveFunction(m.params, m.body, ft)
	}

	r.endScope()

	if s.superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *resolver) visitTraitStmt(s *traitStmt) interface{} {
	enclosingClass := r.currentClass
	r.currentClass = ctTrait

	r.declare(s.name)
	r.define(s.name)

	for _, use := range s.uses {
		r.resolveExpr(use)
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &varSlot{defined: true, used: true, tok: s.name}

	for _, m := range s.methods {
		ft := ftMethod
		if m.kind == fkClassMethod {
			ft = ftClassMethod
		}
		r.resolveFunction(m.params, m.body, ft)
	}

	r.endScope()

	r.currentClass = enclosingClass
	return nil
}

// --- expression visitors ---

func (r *resolver) visitLiteralExpr(e *literalExpr) interface{} { return nil }

func (r *resolver) visitGroupingExpr(e *groupingExpr) interface{} {
	r.resolveExpr(e.expression)
	return nil
}

func (r *resolver) visitUnaryExpr(e *unaryExpr) interface{} {
	r.resolveExpr(e.right)
	return nil
}

func (r *resolver) visitBinaryExpr(e *binaryExpr) interface{} {
	r.resolveExpr(e.left)
	r.resolveExpr(e.right)
	return nil
}

func (r *resolver) visitTernaryExpr(e *ternaryExpr) interface{} {
	r.resolveExpr(e.cond)
	r.resolveExpr(e.then)
	r.resolveExpr(e.elze)
	return nil
}

func (r *resolver) visitLogicalExpr(e *logicalExpr) interface{} {
	r.resolveExpr(e.left)
	r.resolveExpr(e.right)
	return nil
}

func (r *resolver) visitVariableExpr(e *variableExpr) interface{} {
	if len(r.scopes) != 0 {
		if slot, ok := r.scopes[len(r.scopes)-1][e.name.lexeme]; ok && !slot.defined {
			r.state.resolveErr(errReadOwnInitializer, e.name)
		}
	}
	r.resolveLocal(e.name, func(depth int, isGlobal bool) {
		e.depth = depth
		e.isGlobal = isGlobal
	})
	return nil
}

func (r *resolver) visitAssignExpr(e *assignExpr) interface{} {
	r.resolveExpr(e.value)
	r.resolveLocal(e.name, func(depth int, isGlobal bool) {
		e.depth = depth
		e.isGlobal = isGlobal
	})
	return nil
}

func (r *resolver) visitCallExpr(e *callExpr) interface{} {
	r.resolveExpr(e.callee)
	for _, a := range e.arguments {
		r.resolveExpr(a)
	}
	return nil
}

func (r *resolver) visitGetExpr(e *getExpr) interface{} {
	r.resolveExpr(e.object)
	return nil
}

func (r *resolver) visitSetExpr(e *setExpr) interface{} {
	r.resolveExpr(e.value)
	r.resolveExpr(e.object)
	return nil
}

func (r *resolver) visitThisExpr(e *thisExpr) interface{} {
	if r.currentClass == ctNone {
		r.state.resolveErr(errThisOutsideClass, e.keyword)
		return nil
	}
	r.resolveLocal(e.keyword, func(depth int, isGlobal bool) {
		e.depth = depth
		e.isGlobal = isGlobal
	})
	return nil
}

func (r *resolver) visitSuperExpr(e *superExpr) interface{} {
	if r.currentClass == ctNone {
		r.state.resolveErr(errSuperOutsideSubclass, e.keyword)
	} else if r.currentClass != ctSubclass {
		r.state.resolveErr(errSuperOutsideSubclass, e.keyword)
	}
	r.resolveLocal(e.keyword, func(depth int, isGlobal bool) {
		e.depth = depth
		e.isGlobal = isGlobal
	})
	return nil
}

func (r *resolver) visitLambdaExpr(e *lambdaExpr) interface{} {
	r.resolveFunction(e.params, e.body, ftFunction)
	return nil
}
