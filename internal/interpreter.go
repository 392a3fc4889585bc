package internal

import (
	"fmt"
)

// IPrinter is the only surface the interpreter uses for `print` output,
// kept separate from the state's own diagnostic logging (see state.go) so
// tests can capture program output without touching the logger.
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
}

// Interpreter walks the resolved AST, evaluating expressions and executing
// statements against a mutable "current environment" pointer that every
// block execution saves and restores on all exit paths.
type Interpreter struct {
	globals *environment
	env     *environment
	state   *state
	printer IPrinter
}

func newInterpreter(st *state, printer IPrinter) *Interpreter {
	globals := newEnvironment(nil)
	interp := &Interpreter{globals: globals, env: globals, state: st, printer: printer}
	defineNatives(globals, printer)
	return interp
}

// interpret runs every top-level statement, recovering the single
// runtimeError panic that can unwind out of any of them back to the top
// level.
func (interp *Interpreter) interpret(statements []stmt) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, isRuntime := r.(*runtimeError); isRuntime {
				reportRuntime(rerr)
				ok = false
				return
			}
			panic(r)
		}
	}()

	for _, s := range statements {
		interp.execute(s)
	}
	return true
}

func (interp *Interpreter) execute(s stmt) signal {
	return s.accept(interp).(signal)
}

func (interp *Interpreter) evaluate(e expr) interface{} {
	return e.accept(interp)
}

// executeBlock runs statements against a child environment, restoring the
// interpreter's "current environment" pointer on every exit path: normal
// completion, an early signal, or a propagated runtime-error panic.
func (interp *Interpreter) executeBlock(statements []stmt, env *environment) signal {
	interp.state.log.Debug("entering block environment")
	previous := interp.env
	defer func() { interp.env = previous }()
	interp.env = env

	for _, s := range statements {
		if sig := interp.execute(s); sig.kind != sigNone {
			return sig
		}
	}
	return noSignal
}

// --- statements ---

func (interp *Interpreter) visitExpressionStmt(s *expressionStmt) interface{} {
	interp.evaluate(s.expression)
	return noSignal
}

func (interp *Interpreter) visitPrintStmt(s *printStmt) interface{} {
	value := interp.evaluate(s.expression)
	interp.printer.Println(stringify(value))
	return noSignal
}

func (interp *Interpreter) visitVarStmt(s *varStmt) interface{} {
	var value interface{} = undefined
	if s.initializer != nil {
		value = interp.evaluate(s.initializer)
	}
	interp.env.define(s.name.lexeme, value)
	return noSignal
}

func (interp *Interpreter) visitBlockStmt(s *blockStmt) interface{} {
	return interp.executeBlock(s.statements, newEnvironment(interp.env))
}

func (interp *Interpreter) visitIfStmt(s *ifStmt) interface{} {
	if isTruthy(interp.evaluate(s.condition)) {
		return interp.execute(s.thenBranch)
	}
	if s.elseBranch != nil {
		return interp.execute(s.elseBranch)
	}
	return noSignal
}

func (interp *Interpreter) visitWhileStmt(s *whileStmt) interface{} {
	for isTruthy(interp.evaluate(s.condition)) {
		sig := interp.execute(s.body)
		switch sig.kind {
		case sigBreak:
			return noSignal
		case sigContinue:
			continue
		case sigReturn:
			return sig
		}
	}
	return noSignal
}

// visitForStmt keeps "for" first-class rather than desugaring into "while",
// so that `continue` still runs the increment before re-testing the
// condition.
func (interp *Interpreter) visitForStmt(s *forStmt) interface{} {
	env := newEnvironment(interp.env)
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()

	if s.initializer != nil {
		interp.execute(s.initializer)
	}

	for s.condition == nil || isTruthy(interp.evaluate(s.condition)) {
		sig := interp.execute(s.body)
		switch sig.kind {
		case sigBreak:
			return noSignal
		case sigReturn:
			return sig
		}

		if s.increment != nil {
			interp.evaluate(s.increment)
		}
	}
	return noSignal
}

func (interp *Interpreter) visitBreakStmt(s *breakStmt) interface{} {
	return signal{kind: sigBreak}
}

func (interp *Interpreter) visitContinueStmt(s *continueStmt) interface{} {
	return signal{kind: sigContinue}
}

func (interp *Interpreter) visitFunctionStmt(s *functionStmt) interface{} {
	fn := newFunction(s, interp.env)
	interp.env.define(s.name.lexeme, fn)
	return noSignal
}

func (interp *Interpreter) visitReturnStmt(s *returnStmt) interface{} {
	var value interface{}
	if s.value != nil {
		value = interp.evaluate(s.value)
	}
	return signal{kind: sigReturn, value: value}
}

func (interp *Interpreter) visitClassStmt(s *classStmt) interface{} {
	var superclass *loxClass
	if s.superclass != nil {
		sc := interp.evaluate(s.superclass)
		var ok bool
		superclass, ok = sc.(*loxClass)
		if !ok {
			throwRuntime(s.superclass.name, errNotAClass)
		}
	}

	interp.env.define(s.name.lexeme, nil)

	enclosing := interp.env
	if superclass != nil {
		interp.env = newEnvironment(enclosing)
		interp.env.define("super", superclass)
	}

	methods, classMethods := interp.mergeTraits(s.uses)

	for _, m := range s.methods {
		fn := newFunction(m, interp.env)
		if m.kind == fkClassMethod {
			classMethods[m.name.lexeme] = fn
		} else {
			methods[m.name.lexeme] = fn
		}
	}

	class := &loxClass{name: s.name.lexeme, superclass: superclass, methods: methods, classMethods: classMethods}

	interp.env = enclosing
	interp.env.define(s.name.lexeme, class)

	return noSignal
}

func (interp *Interpreter) visitTraitStmt(s *traitStmt) interface{} {
	interp.env.define(s.name.lexeme, nil)

	methods, classMethods := interp.mergeTraits(s.uses)

	for _, m := range s.methods {
		fn := newFunction(m, interp.env)
		if m.kind == fkClassMethod {
			classMethods[m.name.lexeme] = fn
		} else {
			methods[m.name.lexeme] = fn
		}
	}

	trait := &loxTrait{name: s.name.lexeme, methods: methods, classMethods: classMethods}
	interp.env.define(s.name.lexeme, trait)

	return noSignal
}

// mergeTraits stages the methods of every used trait into fresh maps,
// erroring if two used traits both provide the same method name. Methods
// declared directly in the body overwrite the staged ones by the caller
// afterwards, so the class always wins over its traits.
func (interp *Interpreter) mergeTraits(uses []*variableExpr) (map[string]*loxFunction, map[string]*loxFunction) {
	methods := make(map[string]*loxFunction)
	classMethods := make(map[string]*loxFunction)

	for _, use := range uses {
		value := interp.evaluate(use)
		trait, ok := value.(*loxTrait)
		if !ok {
			throwRuntime(use.name, errNotATrait)
		}

		for name, fn := range trait.methods {
			if _, dup := methods[name]; dup {
				throwRuntime(use.name, errDuplicateTraitMethod)
			}
			methods[name] = fn
		}
		for name, fn := range trait.classMethods {
			if _, dup := classMethods[name]; dup {
				throwRuntime(use.name, errDuplicateTraitMethod)
			}
			classMethods[name] = fn
		}
	}

	return methods, classMethods
}

// --- expressions ---

func (interp *Interpreter) visitLiteralExpr(e *literalExpr) interface{} {
	return e.value
}

func (interp *Interpreter) visitGroupingExpr(e *groupingExpr) interface{} {
	return interp.evaluate(e.expression)
}

func (interp *Interpreter) visitUnaryExpr(e *unaryExpr) interface{} {
	right := interp.evaluate(e.right)

	switch e.operator.kind {
	case tkMinus:
		if !isNumber(right) {
			throwRuntime(e.operator, errOnlyNumbers)
		}
		return -right.(float64)
	case tkBang:
		return !isTruthy(right)
	}
	return nil
}

func (interp *Interpreter) visitBinaryExpr(e *binaryExpr) interface{} {
	if e.operator.kind == tkComma {
		interp.evaluate(e.left)
		return interp.evaluate(e.right)
	}

	left := interp.evaluate(e.left)
	right := interp.evaluate(e.right)

	switch e.operator.kind {
	case tkPlus:
		return interp.add(e.operator, left, right)
	case tkMinus:
		interp.checkNumbers(e.operator, left, right)
		return left.(float64) - right.(float64)
	case tkStar:
		interp.checkNumbers(e.operator, left, right)
		return left.(float64) * right.(float64)
	case tkSlash:
		interp.checkNumbers(e.operator, left, right)
		if right.(float64) == 0 {
			throwRuntime(e.operator, errDivisionByZero)
		}
		return left.(float64) / right.(float64)
	case tkGreater:
		return interp.compare(e.operator, left, right) > 0
	case tkGreaterEqual:
		return interp.compare(e.operator, left, right) >= 0
	case tkLess:
		return interp.compare(e.operator, left, right) < 0
	case tkLessEqual:
		return interp.compare(e.operator, left, right) <= 0
	case tkEqualEqual:
		return isEqual(left, right)
	case tkBangEqual:
		return !isEqual(left, right)
	}
	return nil
}

// add implements §4.5's overloaded "+": two numbers add; if either operand
// is a string the other is stringified and concatenated; anything else is
// a runtime error.
func (interp *Interpreter) add(operator *token, left, right interface{}) interface{} {
	if isNumber(left) && isNumber(right) {
		return left.(float64) + right.(float64)
	}
	if isString(left) || isString(right) {
		return stringify(left) + stringify(right)
	}
	throwRuntime(operator, errOnlyNumbersOrStrs)
	return nil
}

func (interp *Interpreter) checkNumbers(operator *token, values ...interface{}) {
	for _, v := range values {
		if !isNumber(v) {
			throwRuntime(operator, errOnlyNumbers)
		}
	}
}

// compare returns -1/0/1 for two numbers, two strings (lexicographic), or
// two booleans (false < true); cross-type comparison is a runtime error.
func (interp *Interpreter) compare(operator *token, left, right interface{}) int {
	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		if !ok {
			throwRuntime(operator, errOnlyNumbers)
		}
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		default:
			return 0
		}
	case string:
		r, ok := right.(string)
		if !ok {
			throwRuntime(operator, errOnlyNumbers)
		}
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		default:
			return 0
		}
	case bool:
		r, ok := right.(bool)
		if !ok {
			throwRuntime(operator, errOnlyNumbers)
		}
		if l == r {
			return 0
		}
		if !l && r {
			return -1
		}
		return 1
	default:
		throwRuntime(operator, errOnlyNumbers)
		return 0
	}
}

func (interp *Interpreter) visitTernaryExpr(e *ternaryExpr) interface{} {
	if isTruthy(interp.evaluate(e.cond)) {
		return interp.evaluate(e.then)
	}
	return interp.evaluate(e.elze)
}

func (interp *Interpreter) visitLogicalExpr(e *logicalExpr) interface{} {
	left := interp.evaluate(e.left)

	if e.operator.kind == tkOr {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}

	return interp.evaluate(e.right)
}

func (interp *Interpreter) visitVariableExpr(e *variableExpr) interface{} {
	return interp.lookupVariable(e.name, e.depth, e.isGlobal)
}

func (interp *Interpreter) lookupVariable(name *token, depth int, isGlobal bool) interface{} {
	if isGlobal {
		return interp.globals.getGlobal(name)
	}
	return interp.env.getAt(depth, name)
}

func (interp *Interpreter) visitAssignExpr(e *assignExpr) interface{} {
	value := interp.evaluate(e.value)
	if e.isGlobal {
		interp.globals.assignGlobal(e.name, value)
	} else {
		interp.env.assignAt(e.depth, e.name, value)
	}
	return value
}

func (interp *Interpreter) visitCallExpr(e *callExpr) interface{} {
	callee := interp.evaluate(e.callee)

	arguments := make([]interface{}, len(e.arguments))
	for i, a := range e.arguments {
		arguments[i] = interp.evaluate(a)
	}

	fn, ok := callee.(callable)
	if !ok {
		throwRuntime(e.paren, errNotCallable)
	}

	if fn.arity() != len(arguments) {
		throwRuntime(e.paren, fmt.Errorf("%w: expected %d, got %d", errWrongArity, fn.arity(), len(arguments)))
	}

	return fn.call(interp, arguments)
}

func (interp *Interpreter) visitGetExpr(e *getExpr) interface{} {
	object := interp.evaluate(e.object)

	switch obj := object.(type) {
	case *loxInstance:
		return obj.get(interp, e.name)
	case *loxClass:
		return obj.get(e.name)
	default:
		throwRuntime(e.name, errOnlyInstancesGet)
		return nil
	}
}

func (interp *Interpreter) visitSetExpr(e *setExpr) interface{} {
	object := interp.evaluate(e.object)

	instance, ok := object.(*loxInstance)
	if !ok {
		throwRuntime(e.name, errOnlyInstancesSet)
	}

	value := interp.evaluate(e.value)
	instance.set(e.name, value)
	return value
}

func (interp *Interpreter) visitThisExpr(e *thisExpr) interface{} {
	return interp.lookupVariable(e.keyword, e.depth, e.isGlobal)
}

func (interp *Interpreter) visitSuperExpr(e *superExpr) interface{} {
	distance := e.depth
	superclass := interp.env.getAt(distance, &token{lexeme: "super"}).(*loxClass)
	instance := interp.env.getAt(distance-1, &token{lexeme: "this"}).(*loxInstance)

	method := superclass.findMethod(e.method.lexeme)
	if method == nil {
		throwRuntime(e.method, errUndefinedProp)
	}
	return method.bind(instance)
}

func (interp *Interpreter) visitLambdaExpr(e *lambdaExpr) interface{} {
	return newLambda(e, interp.env)
}
