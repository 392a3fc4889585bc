package internal

import "fmt"

// signalKind distinguishes the non-error control-flow outcomes a statement
// can produce: an explicit result threaded through every statement
// evaluator, so break/continue/return never share the panic/recover channel
// used for genuine runtime errors.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

type signal struct {
	kind  signalKind
	value interface{}
}

var noSignal = signal{kind: sigNone}

// callable is anything that can appear on the left of a call expression:
// a user function, a native function, or a class (constructing an instance).
type callable interface {
	arity() int
	call(interp *Interpreter, arguments []interface{}) interface{}
	String() string
}

// loxFunction is a user-defined function or method value: its declaration,
// the environment it closed over, and the flags that change how its
// return value is computed.
type loxFunction struct {
	name          string
	params        []*token
	body          []stmt
	closure       *environment
	isInitializer bool
	isGetter      bool
}

func newFunction(decl *functionStmt, closure *environment) *loxFunction {
	name := ""
	if decl.name != nil {
		name = decl.name.lexeme
	}
	return &loxFunction{
		name:          name,
		params:        decl.params,
		body:          decl.body,
		closure:       closure,
		isInitializer: decl.kind == fkInitializer,
		isGetter:      decl.kind == fkGetter,
	}
}

func newLambda(decl *lambdaExpr, closure *environment) *loxFunction {
	return &loxFunction{params: decl.params, body: decl.body, closure: closure}
}

func (f *loxFunction) arity() int {
	return len(f.params)
}

func (f *loxFunction) call(interp *Interpreter, arguments []interface{}) interface{} {
	env := newEnvironment(f.closure)
	for i, p := range f.params {
		env.define(p.lexeme, arguments[i])
	}

	result := interp.executeBlock(f.body, env)

	if f.isInitializer {
		return f.closure.getAt(0, &token{lexeme: "this"})
	}

	if result.kind == sigReturn {
		return result.value
	}
	return nil
}

// bind produces a new loxFunction whose closure additionally defines `this`,
// so a method looked up off an instance carries its receiver with it (spec
// "Bound method"). `super` is not defined here: it is already in the
// method's closure chain from class definition.
func (f *loxFunction) bind(instance *loxInstance) *loxFunction {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	bound := *f
	bound.closure = env
	return &bound
}

// bindClass is bind's counterpart for a class method: `this` inside a class
// method is the class object itself, not an instance.
func (f *loxFunction) bindClass(class *loxClass) *loxFunction {
	env := newEnvironment(f.closure)
	env.define("this", class)
	bound := *f
	bound.closure = env
	return &bound
}

func (f *loxFunction) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

// nativeFunction wraps a Go closure as a callable, for the natives in
// natives.go (clock, input, randint).
type nativeFunction struct {
	name    string
	arityN  int
	fn      func(interp *Interpreter, arguments []interface{}) interface{}
}

func (n *nativeFunction) arity() int { return n.arityN }

func (n *nativeFunction) call(interp *Interpreter, arguments []interface{}) interface{} {
	return n.fn(interp, arguments)
}

func (n *nativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}
