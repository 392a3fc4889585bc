package internal

// expr is the sum type of every expression node. Resolution and evaluation
// both dispatch on it via the visitor below rather than simulating double
// dispatch with type switches scattered across the codebase.
type expr interface {
	accept(v exprVisitor) interface{}
}

type exprVisitor interface {
	visitLiteralExpr(e *literalExpr) interface{}
	visitGroupingExpr(e *groupingExpr) interface{}
	visitUnaryExpr(e *unaryExpr) interface{}
	visitBinaryExpr(e *binaryExpr) interface{}
	visitTernaryExpr(e *ternaryExpr) interface{}
	visitLogicalExpr(e *logicalExpr) interface{}
	visitVariableExpr(e *variableExpr) interface{}
	visitAssignExpr(e *assignExpr) interface{}
	visitCallExpr(e *callExpr) interface{}
	visitGetExpr(e *getExpr) interface{}
	visitSetExpr(e *setExpr) interface{}
	visitThisExpr(e *thisExpr) interface{}
	visitSuperExpr(e *superExpr) interface{}
	visitLambdaExpr(e *lambdaExpr) interface{}
}

// literalExpr wraps a compile-time constant: nil, bool, float64 or string.
type literalExpr struct {
	value interface{}
}

func (e *literalExpr) accept(v exprVisitor) interface{} { return v.visitLiteralExpr(e) }

type groupingExpr struct {
	expression expr
}

func (e *groupingExpr) accept(v exprVisitor) interface{} { return v.visitGroupingExpr(e) }

type unaryExpr struct {
	operator *token
	right    expr
}

func (e *unaryExpr) accept(v exprVisitor) interface{} { return v.visitUnaryExpr(e) }

type binaryExpr struct {
	left     expr
	operator *token
	right    expr
}

func (e *binaryExpr) accept(v exprVisitor) interface{} { return v.visitBinaryExpr(e) }

// ternaryExpr is "cond ? then : else"; only the taken branch is evaluated.
type ternaryExpr struct {
	cond  expr
	then  expr
	elze  expr
	qmark *token
}

func (e *ternaryExpr) accept(v exprVisitor) interface{} { return v.visitTernaryExpr(e) }

type logicalExpr struct {
	left     expr
	operator *token
	right    expr
}

func (e *logicalExpr) accept(v exprVisitor) interface{} { return v.visitLogicalExpr(e) }

// variableExpr reads an identifier. depth/isGlobal are filled in by the
// resolver; a pointer receiver gives every node the stable identity the
// spec's resolver-annotation invariant requires.
type variableExpr struct {
	name     *token
	depth    int
	isGlobal bool
}

func (e *variableExpr) accept(v exprVisitor) interface{} { return v.visitVariableExpr(e) }

type assignExpr struct {
	name     *token
	value    expr
	depth    int
	isGlobal bool
}

func (e *assignExpr) accept(v exprVisitor) interface{} { return v.visitAssignExpr(e) }

type callExpr struct {
	callee    expr
	paren     *token
	arguments []expr
}

func (e *callExpr) accept(v exprVisitor) interface{} { return v.visitCallExpr(e) }

type getExpr struct {
	object expr
	name   *token
}

func (e *getExpr) accept(v exprVisitor) interface{} { return v.visitGetExpr(e) }

type setExpr struct {
	object expr
	name   *token
	value  expr
}

func (e *setExpr) accept(v exprVisitor) interface{} { return v.visitSetExpr(e) }

type thisExpr struct {
	keyword  *token
	depth    int
	isGlobal bool
}

func (e *thisExpr) accept(v exprVisitor) interface{} { return v.visitThisExpr(e) }

type superExpr struct {
	keyword  *token
	method   *token
	depth    int
	isGlobal bool
}

func (e *superExpr) accept(v exprVisitor) interface{} { return v.visitSuperExpr(e) }

// lambdaExpr is the anonymous "fun(...) {...}" expression form; it shares
// the function statement's body/param shape but carries no name.
type lambdaExpr struct {
	keyword *token
	params  []*token
	body    []stmt
}

func (e *lambdaExpr) accept(v exprVisitor) interface{} { return v.visitLambdaExpr(e) }
