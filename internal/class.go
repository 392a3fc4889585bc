package internal

import "fmt"

// loxClass is itself callable: invoking it builds a loxInstance and, if an
// "init" method exists, runs it against the new instance (spec §3).
type loxClass struct {
	name         string
	superclass   *loxClass
	methods      map[string]*loxFunction
	classMethods map[string]*loxFunction
}

func (c *loxClass) findMethod(name string) *loxFunction {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) findClassMethod(name string) *loxFunction {
	if m, ok := c.classMethods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findClassMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(interp *Interpreter, arguments []interface{}) interface{} {
	instance := &loxInstance{class: c, fields: make(map[string]interface{})}
	if init := c.findMethod("init"); init != nil {
		init.bind(instance).call(interp, arguments)
	}
	return instance
}

// get exposes class methods on the class object itself, so a class behaves
// like any other value under property access (spec "class methods").
func (c *loxClass) get(tok *token) interface{} {
	if m := c.findClassMethod(tok.lexeme); m != nil {
		return m.bindClass(c)
	}
	throwRuntime(tok, errUndefinedProp)
	return nil
}

func (c *loxClass) String() string {
	return fmt.Sprintf("<class %s>", c.name)
}

// loxInstance is a class instance: fields take priority over methods, and a
// getter method is invoked immediately rather than returned bound.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func (i *loxInstance) get(interp *Interpreter, tok *token) interface{} {
	if v, ok := i.fields[tok.lexeme]; ok {
		return v
	}

	if method := i.class.findMethod(tok.lexeme); method != nil {
		bound := method.bind(i)
		if bound.isGetter {
			return bound.call(interp, nil)
		}
		return bound
	}

	throwRuntime(tok, errUndefinedProp)
	return nil
}

func (i *loxInstance) set(tok *token, value interface{}) {
	i.fields[tok.lexeme] = value
}

func (i *loxInstance) String() string {
	return fmt.Sprintf("<instance %s>", i.class.name)
}

// loxTrait is never callable or instantiable; it only exists to have its
// methods copied into a class or another trait at definition time (spec §3
// "LoxTrait", invariant 4 — merges are by value, so later (nonexistent)
// edits can't retroactively change a consumer).
type loxTrait struct {
	name         string
	methods      map[string]*loxFunction
	classMethods map[string]*loxFunction
}

func (t *loxTrait) String() string {
	return fmt.Sprintf("<trait %s>", t.name)
}
