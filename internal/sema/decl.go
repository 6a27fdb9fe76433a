package sema

import (
	"github.com/golang/glog"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// decl analyzes a declaration and returns its annotated replacement.
func (c *Checker) decl(d syntax.Decl) syntax.Decl {
	switch d := d.(type) {
	case *syntax.VarDecl:
		return c.varDecl(d)
	case *syntax.TypeDecl:
		return c.typeDecl(d)
	case *syntax.RoutineDecl:
		return c.routineDecl(d)
	}
	c.errorf(d.Pos(), "unexpected declaration %T", d)
	return nil
}

// varDecl declares a variable. Without an explicit type the variable takes
// the type of its initializer; with both, the initializer must be
// assignable to the declared type, which is kept.
func (c *Checker) varDecl(d *syntax.VarDecl) *syntax.VarDecl {
	out := new(syntax.VarDecl)
	*out = *d

	var typ types.Type
	if d.Type != nil {
		out.Type, typ = c.typExpr(d.Type, "")
	}
	if d.Value != nil {
		var x operand
		out.Value = c.expr(&x, d.Value)
		if typ == nil {
			typ = x.typ
		} else {
			c.assignment(&x, typ, "variable declaration")
		}
	}
	if typ == nil {
		// the parser guarantees a type or an initializer
		c.errorf(d.Pos(), "missing type or initializer in declaration of %s", d.Name.Value)
	}

	obj := types.NewVar(d.Name.Pos(), d.Name.Value, typ)
	c.declare(d.Name, obj)
	if glog.V(5) {
		glog.V(5).Infof("%s: var %s : %s", d.Pos(), d.Name.Value, typ)
	}
	return out
}

// typeDecl binds a name to a resolved type.
func (c *Checker) typeDecl(d *syntax.TypeDecl) *syntax.TypeDecl {
	out := new(syntax.TypeDecl)
	*out = *d

	var typ types.Type
	out.Type, typ = c.typExpr(d.Type, d.Name.Value)
	obj := types.NewTypeName(d.Name.Pos(), d.Name.Value, typ)
	c.declare(d.Name, obj)
	if glog.V(5) {
		glog.V(5).Infof("%s: type %s is %s", d.Pos(), d.Name.Value, typ)
	}
	return out
}

// routineDecl declares a routine and analyzes its body.
//
// A routine may be declared once without a body and completed later by a
// declaration with an identical signature. Any other repeated name in the
// global scope is an error.
func (c *Checker) routineDecl(d *syntax.RoutineDecl) *syntax.RoutineDecl {
	out := new(syntax.RoutineDecl)
	*out = *d
	out.Params = make([]*syntax.Field, len(d.Params))

	var params []*types.Var
	for i, f := range d.Params {
		nf := new(syntax.Field)
		*nf = *f
		var typ types.Type
		nf.Type, typ = c.typExpr(f.Type, "")
		out.Params[i] = nf
		params = append(params, types.NewParam(f.Name.Pos(), f.Name.Value, typ))
	}
	var result types.Type
	if d.Result != nil {
		out.Result, result = c.typExpr(d.Result, "")
	}
	sig := types.NewSignature(params, result)

	if _, ok := d.Body.(*syntax.ExprBody); ok && result == nil {
		c.errorf(d.Pos(), "routine %s has an expression body but no result type", d.Name.Value)
	}

	obj := types.NewRoutine(d.Name.Pos(), d.Name.Value, sig, d.Body != nil)
	global := c.stack.Global()
	switch prev := global.Lookup(d.Name.Value).(type) {
	case nil:
		c.declare(d.Name, obj)
	case *types.Routine:
		if prev.Defined() || d.Body == nil {
			c.errorf(d.Name.Pos(), "%s redeclared in this block", d.Name.Value)
		}
		if !types.Identical(prev.Signature(), sig) {
			c.errorf(d.Name.Pos(), "routine %s does not match its forward declaration: have %s, want %s",
				d.Name.Value, sig, prev.Signature())
		}
		global.Replace(obj)
		c.recordDef(d.Name, obj)
	default:
		c.errorf(d.Name.Pos(), "%s redeclared in this block", d.Name.Value)
	}

	if glog.V(5) {
		glog.V(5).Infof("%s: routine %s %s (body: %v)", d.Pos(), d.Name.Value, sig, d.Body != nil)
	}

	if d.Body == nil {
		return out
	}

	c.routine = obj
	defer func() { c.routine = nil }()

	c.openScope(d, "routine "+d.Name.Value)
	for i, f := range d.Params {
		c.declare(f.Name, params[i])
	}

	switch body := d.Body.(type) {
	case *syntax.Block:
		b, returns := c.block(body, "body")
		if result != nil && !returns {
			c.errorf(body.Close, "missing return statement: not every path of routine %s returns a value", d.Name.Value)
		}
		out.Body = b

	case *syntax.ExprBody:
		var x operand
		eb := new(syntax.ExprBody)
		*eb = *body
		eb.X = c.expr(&x, body.X)
		c.assignment(&x, result, "routine result")
		out.Body = eb
	}

	c.closeScope()
	return out
}
