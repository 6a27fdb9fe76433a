package sema

import (
	"fmt"
	"go/constant"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// typExpr resolves a syntactic type and returns it together with the
// annotated replacement of e. declName is the name of the type
// declaration whose right-hand side e is, or "" for an inline type; it
// becomes the declaring name of a new array or record type.
func (c *Checker) typExpr(e syntax.TypeExpr, declName string) (syntax.TypeExpr, types.Type) {
	switch e := e.(type) {
	case *syntax.PrimitiveType:
		return e, types.Universe.Lookup(e.Kind.String()).Type()

	case *syntax.NamedType:
		obj := c.lookup(e.Name)
		tn, ok := obj.(*types.TypeName)
		if !ok {
			c.errorf(e.Name.Pos(), "%s is not a type", e.Name.Value)
		}
		return e, tn.Type()

	case *syntax.ArrayType:
		return c.arrayType(e, declName)

	case *syntax.RecordType:
		return c.recordType(e, declName)
	}

	c.errorf(e.Pos(), "%T is not a type", e)
	return nil, nil
}

// arrayType resolves array [Len] Elem. A present length must fold to a
// positive integer constant; an absent one makes the array unbound.
func (c *Checker) arrayType(e *syntax.ArrayType, declName string) (*syntax.ArrayType, *types.Array) {
	out := new(syntax.ArrayType)
	*out = *e

	length := int64(types.Unbound)
	if e.Len != nil {
		var x operand
		out.Len = c.expr(&x, e.Len)
		if !x.isConst() {
			c.errorf(e.Len.Pos(), "array length must be a constant expression")
		}
		if !types.IsIntegerType(x.typ) {
			c.errorf(e.Len.Pos(), "array length must be an integer, got %s", x.typ)
		}
		n, _ := constant.Int64Val(x.val)
		if n <= 0 {
			c.errorf(e.Len.Pos(), "array length must be positive, got %d", n)
		}
		length = n
	}

	var elem types.Type
	out.Elem, elem = c.typExpr(e.Elem, "")
	return out, types.NewArray(elem, length, declName)
}

// recordType resolves a record type. Fields are declared like variables:
// a field without an explicit type takes the type of its initializer.
// Inline records get a name unique to their position.
func (c *Checker) recordType(e *syntax.RecordType, declName string) (*syntax.RecordType, *types.Record) {
	if declName == "" {
		pos := e.Pos()
		declName = fmt.Sprintf("record@%d:%d", pos.Line(), pos.Col())
	}

	out := new(syntax.RecordType)
	*out = *e
	out.Fields = make([]*syntax.VarDecl, len(e.Fields))

	var fields []*types.Var
	seen := make(map[string]bool)
	for i, f := range e.Fields {
		name := f.Name.Value
		if seen[name] {
			c.errorf(f.Name.Pos(), "duplicate field %s", name)
		}
		seen[name] = true

		nf := new(syntax.VarDecl)
		*nf = *f

		var typ types.Type
		if f.Type != nil {
			nf.Type, typ = c.typExpr(f.Type, "")
		}
		if f.Value != nil {
			var x operand
			nf.Value = c.expr(&x, f.Value)
			if typ == nil {
				typ = x.typ
			} else {
				c.assignment(&x, typ, "field initializer")
			}
		}
		out.Fields[i] = nf

		field := types.NewField(f.Name.Pos(), name, typ)
		fields = append(fields, field)
		c.recordDef(f.Name, field)
	}
	return out, types.NewRecord(declName, fields)
}
