package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes an indented JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// FprintTokensJSON writes a JSON array of lexemes to w.
func FprintTokensJSON(w io.Writer, toks []Lexeme) error {
	out := make([]map[string]interface{}, len(toks))
	for i, l := range toks {
		m := map[string]interface{}{
			"kind": l.Tok.String(),
			"line": l.Pos.Line(),
			"col":  l.Pos.Col(),
		}
		if l.Lit != "" {
			m["lexeme"] = l.Lit
		}
		out[i] = m
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	m := map[string]interface{}{"pos": node.Pos().String()}
	set := func(kind string, kv ...interface{}) map[string]interface{} {
		m["node"] = kind
		for i := 0; i+1 < len(kv); i += 2 {
			if v := kv[i+1]; v != nil {
				m[kv[i].(string)] = v
			}
		}
		return m
	}

	switch n := node.(type) {
	case *File:
		return set("File", "decls", mapSlice(n.Decls, toJSON))

	case *VarDecl:
		return set("VarDecl", "name", n.Name.Value, "vartype", toJSON(n.Type), "value", toJSON(n.Value))

	case *TypeDecl:
		return set("TypeDecl", "name", n.Name.Value, "typedef", toJSON(n.Type))

	case *RoutineDecl:
		set("RoutineDecl", "name", n.Name.Value,
			"params", mapSlice(n.Params, toJSON),
			"result", toJSON(n.Result))
		switch b := n.Body.(type) {
		case *Block:
			m["body"] = toJSON(b)
		case *ExprBody:
			m["expr"] = toJSON(b.X)
		default:
			m["forward"] = true
		}
		return m

	case *Field:
		return set("Param", "name", n.Name.Value, "paramtype", toJSON(n.Type))

	case *Block:
		return set("Block", "stmts", mapSlice(n.Stmts, toJSON))

	case *PrimitiveType:
		return set("PrimitiveType", "kind", n.Kind.String())

	case *NamedType:
		return set("UserType", "name", n.Name.Value)

	case *ArrayType:
		return set("ArrayType", "size", toJSON(n.Len), "elem", toJSON(n.Elem))

	case *RecordType:
		return set("RecordType", "fields", mapSlice(n.Fields, toJSON))

	case *BasicLit:
		return withType(n, set("Literal", "kind", n.Kind.String(), "value", n.Value))

	case *Operation:
		if n.Y == nil {
			return withType(n, set("Unary", "op", n.Op.String(), "operand", toJSON(n.X)))
		}
		return withType(n, set("Binary", "op", n.Op.String(), "left", toJSON(n.X), "right", toJSON(n.Y)))

	case *CallExpr:
		return withType(n, set("RoutineCall", "name", n.Fun.Value, "args", mapSlice(n.Args, toJSON)))

	case *ModifiablePrimary:
		return withType(n, set("ModifiablePrimary", "base", n.Base.Value, "access", mapSlice(n.Chain, toJSON)))

	case *FieldAccess:
		return set("FieldAccess", "field", n.Sel.Value)

	case *IndexAccess:
		return set("ArrayAccess", "index", toJSON(n.Index))

	case *DeclStmt:
		return toJSON(n.Decl)

	case *AssignStmt:
		return set("Assignment", "target", toJSON(n.Lhs), "value", toJSON(n.Rhs))

	case *CallStmt:
		return set("RoutineCallStatement", "call", toJSON(n.Call))

	case *IfStmt:
		return set("If", "cond", toJSON(n.Cond), "then", toJSON(n.Then), "else", toJSON(n.Else))

	case *WhileStmt:
		return set("While", "cond", toJSON(n.Cond), "body", toJSON(n.Body))

	case *ForStmt:
		return set("For", "iterator", n.Iter.Value, "kind", n.Kind.String(), "reverse", n.Reverse,
			"start", toJSON(n.Start), "end", toJSON(n.End), "body", toJSON(n.Body))

	case *PrintStmt:
		return set("Print", "args", mapSlice(n.Args, toJSON))

	case *ReturnStmt:
		return set("Return", "value", toJSON(n.Result))
	}

	return set("Unknown")
}

// withType adds the resolved type and constant value of x to m.
func withType(x Expr, m map[string]interface{}) map[string]interface{} {
	tv := x.GetTypeInfo()
	if tv.Type != nil {
		m["type"] = tv.Type.String()
	}
	if tv.Value != nil {
		m["const"] = ConstString(tv.Value)
	}
	return m
}

func mapSlice[T Node](list []T, f func(Node) interface{}) []interface{} {
	out := make([]interface{}, len(list))
	for i, n := range list {
		out[i] = f(n)
	}
	return out
}
