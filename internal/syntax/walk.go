package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *VarDecl:
		Walk(n.Name, v)
		walkOpt(n.Type, v)
		walkOpt(n.Value, v)

	case *TypeDecl:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *RoutineDecl:
		Walk(n.Name, v)
		for _, f := range n.Params {
			Walk(f, v)
		}
		walkOpt(n.Result, v)
		walkOpt(n.Body, v)

	case *Field:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *ExprBody:
		Walk(n.X, v)

	case *NamedType:
		Walk(n.Name, v)

	case *ArrayType:
		walkOpt(n.Len, v)
		Walk(n.Elem, v)

	case *RecordType:
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *Operation:
		Walk(n.X, v)
		walkOpt(n.Y, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ModifiablePrimary:
		Walk(n.Base, v)
		for _, a := range n.Chain {
			Walk(a, v)
		}

	case *FieldAccess:
		Walk(n.Sel, v)

	case *IndexAccess:
		Walk(n.Index, v)

	case *AssignStmt:
		Walk(n.Lhs, v)
		Walk(n.Rhs, v)

	case *CallStmt:
		Walk(n.Call, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		walkOpt(n.Else, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Iter, v)
		Walk(n.Start, v)
		walkOpt(n.End, v)
		Walk(n.Body, v)

	case *PrintStmt:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ReturnStmt:
		walkOpt(n.Result, v)

	case *DeclStmt:
		Walk(n.Decl, v)

	// Leaf nodes: Name, BasicLit, PrimitiveType
	}
}

func walkOpt(n Node, v Visitor) {
	if !isNil(n) {
		Walk(n, v)
	}
}

// isNil reports whether n is nil or a typed nil pointer, as produced by
// optional fields such as VarDecl.Type.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *ExprBody:
		return n == nil
	}
	return false
}

// Inspect traverses an AST and calls f for each node.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
