package syntax

import (
	"fmt"
	"go/constant"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
// Expressions that carry type information print it after a colon.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// nested prints label followed by node one level deeper.
func (p *printer) nested(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		if n.Type != nil {
			p.printf("Type: %s\n", TypeString(n.Type))
		}
		if n.Value != nil {
			p.nested("Value", n.Value)
		}
		p.indent--

	case *TypeDecl:
		p.printf("TypeDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.printf("Type: %s\n", TypeString(n.Type))
		p.indent--

	case *RoutineDecl:
		p.printf("RoutineDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Name.Value, TypeString(f.Type))
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", TypeString(n.Result))
		}
		switch b := n.Body.(type) {
		case nil:
			p.printf("Forward\n")
		case *Block:
			p.nested("Body", b)
		case *ExprBody:
			p.nested("Expr", b.X)
		}
		p.indent--

	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *DeclStmt:
		p.print(n.Decl)

	case *AssignStmt:
		p.printf("AssignStmt %s\n", n.pos)
		p.indent++
		p.nested("Lhs", n.Lhs)
		p.nested("Rhs", n.Rhs)
		p.indent--

	case *CallStmt:
		p.printf("CallStmt %s\n", n.pos)
		p.indent++
		p.print(n.Call)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.nested("Cond", n.Cond)
		p.nested("Then", n.Then)
		if n.Else != nil {
			p.nested("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.nested("Cond", n.Cond)
		p.nested("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s %s %s", n.pos, n.Iter.Value, n.Kind)
		if n.Reverse {
			fmt.Fprint(p.w, " reverse")
		}
		fmt.Fprintln(p.w)
		p.indent++
		p.nested("Start", n.Start)
		if n.End != nil {
			p.nested("End", n.End)
		}
		p.nested("Body", n.Body)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *BasicLit:
		p.printf("BasicLit %s %s %s%s\n", n.pos, n.Kind, n.Value, typeSuffix(n))

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s%s\n", n.pos, n.Op, typeSuffix(n))
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s%s\n", n.pos, n.Op, typeSuffix(n))
			p.indent++
			p.print(n.X)
			p.print(n.Y)
			p.indent--
		}

	case *CallExpr:
		p.printf("CallExpr %s %s%s\n", n.pos, n.Fun.Value, typeSuffix(n))
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ModifiablePrimary:
		p.printf("ModifiablePrimary %s %s%s\n", n.pos, n.Base.Value, typeSuffix(n))
		p.indent++
		for _, a := range n.Chain {
			p.print(a)
		}
		p.indent--

	case *FieldAccess:
		p.printf("Field .%s\n", n.Sel.Value)

	case *IndexAccess:
		p.nested("Index", n.Index)

	default:
		p.printf("<%T>\n", node)
	}
}

// typeSuffix renders the resolved type and constant value of x, if any.
func typeSuffix(x Expr) string {
	tv := x.GetTypeInfo()
	if tv.Type == nil {
		return ""
	}
	if tv.Value != nil {
		return fmt.Sprintf(" : %s = %s", tv.Type, ConstString(tv.Value))
	}
	return " : " + tv.Type.String()
}

// ConstString formats a constant value the way it is written in source.
// Reals always carry a fractional part or an exponent.
func ConstString(v constant.Value) string {
	if v.Kind() != constant.Float {
		return v.ExactString()
	}
	f, _ := constant.Float64Val(v)
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// TypeString returns the source form of a type expression.
func TypeString(t TypeExpr) string {
	switch t := t.(type) {
	case nil:
		return "<nil>"
	case *PrimitiveType:
		return t.Kind.String()
	case *NamedType:
		return t.Name.Value
	case *ArrayType:
		if t.Len == nil {
			return "array [] " + TypeString(t.Elem)
		}
		return "array [" + ExprString(t.Len) + "] " + TypeString(t.Elem)
	case *RecordType:
		var b strings.Builder
		b.WriteString("record")
		for _, f := range t.Fields {
			b.WriteString(" var " + f.Name.Value)
			if f.Type != nil {
				b.WriteString(" : " + TypeString(f.Type))
			}
			b.WriteString(";")
		}
		b.WriteString(" end")
		return b.String()
	}
	return fmt.Sprintf("<%T>", t)
}

// ExprString returns the source form of an expression, fully parenthesized
// for nested operations.
func ExprString(x Expr) string {
	switch x := x.(type) {
	case nil:
		return "<nil>"
	case *BasicLit:
		return x.Value
	case *Operation:
		if x.Y == nil {
			if x.Op == Not {
				return "not " + ExprString(x.X)
			}
			return x.Op.String() + ExprString(x.X)
		}
		return "(" + ExprString(x.X) + " " + x.Op.String() + " " + ExprString(x.Y) + ")"
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = ExprString(a)
		}
		return x.Fun.Value + "(" + strings.Join(args, ", ") + ")"
	case *ModifiablePrimary:
		var b strings.Builder
		b.WriteString(x.Base.Value)
		for _, a := range x.Chain {
			switch a := a.(type) {
			case *FieldAccess:
				b.WriteString("." + a.Sel.Value)
			case *IndexAccess:
				b.WriteString("[" + ExprString(a.Index) + "]")
			}
		}
		return b.String()
	}
	return fmt.Sprintf("<%T>", x)
}
