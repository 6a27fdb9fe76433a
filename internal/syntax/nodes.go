package syntax

import "go/constant"

// ----------------------------------------------------------------------------
// Interfaces
//
// Nodes fall into five closed classes: declarations, statements,
// expressions, type expressions and routine bodies. Marker methods keep
// every class sealed to this package so that type switches over a class
// can be exhaustive.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes. Every expression carries
// a type-and-value slot that the semantic analyzer fills in.
type Expr interface {
	Node
	GetTypeInfo() TypeAndValue
	SetTypeInfo(TypeAndValue)
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// TypeExpr is the interface for syntactic type nodes.
type TypeExpr interface {
	Node
	aType()
}

// RoutineBody is either a *Block or an *ExprBody.
type RoutineBody interface {
	Node
	aBody()
}

// Type is a resolved type as seen from the syntax tree. It is implemented
// by the semantic type model; the tree only needs to print it.
type Type interface {
	String() string
}

// TypeAndValue records the resolved type of an expression and, if the
// expression is a compile-time constant, its value.
type TypeAndValue struct {
	Type  Type
	Value constant.Value
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// SetPos sets the node position. It is used when the analyzer synthesizes
// replacement nodes.
func (n *node) SetPos(pos Pos) { n.pos = pos }

type expr struct {
	node
	tv TypeAndValue
}

func (x *expr) GetTypeInfo() TypeAndValue   { return x.tv }
func (x *expr) SetTypeInfo(tv TypeAndValue) { x.tv = tv }
func (*expr) aExpr()                        {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type decl struct{ node }

func (*decl) aDecl() {}

type typeExpr struct{ node }

func (*typeExpr) aType() {}

// ----------------------------------------------------------------------------
// Program and declarations

// File is a whole program: top-level declarations in source order.
type File struct {
	node
	Name  string // file name, for diagnostics
	Decls []Decl
}

// VarDecl declares a variable (or a record field):
//
//	var Name : Type is Value
//
// At least one of Type and Value is present.
type VarDecl struct {
	decl
	Name  *Name
	Type  TypeExpr // nil if inferred
	Value Expr     // nil if absent
}

// TypeDecl binds a name to a type: type Name is Type
type TypeDecl struct {
	decl
	Name *Name
	Type TypeExpr
}

// RoutineDecl declares a routine:
//
//	routine Name(Params) : Result is Stmts end
//	routine Name(Params) : Result => X
//	routine Name(Params) : Result
//
// Body is nil for a forward declaration.
type RoutineDecl struct {
	decl
	Name   *Name
	Params []*Field
	Result TypeExpr // nil if the routine returns nothing
	Body   RoutineBody
}

// Field is a routine parameter.
type Field struct {
	node
	Name *Name
	Type TypeExpr
}

// Name is an identifier occurrence.
type Name struct {
	node
	Value string
}

// ----------------------------------------------------------------------------
// Routine bodies

// Block is an ordered statement list closed by a keyword.
type Block struct {
	node
	Stmts []Stmt
	Close Pos // position of the closing keyword
}

func (*Block) aBody() {}

// ExprBody is the single expression of a "=> X" routine.
type ExprBody struct {
	node
	X Expr
}

func (*ExprBody) aBody() {}

// ----------------------------------------------------------------------------
// Type expressions

// PrimitiveType is one of integer, real, boolean.
type PrimitiveType struct {
	typeExpr
	Kind LitKind
}

// NamedType refers to a declared type by name.
type NamedType struct {
	typeExpr
	Name *Name
}

// ArrayType is array [Len] Elem. Len is nil for an unbound array.
type ArrayType struct {
	typeExpr
	Len  Expr
	Elem TypeExpr
}

// RecordType is record Fields end.
type RecordType struct {
	typeExpr
	Fields []*VarDecl
}

// ----------------------------------------------------------------------------
// Expressions

// BasicLit is an integer, real or boolean literal.
type BasicLit struct {
	expr
	Value string
	Kind  LitKind
}

// Operation is a unary or binary operation. Y is nil for unary operations.
type Operation struct {
	expr
	Op Operator
	X  Expr
	Y  Expr
}

// CallExpr is a routine call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  *Name
	Args []Expr
}

// ModifiablePrimary is a variable reference followed by an access chain,
// as in a.b[i].c. Each element of Chain is a *FieldAccess or *IndexAccess.
type ModifiablePrimary struct {
	expr
	Base  *Name
	Chain []Access
}

// Access is one element of a modifiable-primary chain.
type Access interface {
	Node
	aAccess()
}

// FieldAccess is ".Sel".
type FieldAccess struct {
	node
	Sel *Name
}

// IndexAccess is "[Index]".
type IndexAccess struct {
	node
	Index Expr
}

func (*FieldAccess) aAccess() {}
func (*IndexAccess) aAccess() {}

// ----------------------------------------------------------------------------
// Statements

// AssignStmt is Lhs := Rhs.
type AssignStmt struct {
	stmt
	Lhs *ModifiablePrimary
	Rhs Expr
}

// CallStmt is a routine call used as a statement.
type CallStmt struct {
	stmt
	Call *CallExpr
}

// IfStmt is if Cond then Then [else Else] end. Else is nil if absent.
type IfStmt struct {
	stmt
	Cond Expr
	Then *Block
	Else *Block
}

// WhileStmt is while Cond loop Body end.
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// LoopKind tells how a for loop iterates.
type LoopKind uint8

const (
	UnresolvedLoop LoopKind = iota // bare source, decided by the analyzer
	RangeLoop                      // numeric range Start..End
	ArrayLoop                      // traversal of the array Start
)

var loopKindNames = [...]string{
	UnresolvedLoop: "unresolved",
	RangeLoop:      "range",
	ArrayLoop:      "array",
}

func (k LoopKind) String() string { return loopKindNames[k] }

// ForStmt is for Iter in Start[..End] [reverse] loop Body end.
type ForStmt struct {
	stmt
	Iter    *Name
	Start   Expr
	End     Expr // nil for a bare source
	Reverse bool
	Kind    LoopKind
	Body    *Block
}

// PrintStmt is print Args.
type PrintStmt struct {
	stmt
	Args []Expr
}

// ReturnStmt is return [Result].
type ReturnStmt struct {
	stmt
	Result Expr // nil for a bare return
}

// DeclStmt wraps a variable or type declaration inside a body.
type DeclStmt struct {
	stmt
	Decl Decl
}
