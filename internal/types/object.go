package types

import "github.com/you-not-fish/impp/internal/syntax"

// Object represents a declared entity: a variable, a type name or a routine.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarKind tells what introduced a variable.
type VarKind int

const (
	LocalVar VarKind = iota // var declaration
	ParamVar                // routine parameter
	FieldVar                // record field
	IterVar                 // for-loop iterator
)

// Var represents a variable, parameter, record field or loop iterator.
type Var struct {
	object
	kind     VarKind
	readOnly bool
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewParam creates a new routine parameter. Parameters are assignable.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: ParamVar}
}

// NewField creates a new record field object.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: FieldVar}
}

// NewIter creates a new loop iterator. Iterators are read-only.
func NewIter(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: IterVar, readOnly: true}
}

// Kind returns what introduced the variable.
func (v *Var) Kind() VarKind {
	return v.kind
}

// IsField reports whether this variable is a record field.
func (v *Var) IsField() bool {
	return v.kind == FieldVar
}

// ReadOnly reports whether the variable may not be assigned.
func (v *Var) ReadOnly() bool {
	return v.readOnly
}

// TypeName represents a declared type name.
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// Routine represents a declared routine. A routine declared without a
// body is a forward declaration; the declaration that supplies the body
// replaces it in its scope.
type Routine struct {
	object
	defined bool // a body has been declared
}

// NewRoutine creates a new routine object.
func NewRoutine(pos syntax.Pos, name string, sig *Signature, defined bool) *Routine {
	return &Routine{object: object{name: name, typ: sig, pos: pos}, defined: defined}
}

// Signature returns the routine signature.
func (r *Routine) Signature() *Signature {
	return r.typ.(*Signature)
}

// Defined reports whether the routine has a body.
func (r *Routine) Defined() bool {
	return r.defined
}
