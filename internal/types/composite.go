package types

import (
	"fmt"
	"strings"
)

// Unbound is the length of an array declared without a size, such as an
// array parameter "array [] integer".
const Unbound = -1

// Array represents an array type. Arrays are 1-based: valid constant
// indices are 1 through Len.
type Array struct {
	typ
	elem Type
	len  int64  // number of elements, or Unbound
	name string // declaring type name, "" for an anonymous array
}

// NewArray creates a new array type with the given element type, length
// and declaring name.
func NewArray(elem Type, len int64, name string) *Array {
	return &Array{elem: elem, len: len, name: name}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Len returns the array length, or Unbound.
func (a *Array) Len() int64 {
	return a.len
}

// Unbound reports whether the array was declared without a size.
func (a *Array) Unbound() bool {
	return a.len == Unbound
}

// Name returns the name of the declaring type, or "".
func (a *Array) Name() string {
	return a.name
}

// String implements Type.
func (a *Array) String() string {
	if a.name != "" {
		return a.name
	}
	if a.len == Unbound {
		return fmt.Sprintf("array [] %s", a.elem)
	}
	return fmt.Sprintf("array [%d] %s", a.len, a.elem)
}

// Record represents a record type. Records are nominal: two records are
// the same type only if they have the same declaring name. Anonymous
// records receive a synthetic name unique to their declaration site.
type Record struct {
	typ
	name   string
	fields []*Var // in declaration order
}

// NewRecord creates a new record type with the given name and fields.
func NewRecord(name string, fields []*Var) *Record {
	return &Record{name: name, fields: fields}
}

// Name returns the declaring name of the record.
func (r *Record) Name() string {
	return r.name
}

// NumFields returns the number of fields.
func (r *Record) NumFields() int {
	return len(r.fields)
}

// Field returns the field at index i.
func (r *Record) Field(i int) *Var {
	return r.fields[i]
}

// Fields returns all fields in declaration order.
func (r *Record) Fields() []*Var {
	return r.fields
}

// LookupField returns the field with the given name and its index,
// or (nil, -1) if there is none.
func (r *Record) LookupField(name string) (*Var, int) {
	for i, f := range r.fields {
		if f.Name() == name {
			return f, i
		}
	}
	return nil, -1
}

// String implements Type.
func (r *Record) String() string {
	return r.name
}

// Signature is the type of a routine.
type Signature struct {
	typ
	params []*Var
	result Type // nil if the routine returns nothing
}

// NewSignature creates a new routine signature.
func NewSignature(params []*Var, result Type) *Signature {
	return &Signature{params: params, result: result}
}

// Params returns the parameters in order.
func (s *Signature) Params() []*Var {
	return s.params
}

// NumParams returns the number of parameters.
func (s *Signature) NumParams() int {
	return len(s.params)
}

// Param returns the i'th parameter.
func (s *Signature) Param(i int) *Var {
	return s.params[i]
}

// Result returns the result type, or nil.
func (s *Signature) Result() Type {
	return s.result
}

// String implements Type.
func (s *Signature) String() string {
	var buf strings.Builder
	buf.WriteString("routine(")
	for i, p := range s.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(")")
	if s.result != nil {
		buf.WriteString(" : ")
		buf.WriteString(s.result.String())
	}
	return buf.String()
}
