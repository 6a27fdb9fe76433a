package types

import (
	"cmp"
	"slices"
)

// Unit is a compilation unit: one source file and its global scope. After
// a successful analysis it holds every global variable, type and routine,
// which is all a code generator needs besides the annotated tree.
type Unit struct {
	name  string
	scope *Scope
}

// NewUnit creates a new unit with an empty global scope.
func NewUnit(name string) *Unit {
	return &Unit{
		name:  name,
		scope: NewScope(Universe, NoPos, "global"),
	}
}

// Name returns the unit name, normally the source file name.
func (u *Unit) Name() string {
	return u.name
}

// Scope returns the global scope.
func (u *Unit) Scope() *Scope {
	return u.scope
}

// Lookup returns the global object with the given name, or nil.
func (u *Unit) Lookup(name string) Object {
	return u.scope.Lookup(name)
}

// Vars returns the global variables in declaration order.
func (u *Unit) Vars() []*Var {
	return collect[*Var](u.scope)
}

// TypeNames returns the global type declarations in declaration order.
func (u *Unit) TypeNames() []*TypeName {
	return collect[*TypeName](u.scope)
}

// Routines returns the global routines in declaration order.
func (u *Unit) Routines() []*Routine {
	return collect[*Routine](u.scope)
}

// String returns the unit name.
func (u *Unit) String() string {
	return u.name
}

func collect[T Object](s *Scope) []T {
	var out []T
	for _, obj := range s.elems {
		if obj, ok := obj.(T); ok {
			out = append(out, obj)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := cmp.Compare(a.Pos().Offset(), b.Pos().Offset()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	return out
}
