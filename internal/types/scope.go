package types

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/you-not-fish/impp/internal/syntax"
)

// Scope maps names to the objects declared in one block.
// Scopes form a tree rooted at the Universe scope.
type Scope struct {
	parent   *Scope
	children []*Scope
	elems    map[string]Object
	pos      syntax.Pos
	comment  string // "global", "routine f", "loop", ...
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope, pos syntax.Pos, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]Object),
		pos:     pos,
		comment: comment,
	}
	// Universe is shared by all units and does not record children.
	if parent != nil && parent != Universe {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope, or nil for the Universe scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Children returns the list of child scopes.
func (s *Scope) Children() []*Scope {
	return s.children
}

// Pos returns the start position of the scope in source.
func (s *Scope) Pos() syntax.Pos {
	return s.pos
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the object with the given name in this scope only.
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// LookupParent returns the object with the given name by searching from
// this scope outwards. It returns the object and the scope in which it was
// found, or (nil, nil).
func (s *Scope) LookupParent(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert inserts obj into the scope. If an object with the same name
// already exists, Insert leaves the scope unchanged and returns it.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		return existing
	}
	s.elems[name] = obj
	obj.setParent(s)
	return nil
}

// Replace unconditionally binds obj's name to obj and returns the object
// previously bound to that name, if any.
func (s *Scope) Replace(obj Object) Object {
	old := s.elems[obj.Name()]
	s.elems[obj.Name()] = obj
	obj.setParent(s)
	return old
}

// Names returns the names of all objects in the scope, sorted.
func (s *Scope) Names() []string {
	return slices.Sorted(maps.Keys(s.elems))
}

// Len returns the number of objects in the scope.
func (s *Scope) Len() int {
	return len(s.elems)
}

// String returns a string representation of the scope tree for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s {\n", prefix, s.comment)
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, objectString(s.elems[name]))
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}

func objectString(obj Object) string {
	switch obj := obj.(type) {
	case *TypeName:
		return "type " + obj.Type().String()
	case *Routine:
		if !obj.Defined() {
			return obj.Type().String() + " (forward)"
		}
		return obj.Type().String()
	case *Var:
		if obj.ReadOnly() {
			return obj.Type().String() + " (read-only)"
		}
	}
	return obj.Type().String()
}

// Stack is the scope stack of an analysis: a strict LIFO of scopes whose
// bottom entry is the global scope. Lookups walk from the innermost scope
// outwards.
type Stack struct {
	scopes []*Scope
}

// NewStack creates a stack holding only global.
func NewStack(global *Scope) *Stack {
	return &Stack{scopes: []*Scope{global}}
}

// Push opens a new innermost scope, parented to the current top.
func (st *Stack) Push(pos syntax.Pos, comment string) *Scope {
	s := NewScope(st.Top(), pos, comment)
	st.scopes = append(st.scopes, s)
	return s
}

// Pop closes the innermost scope. The global scope is never popped.
func (st *Stack) Pop() *Scope {
	if len(st.scopes) == 1 {
		panic("types: pop of global scope")
	}
	top := st.Top()
	st.scopes = st.scopes[:len(st.scopes)-1]
	return top
}

// Top returns the innermost scope.
func (st *Stack) Top() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// Global returns the bottom scope.
func (st *Stack) Global() *Scope {
	return st.scopes[0]
}

// Depth returns the number of open scopes, counting the global scope.
func (st *Stack) Depth() int {
	return len(st.scopes)
}

// Lookup resolves name from the innermost scope outwards.
func (st *Stack) Lookup(name string) (Object, *Scope) {
	return st.Top().LookupParent(name)
}
