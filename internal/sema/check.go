package sema

import (
	"github.com/golang/glog"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// Checker holds the state of one analysis. A Checker is used for exactly
// one file and is not safe for concurrent use.
type Checker struct {
	conf *Config
	info *Info
	unit *types.Unit

	// scope stack, rooted at the unit's global scope
	stack *types.Stack

	// Routine context: the routine whose body is being analyzed, or nil
	// at top level.
	routine *types.Routine

	warnings int
}

func newChecker(name string, conf *Config, info *Info) *Checker {
	unit := types.NewUnit(name)
	return &Checker{
		conf:  conf,
		info:  info,
		unit:  unit,
		stack: types.NewStack(unit.Scope()),
	}
}

// checkFile analyzes the top-level declarations in source order.
func (c *Checker) checkFile(file *syntax.File) (out *syntax.File, err error) {
	defer c.recover(&err)

	if c.info != nil {
		c.info.Scopes[file] = c.unit.Scope()
	}

	out = new(syntax.File)
	*out = *file
	out.Decls = make([]syntax.Decl, 0, len(file.Decls))
	for _, d := range file.Decls {
		out.Decls = append(out.Decls, c.decl(d))
	}

	for _, r := range c.unit.Routines() {
		if !r.Defined() {
			c.warnf(r.Pos(), "routine %s is declared but never defined", r.Name())
		}
	}

	if glog.V(3) {
		glog.V(3).Infof("analyzed %s: %d declarations, %d warnings", file.Name, len(out.Decls), c.warnings)
	}
	return out, nil
}

// openScope pushes a new innermost scope for node n.
func (c *Checker) openScope(n syntax.Node, comment string) *types.Scope {
	s := c.stack.Push(n.Pos(), comment)
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope pops the innermost scope.
func (c *Checker) closeScope() {
	c.stack.Pop()
}

// lookup resolves name from the innermost scope outwards.
func (c *Checker) lookup(name *syntax.Name) types.Object {
	obj, _ := c.stack.Lookup(name.Value)
	if obj == nil {
		c.errorf(name.Pos(), "undefined: %s", name.Value)
	}
	c.recordUse(name, obj)
	return obj
}

// declare declares obj in the innermost scope. A name may shadow an outer
// declaration but not one in the same scope.
func (c *Checker) declare(name *syntax.Name, obj types.Object) {
	if existing := c.stack.Top().Insert(obj); existing != nil {
		c.errorf(name.Pos(), "%s redeclared in this block", name.Value)
	}
	c.recordDef(name, obj)
}

func (c *Checker) recordDef(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Defs[name] = obj
	}
}

func (c *Checker) recordUse(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Uses[name] = obj
	}
}
