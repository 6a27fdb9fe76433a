package sema

import (
	"github.com/golang/glog"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Warn is called for each non-fatal diagnostic, in source order of
	// discovery. If nil, warnings are discarded.
	Warn WarningHandler
}

// Info holds optional results of analysis beyond the annotated tree.
type Info struct {
	// Defs maps declaring names to the objects they declare.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing names to the objects they denote.
	Uses map[*syntax.Name]types.Object

	// Scopes maps routine declarations, blocks and loops to the scope
	// they open.
	Scopes map[syntax.Node]*types.Scope
}

// Check analyzes file and returns the annotated tree together with the
// compilation unit holding the final global scope.
//
// The returned tree shares unchanged subtrees with file; nodes that were
// folded, pruned or annotated are replaced by new ones. Analysis stops at
// the first error, which is a *SemanticError.
func Check(file *syntax.File, conf *Config, info *Info) (*syntax.File, *types.Unit, error) {
	if conf == nil {
		conf = &Config{}
	}
	if info != nil {
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Object)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Object)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*types.Scope)
		}
	}

	c := newChecker(file.Name, conf, info)
	out, err := c.checkFile(file)
	if err != nil {
		if glog.V(3) {
			glog.V(3).Infof("analysis of %s failed: %v", file.Name, err)
		}
		return nil, c.unit, err
	}
	return out, c.unit, nil
}

// TypeOf returns the resolved type of an analyzed expression, or nil.
func TypeOf(e syntax.Expr) types.Type {
	if t, ok := e.GetTypeInfo().Type.(types.Type); ok {
		return t
	}
	return nil
}
