package types

import "github.com/you-not-fish/impp/internal/syntax"

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Universe is the root scope containing the primitive type names.
var Universe *Scope

var (
	universeInteger *TypeName
	universeReal    *TypeName
	universeBoolean *TypeName
)

func init() {
	Universe = NewScope(nil, NoPos, "universe")

	for _, kind := range []BasicKind{Integer, Real, Boolean} {
		typ := Typ[kind]
		obj := NewTypeName(NoPos, typ.name, typ)
		Universe.Insert(obj)

		switch kind {
		case Integer:
			universeInteger = obj
		case Real:
			universeReal = obj
		case Boolean:
			universeBoolean = obj
		}
	}
}

func UniverseInteger() *TypeName { return universeInteger }
func UniverseReal() *TypeName    { return universeReal }
func UniverseBoolean() *TypeName { return universeBoolean }
