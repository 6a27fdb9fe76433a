package types

// BasicKind describes the kind of a primitive type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Integer
	Real
	Boolean
)

// BasicInfo describes properties of a primitive type.
type BasicInfo int

const (
	IsInteger BasicInfo = 1 << iota
	IsReal
	IsBoolean
	IsNumeric = IsInteger | IsReal
)

// Basic represents a primitive type: integer, real or boolean.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the primitive type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the primitive type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the keyword naming the type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the primitive types, indexed by BasicKind.
// Typ[Invalid] is nil.
var Typ = []*Basic{
	Invalid: nil,
	Integer: {kind: Integer, info: IsInteger, name: "integer"},
	Real:    {kind: Real, info: IsReal, name: "real"},
	Boolean: {kind: Boolean, info: IsBoolean, name: "boolean"},
}
