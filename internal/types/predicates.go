package types

// Identical reports whether x and y are the same type.
//
// Primitive types are identical when their kinds match. Arrays are
// identical when element type, length and declaring name all match.
// Records are nominal and compare by declaring name only.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return x.len == y.len && x.name == y.name && Identical(x.elem, y.elem)
		}
	case *Record:
		if y, ok := y.(*Record); ok {
			return x.name == y.name
		}
	case *Signature:
		if y, ok := y.(*Signature); ok {
			return identicalSignatures(x, y)
		}
	}
	return false
}

func identicalSignatures(x, y *Signature) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	if (x.result == nil) != (y.result == nil) {
		return false
	}
	return x.result == nil || Identical(x.result, y.result)
}

// Assignability classifies how a value of one type may be stored in a
// location of another.
type Assignability int

const (
	NotAssignable Assignability = iota
	AssignIdentical                   // same type
	AssignConvert                     // implicit numeric or boolean conversion
	AssignIfZeroOrOne                 // integer to boolean: only the constants 0 and 1
)

// AssignableTo reports how a value of type V may be assigned to type T.
//
// Besides identical types, integer and real convert freely in both
// directions and boolean converts to integer or real. An integer may be
// assigned to a boolean only if it is the constant 0 or 1; the caller
// checks the value. A real is never assignable to a boolean.
func AssignableTo(V, T Type) Assignability {
	if Identical(V, T) {
		return AssignIdentical
	}
	vb, ok1 := V.(*Basic)
	tb, ok2 := T.(*Basic)
	if !ok1 || !ok2 {
		return NotAssignable
	}

	switch tb.kind {
	case Integer, Real:
		return AssignConvert
	case Boolean:
		if vb.kind == Integer {
			return AssignIfZeroOrOne
		}
	}
	return NotAssignable
}

func basicInfo(T Type) BasicInfo {
	if b, ok := T.(*Basic); ok {
		return b.info
	}
	return 0
}

// IsIntegerType reports whether T is the integer type.
func IsIntegerType(T Type) bool { return basicInfo(T)&IsInteger != 0 }

// IsRealType reports whether T is the real type.
func IsRealType(T Type) bool { return basicInfo(T)&IsReal != 0 }

// IsBooleanType reports whether T is the boolean type.
func IsBooleanType(T Type) bool { return basicInfo(T)&IsBoolean != 0 }

// IsNumericType reports whether T is integer or real.
func IsNumericType(T Type) bool { return basicInfo(T)&IsNumeric != 0 }
