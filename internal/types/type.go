// Package types implements the resolved type model of the Imperative
// language: primitive, array and record types, declared objects and the
// scope stack used during analysis. It has no dependency on the analyzer.
package types

// Type is the interface implemented by all resolved types.
// Types are immutable once constructed and may be shared freely.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
