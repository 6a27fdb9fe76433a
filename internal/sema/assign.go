package sema

import (
	"go/constant"

	"github.com/you-not-fish/impp/internal/types"
)

// assignment reports an error if x cannot be stored in a location of type
// T. context describes the assignment for the error message, as in
// "argument to f".
//
// Integers and reals convert into each other silently; an integer
// converts to boolean only if it is the constant 0 or 1.
func (c *Checker) assignment(x *operand, T types.Type, context string) {
	switch types.AssignableTo(x.typ, T) {
	case types.AssignIdentical, types.AssignConvert:
		return

	case types.AssignIfZeroOrOne:
		if !x.isConst() {
			c.errorf(x.pos, "cannot use non-constant integer as boolean in %s", context)
		}
		if n, ok := constant.Int64Val(x.val); !ok || (n != 0 && n != 1) {
			c.errorf(x.pos, "cannot use %s as boolean in %s (only the constants 0 and 1 convert to boolean)",
				x.val.ExactString(), context)
		}
		return
	}
	c.errorf(x.pos, "cannot use %s as %s in %s", x.typ, T, context)
}
