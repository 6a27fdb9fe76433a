package sema

import (
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

type checked struct {
	parsed   *syntax.File
	file     *syntax.File
	unit     *types.Unit
	info     *Info
	warnings []string
	err      error
}

// parseAndCheck parses src and runs the checker, collecting warnings.
func parseAndCheck(t *testing.T, src string) checked {
	t.Helper()
	file, err := syntax.ParseFile("", []byte(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	res := checked{parsed: file}
	conf := &Config{
		Warn: func(pos syntax.Pos, msg string) {
			res.warnings = append(res.warnings, pos.String()+": "+msg)
		},
	}
	res.info = &Info{}
	res.file, res.unit, res.err = Check(file, conf, res.info)
	return res
}

// expectNoErrors checks that src analyzes without errors.
func expectNoErrors(t *testing.T, src string) checked {
	t.Helper()
	res := parseAndCheck(t, src)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	return res
}

// expectError checks that analysis fails with an error containing msg.
func expectError(t *testing.T, src, msg string) checked {
	t.Helper()
	res := parseAndCheck(t, src)
	if res.err == nil {
		t.Fatalf("expected error containing %q, got none", msg)
	}
	if !strings.Contains(res.err.Error(), msg) {
		t.Errorf("expected error containing %q, got: %v", msg, res.err)
	}
	return res
}

// expectWarning checks that some warning contains msg.
func expectWarning(t *testing.T, res checked, msg string) {
	t.Helper()
	for _, w := range res.warnings {
		if strings.Contains(w, msg) {
			return
		}
	}
	t.Errorf("expected warning containing %q, got %q", msg, res.warnings)
}

// defOf returns the object declared by the first name spelled name.
func defOf(info *Info, name string) types.Object {
	var found types.Object
	var pos syntax.Pos
	for n, obj := range info.Defs {
		if n.Value != name {
			continue
		}
		if found == nil || n.Pos().Offset() < pos.Offset() {
			found, pos = obj, n.Pos()
		}
	}
	return found
}

func TestDeclarations(t *testing.T) {
	res := expectNoErrors(t, `
var x : integer is 5
var y is 2.5
var b : boolean is 1
type Point is record
  var x : integer
  var y : integer
end
var p : Point
type Row is array [3] real
var r : Row
var open : array [] integer
routine f(a : integer) : integer => a * 2
routine g() is
  print f(2), p.x, r[1], b
end
`)

	tests := []struct {
		name string
		want string
	}{
		{"x", "integer"},
		{"y", "real"},
		{"b", "boolean"},
		{"p", "Point"},
		{"r", "Row"},
		{"open", "array [] integer"},
		{"f", "routine(integer) : integer"},
		{"g", "routine()"},
	}
	for _, tt := range tests {
		obj := res.unit.Lookup(tt.name)
		if obj == nil {
			t.Errorf("%s not declared in the unit", tt.name)
			continue
		}
		if got := obj.Type().String(); got != tt.want {
			t.Errorf("type of %s = %s, want %s", tt.name, got, tt.want)
		}
	}

	if tn, ok := res.unit.Lookup("Point").(*types.TypeName); !ok {
		t.Errorf("Point is not a type name")
	} else if rec, ok := tn.Type().(*types.Record); !ok || rec.NumFields() != 2 {
		t.Errorf("Point = %v, want a record with two fields", tn.Type())
	}
}

func TestInferredRecordField(t *testing.T) {
	res := expectNoErrors(t, `
type Counter is record
  var n is 0
  var step : real is 1
end
`)
	rec := res.unit.Lookup("Counter").Type().(*types.Record)
	n, _ := rec.LookupField("n")
	step, _ := rec.LookupField("step")
	if n == nil || n.Type().String() != "integer" {
		t.Errorf("field n = %v, want integer", n)
	}
	if step == nil || step.Type().String() != "real" {
		t.Errorf("field step = %v, want real", step)
	}
}

func TestAssignmentCoercion(t *testing.T) {
	res := expectNoErrors(t, `
routine main() is
  var x : integer is 5
  x := x + 1.0
  var r : real is x
  var n : integer is true
  var flag : boolean is 0
end
`)
	x := defOf(res.info, "x")
	if x == nil || x.Type().String() != "integer" {
		t.Errorf("x = %v, want an integer variable", x)
	}
}

func TestRecordFieldAccess(t *testing.T) {
	res := expectNoErrors(t, `
type Point is record
  var x : integer
  var y : integer
end
routine f(p : Point) : integer => p.x
`)
	body := res.file.Decls[1].(*syntax.RoutineDecl).Body.(*syntax.ExprBody)
	if got := TypeOf(body.X); got == nil || got.String() != "integer" {
		t.Errorf("type of p.x = %v, want integer", got)
	}

	expectError(t, `
type Point is record
  var x : integer
  var y : integer
end
routine f(p : Point) : integer => p.z
`, "no field z")
}

func TestNestedAccessChain(t *testing.T) {
	res := expectNoErrors(t, `
type Cell is record
  var v : real
end
type Grid is array [4] array [2] Cell
routine f(g : Grid) : real is
  g[4][2].v := 1
  return g[1][1].v
end
`)
	ret := res.file.Decls[2].(*syntax.RoutineDecl).Body.(*syntax.Block).Stmts[1].(*syntax.ReturnStmt)
	if got := TypeOf(ret.Result); got == nil || got.String() != "real" {
		t.Errorf("type of g[1][1].v = %v, want real", got)
	}
}

func TestShadowing(t *testing.T) {
	expectNoErrors(t, `
var a is 1
routine f(a : real) is
  var a is true
  if a then
    var a is 2
    print a
  end
end
`)
}

func TestForwardDeclaration(t *testing.T) {
	res := expectNoErrors(t, `
routine even(n : integer) : boolean
routine odd(n : integer) : boolean is
  if n = 0 then return false else return even(n - 1) end
end
routine even(n : integer) : boolean is
  if n = 0 then return true else return odd(n - 1) end
end
`)
	r, ok := res.unit.Lookup("even").(*types.Routine)
	if !ok || !r.Defined() {
		t.Fatalf("even = %v, want a defined routine", res.unit.Lookup("even"))
	}
	if len(res.warnings) != 0 {
		t.Errorf("unexpected warnings: %q", res.warnings)
	}
}

// An unbound array type is identical only to other unbound arrays of the
// same element type, so it does not accept sized arrays.
func TestUnboundArrayParameter(t *testing.T) {
	expectNoErrors(t, `routine s(a : array [] integer) : integer => 1
routine t(b : array [] integer) : integer => s(b)`)

	expectError(t, `routine s(a : array [] integer) : integer => 1
routine t() : integer is
  var v : array [3] integer
  return s(v)
end`, "cannot use array [3] integer as array [] integer in argument to s")
}

func TestForwardNeverDefined(t *testing.T) {
	res := expectNoErrors(t, "routine later(x : real)\n")
	expectWarning(t, res, "1:9: routine later is declared but never defined")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"undefined", "routine f() is x := 1 end", "undefined: x"},
		{"redeclared_global", "var x is 1\nvar x is 2", "2:5: x redeclared in this block"},
		{"redeclared_local", "routine f() is\n var a is 1\n var a is 2\nend", "a redeclared in this block"},
		{"param_and_var_same_scope", "routine f(a : integer, a : real) is end", "a redeclared in this block"},
		{"not_a_type", "var x is 1\nvar y : x", "x is not a type"},
		{"undefined_type", "var y : Shape", "undefined: Shape"},
		{"duplicate_field", "type R is record\n var a : integer\n var a : real\nend", "duplicate field a"},

		{"array_len_not_constant", "routine f(n : integer) is var a : array [n] integer end", "array length must be a constant expression"},
		{"array_len_zero", "type A is array [0] integer", "array length must be positive, got 0"},
		{"array_len_negative", "type A is array [2 - 5] integer", "array length must be positive, got -3"},
		{"array_len_real", "type A is array [2.5] integer", "array length must be an integer, got real"},

		{"arith_boolean", "var x is true + 1", "operator + requires numeric operands, got boolean and integer"},
		{"relational_boolean", "var x is true < false", "operator < requires numeric operands"},
		{"logical_integer", "var x is 1 and 2", "operator and requires boolean operands, got integer and integer"},
		{"not_integer", "var x is not 1", "operator not requires a boolean operand, got integer"},
		{"negate_boolean", "var x is -true", "operator - requires a numeric operand, got boolean"},

		{"division_by_zero", "var x is 1 / 0", "division by zero"},
		{"remainder_by_folded_zero", "var x is 5 % (2 - 2)", "division by zero"},
		{"real_division_by_zero", "var x is 1.5 / 0.0", "division by zero"},
		{"integer_overflow", "var x is 9223372036854775807 + 1", "constant 9223372036854775808 overflows integer"},
		{"literal_overflow", "var x is 99999999999999999999", "constant 99999999999999999999 overflows integer"},

		{"int_to_bool_two", "var b : boolean is 2", "cannot use 2 as boolean in variable declaration"},
		{"int_to_bool_non_constant", "routine f(n : integer) is var b : boolean is n end", "cannot use non-constant integer as boolean"},
		{"real_to_bool", "var b : boolean is 1.5", "cannot use real as boolean in variable declaration"},
		{"records_are_nominal", `
type A is record var x : integer end
type B is record var x : integer end
routine f(a : A, b : B) is a := b end`, "cannot use B as A in assignment"},
		{"inline_records_are_distinct", `
routine f() is
  var a : record var x : integer end
  var b : record var x : integer end
  a := b
end`, "cannot use record@4:11 as record@3:11 in assignment"},
		{"array_to_integer", "routine f(a : array [2] integer) is var n : integer is a end", "cannot use array [2] integer as integer"},

		{"index_not_integer", "routine f(a : array [3] integer) is a[1.5] := 1 end", "array index must be an integer, got real"},
		{"index_too_large", "routine f(a : array [3] integer) is a[4] := 1 end", "index 4 out of bounds [1..3]"},
		{"index_zero", "routine f(a : array [3] integer) is a[0] := 1 end", "index 0 out of bounds [1..3]"},
		{"index_non_array", "var x is 1\nroutine f() is x[1] := 2 end", "cannot index x (type integer is not an array)"},
		{"field_non_record", "var x is 1\nroutine f() is x.y := 2 end", "cannot select field y (type integer is not a record)"},
		{"type_as_variable", "type T is integer\nroutine f() is T := 1 end", "T is not a variable"},
		{"routine_as_variable", "routine g() is end\nroutine f() is g := 1 end", "g is not a variable"},

		{"not_a_routine", "var x is 1\nroutine f() is x(1) end", "x is not a routine"},
		{"wrong_arg_count", "routine g(a : integer) is end\nroutine f() is g(1, 2) end", "wrong number of arguments in call to g: got 2, want 1"},
		{"arg_type", "routine g(a : boolean) is end\nroutine f() is g(2.0) end", "cannot use real as boolean in argument to g"},
		{"void_as_value", "routine g() is end\nroutine f() is var x is g() end", "routine g has no result and cannot be used as a value"},
		{"void_in_print", "routine g() is end\nroutine f() is print g() end", "routine g has no result"},

		{"missing_return_value", "routine f() : integer is return end", "missing return value in routine f (want integer)"},
		{"unexpected_return_value", "routine f() is return 1 end", "too many return values: routine f has no result"},
		{"return_type", "routine f() : boolean is return 2.5 end", "cannot use real as boolean in return statement"},
		{"expr_body_without_result", "routine f() => 1", "routine f has an expression body but no result type"},
		{"expr_body_type", "routine f() : boolean => 1.5", "cannot use real as boolean in routine result"},

		{"assign_iterator", "routine f() is for i in 1..3 loop i := 2 end end", "cannot assign to i (loop iterator)"},
		{"range_real_bound", "routine f() is for i in 1..2.5 loop end end", "range bound must be an integer, got real"},
		{"range_over_boolean", "routine f() is for i in true loop end end", "cannot range over true (type boolean)"},
		{"if_condition", "routine f() is if 1 then end end", "non-boolean condition in if statement"},
		{"while_condition", "routine f(x : real) is while x loop end end", "non-boolean condition in while statement"},

		{"forward_mismatch", "routine f(a : integer) : integer\nroutine f(a : real) : integer => 1",
			"routine f does not match its forward declaration: have routine(real) : integer, want routine(integer) : integer"},
		{"two_bodies", "routine f() is end\nroutine f() is end", "f redeclared in this block"},
		{"two_forwards", "routine f()\nroutine f()", "f redeclared in this block"},
		{"routine_after_var", "var f is 1\nroutine f() is end", "f redeclared in this block"},
		{"var_after_routine", "routine f() is end\nvar f is 1", "f redeclared in this block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, tt.msg)
		})
	}
}

func TestSemanticErrorType(t *testing.T) {
	res := expectError(t, "var x is 1\nvar x is 2", "redeclared")
	var serr *SemanticError
	if !errors.As(res.err, &serr) {
		t.Fatalf("error %T is not a *SemanticError", res.err)
	}
	if serr.Pos.Line() != 2 || serr.Pos.Col() != 5 {
		t.Errorf("error at %s, want 2:5", serr.Pos)
	}
	if serr.Msg != "x redeclared in this block" {
		t.Errorf("Msg = %q", serr.Msg)
	}
	if res.file != nil {
		t.Errorf("Check returned a tree despite the error")
	}
}

func TestCheckStopsAtFirstError(t *testing.T) {
	res := expectError(t, "var a is true + 1\nvar b is undefinedName", "operator +")
	if strings.Contains(res.err.Error(), "undefinedName") {
		t.Errorf("analysis continued past the first error: %v", res.err)
	}
}

func TestDefsAndUses(t *testing.T) {
	res := expectNoErrors(t, `
var total is 0
routine add(n : integer) is
  total := total + n
end
`)
	total := res.unit.Lookup("total")
	uses := 0
	for name, obj := range res.info.Uses {
		if name.Value == "total" {
			if obj != total {
				t.Errorf("use of total at %s resolves to %v", name.Pos(), obj)
			}
			uses++
		}
	}
	if uses != 2 {
		t.Errorf("got %d uses of total, want 2", uses)
	}

	n := defOf(res.info, "n")
	if v, ok := n.(*types.Var); !ok || v.Kind() != types.ParamVar {
		t.Errorf("n = %v, want a parameter", n)
	}
}

func TestNilInfoAndConfig(t *testing.T) {
	file, err := syntax.ParseFile("", []byte("routine f() is while true loop end end"))
	if err != nil {
		t.Fatal(err)
	}
	out, unit, err := Check(file, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || unit.Lookup("f") == nil {
		t.Errorf("Check(nil, nil) = %v, %v", out, unit)
	}
}
