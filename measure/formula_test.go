package measure_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/formulas/measure"
)

func TestFormulaEdit(t *testing.T) {
	var f measure.Formula
	f = f.Append(measure.Field("Width"), measure.Operator("×"))
	g := f.Append(measure.Field("Height"))
	if len(f) != 2 {
		t.Errorf("Append modified its receiver: %v", f)
	}
	want := measure.Formula{
		{Kind: measure.ItemField, Label: "Width"},
		{Kind: measure.ItemOperator, Symbol: "×"},
		{Kind: measure.ItemField, Label: "Height"},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("wrong formula after append (-want +got):\n%s", diff)
	}

	h := g.Remove(1)
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("Remove modified its receiver (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(measure.Formula{want[0], want[2]}, h); diff != "" {
		t.Errorf("wrong formula after remove (-want +got):\n%s", diff)
	}
	for _, i := range []int{-1, 3, 100} {
		if diff := cmp.Diff(want, g.Remove(i)); diff != "" {
			t.Errorf("Remove(%d) out of range changed the formula (-want +got):\n%s", i, diff)
		}
	}
}

func TestFormulaString(t *testing.T) {
	f := measure.Formula{
		measure.Operator("("),
		measure.Field("Width"),
		measure.Operator("+"),
		measure.Literal("0.5"),
		measure.Operator(")"),
		measure.Operator("×"),
		measure.LinkedField("Concrete: Volume"),
	}
	want := "( [Width] + (0.5) ) × {Concrete: Volume}"
	if got := f.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestFormulaFields(t *testing.T) {
	f := measure.Formula{
		measure.Field("Width"),
		measure.Operator("*"),
		measure.Field("Height"),
		measure.Operator("+"),
		measure.Field("Width"),
		measure.Operator("*"),
		measure.LinkedField("Volume"),
	}
	want := []string{"Width", "Height", "Volume"}
	if diff := cmp.Diff(want, f.Fields()); diff != "" {
		t.Errorf("wrong fields (-want +got):\n%s", diff)
	}
}

func TestVars(t *testing.T) {
	v := measure.NewVars()
	v.Set("b", 1)
	v.Set("a", 2)
	v.Set("b", 3)
	if diff := cmp.Diff([]string{"b", "a"}, v.Names()); diff != "" {
		t.Errorf("wrong names (-want +got):\n%s", diff)
	}
	if x, ok := v.Lookup("b"); !ok || x != 3 {
		t.Errorf("b: want 3, true; got %g, %t", x, ok)
	}
	if _, ok := v.Lookup("B"); ok {
		t.Errorf("lookup is not case-sensitive")
	}
	if v.Len() != 2 {
		t.Errorf("want 2 names, got %d", v.Len())
	}
	names := v.Names()
	names[0] = "z"
	if v.Names()[0] != "b" {
		t.Errorf("Names shares storage with the context")
	}
}
