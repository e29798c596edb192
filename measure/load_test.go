package measure_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/formulas/chainage"
	"github.com/zephyrtronium/formulas/measure"
)

const formYAML = `
notation: estaca
start: 10+0,000
end: 12+5,000
extension: true
standard:
  - label: Width
    aliases: [Largura]
    value: 2
  - {label: Height, value: 0.5}
custom:
  - {label: Waste, value: 1.1, hidden: true}
linked:
  - {property: Volume, source_item: Concrete, line: 3, value: 4.5, unit: m³}
  - {property: Volume, source_item: Concrete, line: 3, value: 6}
  - {id: 7, label: Rebar, value: 12}
formula:
  - "[Width]"
  - ×
  - "[Height]"
  - {op: +}
  - "{Concrete: Volume (line 3) (2)}"
  - {literal: 1 / 2}
  - 0.25
`

func TestLoadForm(t *testing.T) {
	form, formula, err := measure.LoadForm(strings.NewReader(formYAML))
	if err != nil {
		t.Fatal(err)
	}
	want := &measure.Form{
		Standard: []measure.FieldDef{
			{Label: "Width", Aliases: []string{"Largura"}, Value: 2},
			{Label: "Height", Value: 0.5},
		},
		Custom: []measure.FieldDef{
			{Label: "Waste", Value: 1.1, Hidden: true},
		},
		Linked: []measure.LinkedVariable{
			{ID: 1, Label: "Concrete: Volume (line 3)", Value: 4.5, SourceItem: "Concrete", Property: "Volume", Unit: "m³", Line: 3},
			{ID: 2, Label: "Concrete: Volume (line 3) (2)", Value: 6, SourceItem: "Concrete", Property: "Volume", Line: 3},
			{ID: 7, Label: "Rebar", Value: 12},
		},
		Start:        "10+0,000",
		End:          "12+5,000",
		Notation:     chainage.Station,
		UseExtension: true,
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Errorf("wrong form (-want +got):\n%s", diff)
	}
	wantFormula := measure.Formula{
		measure.Field("Width"),
		measure.Operator("×"),
		measure.Field("Height"),
		measure.Operator("+"),
		measure.LinkedField("Concrete: Volume (line 3) (2)"),
		measure.Literal("1 / 2"),
		measure.Literal("0.25"),
	}
	if diff := cmp.Diff(wantFormula, formula); diff != "" {
		t.Errorf("wrong formula (-want +got):\n%s", diff)
	}
}

func TestLoadFormEvaluate(t *testing.T) {
	const src = `
notation: km
start: 0+100
end: 0+350
extension: true
standard: [{label: Area, value: 3}]
formula: ["[Area]", "*", "(2)"]
`
	form, formula, err := measure.LoadForm(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	r, err := measure.Evaluate(formula, form)
	if err != nil {
		t.Fatal(err)
	}
	if r != 1500 {
		t.Errorf("want 1500, got %g", r)
	}
}

func TestLoadFormEmpty(t *testing.T) {
	form, formula, err := measure.LoadForm(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&measure.Form{}, form); diff != "" {
		t.Errorf("wrong form (-want +got):\n%s", diff)
	}
	if len(formula) != 0 {
		t.Errorf("want empty formula, got %v", formula)
	}
}

func TestLoadFormErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown-key", "widht: 2\n"},
		{"bad-notation", "notation: furlong\n"},
		{"two-kinds", "formula: [{field: a, op: +}]\n"},
		{"no-kind", "formula: [{}]\n"},
		{"nested", "formula: [[a]]\n"},
		{"syntax", "formula: [\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := measure.LoadForm(strings.NewReader(c.src))
			if err == nil {
				t.Errorf("%q loaded without error", c.src)
			}
		})
	}
}
