package measure_test

import (
	"fmt"

	"github.com/zephyrtronium/formulas/chainage"
	"github.com/zephyrtronium/formulas/measure"
)

func ExampleEvaluate() {
	form := &measure.Form{
		Standard: []measure.FieldDef{
			{Label: "Width", Value: 2.5},
			{Label: "Height", Value: 0.4},
		},
		Start:        "10+0,000",
		End:          "12+5,000",
		Notation:     chainage.Station,
		UseExtension: true,
	}
	formula := measure.Formula{
		measure.Field("Width"),
		measure.Operator("×"),
		measure.Field("Height"),
	}
	r, err := measure.Evaluate(formula, form)
	if err != nil {
		fmt.Println("invalid:", err)
		return
	}
	fmt.Printf("%v = %g\n", formula, r)

	// Output:
	// [Width] × [Height] = 45
}

func ExampleLink() {
	var linked []measure.LinkedVariable
	for _, v := range []float64{4.5, 6} {
		linked = measure.Link(linked, measure.LinkedVariable{
			Property:   "Volume",
			SourceItem: "Concrete",
			Value:      v,
		})
	}
	for _, v := range linked {
		fmt.Printf("%d %q %g\n", v.ID, v.Label, v.Value)
	}

	// Output:
	// 1 "Concrete: Volume" 4.5
	// 2 "Concrete: Volume (2)" 6
}
