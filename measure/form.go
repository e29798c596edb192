package measure

import "github.com/zephyrtronium/formulas/chainage"

// FieldDef is a named numeric field on a measurement form.
type FieldDef struct {
	Label string `yaml:"label"`
	// Aliases are alternate labels that resolve to the same value, such as
	// "Largura" for "Width".
	Aliases []string `yaml:"aliases,omitempty"`
	Value   float64  `yaml:"value"`
	// Hidden fields are switched off on the form. They do not resolve.
	Hidden bool `yaml:"hidden,omitempty"`
	// Length marks a field that carries the length derived from the start and
	// end markers. While a notation is active, its value is that distance,
	// and the extension rule does not apply because the formula can already
	// include the length explicitly.
	Length bool `yaml:"length,omitempty"`
}

// Form is the state a formula is evaluated against.
type Form struct {
	// Standard holds the dimensional fields, e.g. width, height, quantity.
	Standard []FieldDef `yaml:"standard"`
	// Custom holds auxiliary fields added by the user.
	Custom []FieldDef `yaml:"custom"`
	// Linked holds values captured from other records.
	Linked []LinkedVariable `yaml:"linked"`
	// Start and End are chainage markers, read in Notation.
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	// Notation is the chainage notation of the markers. None disables
	// positional fields.
	Notation chainage.Notation `yaml:"notation"`
	// UseExtension requests that results be multiplied by the extension.
	UseExtension bool `yaml:"extension"`
}

// Vars builds a fresh variable context from the form. When labels collide,
// standard fields and their aliases take precedence over custom fields, which
// take precedence over linked variables.
func (f *Form) Vars() *Vars {
	v := NewVars()
	if f == nil {
		return v
	}
	for _, d := range f.Standard {
		if d.Hidden {
			continue
		}
		v.setDefault(d.Label, d.Value)
		for _, a := range d.Aliases {
			v.setDefault(a, d.Value)
		}
	}
	ext, active := f.Extension()
	for _, d := range f.Custom {
		if d.Hidden {
			continue
		}
		x := d.Value
		if d.Length && active {
			x = ext
		}
		v.setDefault(d.Label, x)
		for _, a := range d.Aliases {
			v.setDefault(a, x)
		}
	}
	for _, l := range f.Linked {
		v.setDefault(l.Label, l.Value)
	}
	return v
}

// Extension returns the distance between the start and end markers and
// whether a positional notation is active. Malformed markers read as 0.
func (f *Form) Extension() (float64, bool) {
	if f == nil || !f.Notation.Active() {
		return 0, false
	}
	return chainage.Distance(f.Start, f.End, f.Notation), true
}

// ExtensionApplies returns whether evaluation results are multiplied by the
// extension: a notation is active, UseExtension is set, and no custom field
// already carries the length.
func (f *Form) ExtensionApplies() bool {
	if f == nil || !f.Notation.Active() || !f.UseExtension {
		return false
	}
	for _, d := range f.Custom {
		if d.Length && !d.Hidden {
			return false
		}
	}
	return true
}

// linked resolves a label against the form's linked variables.
func (f *Form) linked(label string) (float64, bool) {
	if f == nil {
		return 0, false
	}
	for _, l := range f.Linked {
		if l.Label == label {
			return l.Value, true
		}
	}
	return 0, false
}
