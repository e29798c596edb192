package measure

// Vars maps field labels to values. Labels are case-sensitive. Names are kept
// in the order they were first set.
type Vars struct {
	names []string
	vals  map[string]float64
}

// NewVars creates an empty variable context.
func NewVars() *Vars {
	return &Vars{vals: make(map[string]float64)}
}

// Set sets the value of a label. Setting an existing label keeps its position.
func (v *Vars) Set(name string, x float64) {
	if _, ok := v.vals[name]; !ok {
		v.names = append(v.names, name)
	}
	v.vals[name] = x
}

// setDefault sets the value of a label only if it has none, so that the first
// source to supply a label wins. It returns whether the value was set.
func (v *Vars) setDefault(name string, x float64) bool {
	if _, ok := v.vals[name]; ok {
		return false
	}
	v.names = append(v.names, name)
	v.vals[name] = x
	return true
}

// Lookup gets the value of a label.
func (v *Vars) Lookup(name string) (float64, bool) {
	x, ok := v.vals[name]
	return x, ok
}

// Names returns the labels in the context in insertion order.
func (v *Vars) Names() []string {
	return append([]string(nil), v.names...)
}

// Len returns the number of labels in the context.
func (v *Vars) Len() int {
	return len(v.names)
}
