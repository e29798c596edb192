package measure

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// formFile is the YAML layout of a form file.
type formFile struct {
	Form    `yaml:",inline"`
	Formula Formula `yaml:"formula"`
}

// LoadForm reads a form and its formula from a YAML document:
//
//	notation: station
//	start: 10+0,000
//	end: 12+5,000
//	extension: true
//	standard:
//	  - {label: Width, aliases: [Largura], value: 2}
//	custom:
//	  - {label: Length, length: true}
//	linked:
//	  - {property: Volume, source_item: Concrete, line: 3, value: 4.5}
//	formula: ["[Width]", "×", "[Length]"]
//
// Formula items are written as they display: [label] for a field, {label}
// for a linked variable, (text) or a bare number for a literal, and anything
// else as an operator. The long form {field: label}, {linked: label},
// {literal: text}, or {op: symbol} is also accepted.
//
// Linked variables without an ID or label get one as if linked in order, and
// colliding labels are made unique.
func LoadForm(r io.Reader) (*Form, Formula, error) {
	var doc formFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Form{}, nil, nil
		}
		return nil, nil, fmt.Errorf("measure: failed to parse form: %w", err)
	}
	linked := doc.Linked
	doc.Linked = nil
	for _, v := range linked {
		if v.ID == 0 || hasID(doc.Linked, v.ID) {
			doc.Linked = Link(doc.Linked, v)
			continue
		}
		if v.Label == "" {
			v.Label = LinkLabel(v.Property, v.SourceItem, v.Line)
		}
		v.Label = UniqueLabel(doc.Linked, v.Label)
		doc.Linked = append(doc.Linked, v)
	}
	return &doc.Form, doc.Formula, nil
}

func hasID(vs []LinkedVariable, id int) bool {
	for _, v := range vs {
		if v.ID == id {
			return true
		}
	}
	return false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*it = parseItem(node.Value)
		return nil
	case yaml.MappingNode:
		var m struct {
			Field   *string `yaml:"field"`
			Linked  *string `yaml:"linked"`
			Literal *string `yaml:"literal"`
			Op      *string `yaml:"op"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		n := 0
		if m.Field != nil {
			*it = Field(*m.Field)
			n++
		}
		if m.Linked != nil {
			*it = LinkedField(*m.Linked)
			n++
		}
		if m.Literal != nil {
			*it = Literal(*m.Literal)
			n++
		}
		if m.Op != nil {
			*it = Operator(*m.Op)
			n++
		}
		if n != 1 {
			return fmt.Errorf("line %d: formula item needs exactly one of field, linked, literal, or op", node.Line)
		}
		return nil
	default:
		return fmt.Errorf("line %d: formula item must be a string or mapping", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (it Item) MarshalYAML() (interface{}, error) {
	return it.String(), nil
}

// parseItem reads the display form of an item.
func parseItem(s string) Item {
	t := strings.TrimSpace(s)
	switch {
	case len(t) >= 2 && t[0] == '[' && t[len(t)-1] == ']':
		return Field(t[1 : len(t)-1])
	case len(t) >= 2 && t[0] == '{' && t[len(t)-1] == '}':
		return LinkedField(t[1 : len(t)-1])
	case len(t) >= 2 && t[0] == '(' && t[len(t)-1] == ')':
		return Literal(t[1 : len(t)-1])
	case t != "" && (t[0] == '.' || '0' <= t[0] && t[0] <= '9'):
		return Literal(t)
	default:
		return Operator(s)
	}
}
