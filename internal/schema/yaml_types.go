package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- VariantList YAML methods ---

// UnmarshalYAML accepts either a sequence of variant mappings or a single
// mapping from variant name to ordinal. The mapping form keeps document
// order.
//
//	variants: [{name: Unknown, value: 0}, {name: Connected, value: 2}]
//	variants: {Unknown: 0, Connected: 2}
func (v *VariantList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := checkKeys(item, variantKeys); err != nil {
				return err
			}
		}

		var list []Variant
		if err := node.Decode(&list); err != nil {
			return err
		}

		*v = list

		return nil

	case yaml.MappingNode:
		list := make(VariantList, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var value uint32
			if err := node.Content[i+1].Decode(&value); err != nil {
				return fmt.Errorf("variant %s: %w", node.Content[i].Value, err)
			}

			list = append(list, Variant{Name: node.Content[i].Value, Value: value})
		}

		*v = list

		return nil

	default:
		return fmt.Errorf("expected sequence or mapping of variants, got %v", node.Kind)
	}
}

// --- Field YAML methods ---

// fieldFields avoids recursing into Field.UnmarshalYAML.
type fieldFields Field

// UnmarshalYAML accepts the mapping form or the compact scalar form
// "<id> <name> <wire> [<type>]". The compact form splits on blanks, so a
// marker written with spaces ("map<string, int32>") needs the mapping form.
// In a flow mapping a marker holding a comma must be quoted.
//
//   - {id: 1, name: x, wire: double}
//   - 2 thrust float
//   - 3 waypoints list<type> []Coordinates
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseCompactField(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*f = parsed

		return nil
	}

	if err := checkKeys(node, fieldKeys); err != nil {
		return err
	}

	var raw fieldFields
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*f = Field(raw)

	return nil
}

// ParseCompactField parses "<id> <name> <wire> [<type>]".
func ParseCompactField(s string) (Field, error) {
	parts := strings.Fields(s)
	if len(parts) < 3 {
		return Field{}, fmt.Errorf("compact field %q: want \"<id> <name> <wire> [<type>]\"", s)
	}

	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return Field{}, fmt.Errorf("compact field %q: bad id: %w", s, err)
	}

	return Field{
		ID:   uint32(id),
		Name: parts[1],
		Wire: parts[2],
		Type: strings.Join(parts[3:], " "),
	}, nil
}

var (
	fieldKeys   = []string{"id", "name", "type", "wire", "doc"}
	variantKeys = []string{"name", "value", "doc"}
)

// checkKeys rejects mapping keys outside known. node.Decode does not carry
// the strict mode of the outer decoder into custom unmarshalers.
func checkKeys(node *yaml.Node, known []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if !slices.Contains(known, k.Value) {
			return fmt.Errorf("line %d: unknown key %q", k.Line, k.Value)
		}
	}

	return nil
}
