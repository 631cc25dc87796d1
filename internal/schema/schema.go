package schema

import "slices"

// CurrentVersion is the schema file format version written by Marshal.
const CurrentVersion = "1"

// Schema is one unit of descriptors, generated into one Go package.
type Schema struct {
	// Version of the schema file format.
	Version string `yaml:"version,omitempty"`

	// Package is the Go package name of the generated code.
	Package string `yaml:"package,omitempty"`

	// Enums declares the enums entities may refer to.
	Enums []Enum `yaml:"enums,omitempty"`

	// Entities declares components (with an id) and value types (without).
	Entities []Entity `yaml:"entities,omitempty"`
}

// Entity describes a record type with field-id-addressed fields.
type Entity struct {
	Name string `yaml:"name"`

	// ID is the component id. Entities without one are value types that only
	// ever travel embedded in another entity.
	ID *uint32 `yaml:"id,omitempty"`

	Doc string `yaml:"doc,omitempty"`

	// Fields in declaration order.
	Fields []Field `yaml:"fields"`
}

// IsComponent reports whether the entity carries a component id.
func (e *Entity) IsComponent() bool {
	return e.ID != nil
}

// Field describes one entity field.
type Field struct {
	// ID is the field's wire address; zero means unset.
	ID uint32 `yaml:"id"`

	Name string `yaml:"name"`

	// Type is the declared container type in Go syntax ("[]Coordinates",
	// "map[string]int32"). The type and enum markers take the referenced
	// name from it; composite markers take their type arguments from it.
	Type string `yaml:"type,omitempty"`

	// Wire is the wire marker ("double", "list<type>", "map<string,int32>").
	Wire string `yaml:"wire"`

	Doc string `yaml:"doc,omitempty"`
}

// Enum describes an enum and its variants.
type Enum struct {
	Name     string      `yaml:"name"`
	Doc      string      `yaml:"doc,omitempty"`
	Variants VariantList `yaml:"variants"`
}

// Variant is one enum variant and its wire ordinal.
type Variant struct {
	Name  string `yaml:"name"`
	Value uint32 `yaml:"value"`
	Doc   string `yaml:"doc,omitempty"`
}

// VariantList keeps variants in declaration order.
type VariantList []Variant

// Entity returns the entity named name.
func (s *Schema) Entity(name string) (*Entity, bool) {
	i := slices.IndexFunc(s.Entities, func(e Entity) bool { return e.Name == name })
	if i < 0 {
		return nil, false
	}

	return &s.Entities[i], true
}

// Enum returns the enum named name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	i := slices.IndexFunc(s.Enums, func(e Enum) bool { return e.Name == name })
	if i < 0 {
		return nil, false
	}

	return &s.Enums[i], true
}

// Merge appends the descriptors of other. The package name is kept unless
// s has none.
func (s *Schema) Merge(other *Schema) {
	if s.Package == "" {
		s.Package = other.Package
	}

	s.Enums = append(s.Enums, other.Enums...)
	s.Entities = append(s.Entities, other.Entities...)
}

// ComponentID returns a pointer to id, for building component descriptors.
func ComponentID(id uint32) *uint32 {
	return &id
}
