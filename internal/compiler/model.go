package compiler

import (
	"codec-generator/internal/diagnostic"
	"codec-generator/internal/rep"
	"codec-generator/internal/resolve"
	"codec-generator/internal/wiretype"
)

// Field is a compiled entity field.
type Field struct {
	ID     uint32
	Name   string
	GoName string
	Doc    string

	// Declared is the declared container type the marker resolved against.
	Declared resolve.TypeExpr
	Wire     *wiretype.Type
	Full     *rep.Type
	Delta    *rep.Type
}

// Entity is a compiled entity. Fields keep declaration order.
type Entity struct {
	Name        string
	Doc         string
	IsComponent bool
	ComponentID uint32
	Fields      []Field
}

// FullName is the name of the entity's full representation.
func (e *Entity) FullName() string {
	return rep.FullName(e.Name)
}

// DeltaName is the name of the entity's delta representation.
func (e *Entity) DeltaName() string {
	return rep.DeltaName(e.Name)
}

// Refs returns the entities and enums referenced by any field, without
// duplicates.
func (e *Entity) Refs() (entities, enums []string) {
	seenEnt := map[string]struct{}{}
	seenEnum := map[string]struct{}{}

	for _, f := range e.Fields {
		ents, ens := f.Wire.Refs()
		for _, n := range ents {
			if _, ok := seenEnt[n]; !ok {
				seenEnt[n] = struct{}{}
				entities = append(entities, n)
			}
		}

		for _, n := range ens {
			if _, ok := seenEnum[n]; !ok {
				seenEnum[n] = struct{}{}
				enums = append(enums, n)
			}
		}
	}

	return entities, enums
}

// Field returns the field with the given wire id.
func (e *Entity) Field(id uint32) (*Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].ID == id {
			return &e.Fields[i], true
		}
	}

	return nil, false
}

// Variant is a compiled enum variant.
type Variant struct {
	Name string
	// GoName is the generated constant name: the enum name followed by the
	// variant name.
	GoName string
	Value  uint32
	Doc    string
}

// Enum is a compiled enum. Variants keep declaration order.
type Enum struct {
	Name     string
	Doc      string
	Variants []Variant
}

// FromOrdinal returns the variant with wire ordinal v.
func (e *Enum) FromOrdinal(v uint32) (Variant, bool) {
	for _, variant := range e.Variants {
		if variant.Value == v {
			return variant, true
		}
	}

	return Variant{}, false
}

// Variant returns the variant named name.
func (e *Enum) Variant(name string) (Variant, bool) {
	for _, variant := range e.Variants {
		if variant.Name == name {
			return variant, true
		}
	}

	return Variant{}, false
}

// Program is a compiled schema.
type Program struct {
	Package string
	// Entities are ordered so that an entity follows every entity it
	// references, unless references form a cycle, in which case declaration
	// order is kept.
	Entities []*Entity
	Enums    []*Enum

	// Diagnostics holds the warnings and notes of a successful compile.
	Diagnostics diagnostic.Diagnostics
}

// Entity returns the entity named name.
func (p *Program) Entity(name string) (*Entity, bool) {
	for _, e := range p.Entities {
		if e.Name == name {
			return e, true
		}
	}

	return nil, false
}

// Enum returns the enum named name.
func (p *Program) Enum(name string) (*Enum, bool) {
	for _, e := range p.Enums {
		if e.Name == name {
			return e, true
		}
	}

	return nil, false
}

// Components returns the component entities in program order.
func (p *Program) Components() []*Entity {
	var out []*Entity

	for _, e := range p.Entities {
		if e.IsComponent {
			out = append(out, e)
		}
	}

	return out
}
