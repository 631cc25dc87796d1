package codec

import (
	"fmt"
	"maps"
	"slices"

	"codec-generator/internal/compiler"
	"codec-generator/internal/wiretype"
	"codec-generator/wire"
)

// Registry holds one codec per entity of a compiled program.
type Registry struct {
	program  *compiler.Program
	entities map[string]*Codec
	enums    map[string]*compiler.Enum
}

// NewRegistry builds the codecs of every entity in p.
func NewRegistry(p *compiler.Program) (*Registry, error) {
	r := &Registry{
		program:  p,
		entities: make(map[string]*Codec, len(p.Entities)),
		enums:    make(map[string]*compiler.Enum, len(p.Enums)),
	}

	for _, en := range p.Enums {
		r.enums[en.Name] = en
	}

	for _, e := range p.Entities {
		c := &Codec{entity: e, byName: make(map[string]int, len(e.Fields))}

		for i, f := range e.Fields {
			n, err := r.build(f.Wire)
			if err != nil {
				return nil, &FieldError{Entity: e.Name, Field: f.Name, Err: err}
			}

			c.fields = append(c.fields, fieldCodec{field: &e.Fields[i], node: n})
			c.byName[f.Name] = i
		}

		r.entities[e.Name] = c
	}

	return r, nil
}

// Codec returns the codec of the named entity.
func (r *Registry) Codec(name string) (*Codec, error) {
	c, ok := r.entities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}

	return c, nil
}

// Component returns the codec of the component with the given id.
func (r *Registry) Component(id wire.ComponentID) (*Codec, error) {
	for _, e := range r.program.Components() {
		if wire.ComponentID(e.ComponentID) == id {
			return r.entities[e.Name], nil
		}
	}

	return nil, fmt.Errorf("%w: no component %d", ErrUnknownEntity, id)
}

// Names returns the entity names in program order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.program.Entities))
	for _, e := range r.program.Entities {
		names = append(names, e.Name)
	}

	return names
}

// EnumValue returns the value of the named variant.
func (r *Registry) EnumValue(enum, variant string) (EnumValue, error) {
	en, ok := r.enums[enum]
	if !ok {
		return EnumValue{}, fmt.Errorf("%w: %s", ErrUnknownEnum, enum)
	}

	v, ok := en.Variant(variant)
	if !ok {
		return EnumValue{}, fmt.Errorf("%w: %s has no variant %s", ErrUnknownEnum, enum, variant)
	}

	return EnumValue{Name: v.Name, Ordinal: v.Value}, nil
}

type fieldCodec struct {
	field *compiler.Field
	node  *node
}

// Codec encodes and decodes the records of one entity.
type Codec struct {
	entity *compiler.Entity
	fields []fieldCodec
	byName map[string]int
}

// Entity returns the compiled entity the codec serves.
func (c *Codec) Entity() *compiler.Entity {
	return c.entity
}

// ComponentID returns the component id, if the entity is a component.
func (c *Codec) ComponentID() (wire.ComponentID, bool) {
	return wire.ComponentID(c.entity.ComponentID), c.entity.IsComponent
}

func (c *Codec) fail(f *compiler.Field, err error) error {
	return &FieldError{Entity: c.entity.Name, Field: f.Name, Err: err}
}

func (c *Codec) check(rec *Record) error {
	if rec.Type != "" && rec.Type != c.entity.Name {
		return fmt.Errorf("%w: record of %s given to %s codec", ErrTypeMismatch, rec.Type, c.entity.Name)
	}

	for _, name := range slices.Sorted(maps.Keys(rec.Fields)) {
		if _, ok := c.byName[name]; !ok {
			return &FieldError{Entity: c.entity.Name, Field: name, Err: ErrUnknownField}
		}
	}

	return nil
}

// EncodeFull writes every field of rec into obj. Option fields may be left
// out of rec; any other missing field is an error.
func (c *Codec) EncodeFull(rec Record, obj wire.Object) error {
	return c.encodeFull(obj, rec)
}

func (c *Codec) encodeFull(obj wire.Object, rec Record) error {
	if err := c.check(&rec); err != nil {
		return err
	}

	for _, fc := range c.fields {
		v, ok := rec.Fields[fc.field.Name]
		if !ok && fc.field.Wire.Kind != wiretype.KindOption {
			return c.fail(fc.field, ErrMissingField)
		}

		if err := fc.node.encodeFull(obj, fc.field.ID, v); err != nil {
			return c.fail(fc.field, err)
		}
	}

	return nil
}

// DecodeFull reads a full record from obj. Absent option fields decode as
// nil.
func (c *Codec) DecodeFull(obj wire.Object) (Record, error) {
	return c.decodeFull(obj)
}

func (c *Codec) decodeFull(obj wire.Object) (Record, error) {
	out := NewFull(c.entity.Name, make(map[string]any, len(c.fields)))

	for _, fc := range c.fields {
		v, err := fc.node.decodeFull(obj, fc.field.ID)
		if err != nil {
			return Record{}, c.fail(fc.field, err)
		}

		out.Fields[fc.field.Name] = v
	}

	return out, nil
}

// EncodeDelta writes the present fields of rec into obj. A nil record
// writes nothing.
func (c *Codec) EncodeDelta(rec *Record, obj wire.Object) error {
	if rec == nil {
		return nil
	}

	return c.encodeDelta(obj, rec)
}

func (c *Codec) encodeDelta(obj wire.Object, rec *Record) error {
	if err := c.check(rec); err != nil {
		return err
	}

	for _, fc := range c.fields {
		v, ok := rec.Fields[fc.field.Name]
		if !ok {
			continue
		}

		if err := fc.node.encodeDelta(obj, fc.field.ID, v); err != nil {
			return c.fail(fc.field, err)
		}
	}

	return nil
}

// DecodeDelta reads a delta record from obj. Fields with no update are
// absent from the result.
func (c *Codec) DecodeDelta(obj wire.Object) (*Record, error) {
	return c.decodeDelta(obj)
}

func (c *Codec) decodeDelta(obj wire.Object) (*Record, error) {
	out := NewDelta(c.entity.Name, nil)

	for _, fc := range c.fields {
		v, ok, err := fc.node.decodeDelta(obj, fc.field.ID)
		if err != nil {
			return nil, c.fail(fc.field, err)
		}

		if ok {
			out.Fields[fc.field.Name] = v
		}
	}

	return out, nil
}

// CloneFull returns a deep copy of a full record.
func (c *Codec) CloneFull(rec Record) Record {
	out := NewFull(rec.Type, make(map[string]any, len(rec.Fields)))

	for name, v := range rec.Fields {
		if i, ok := c.byName[name]; ok {
			v = c.fields[i].node.cloneFull(v)
		}

		out.Fields[name] = v
	}

	return out
}

// CopyDelta returns a deep copy of a delta record. Absent fields stay
// absent and nested deltas are copied, so the result shares nothing with
// rec.
func (c *Codec) CopyDelta(rec *Record) *Record {
	if rec == nil {
		return nil
	}

	out := NewDelta(rec.Type, make(map[string]any, len(rec.Fields)))

	for name, v := range rec.Fields {
		if i, ok := c.byName[name]; ok {
			v = c.fields[i].node.copyDelta(v)
		}

		out.Fields[name] = v
	}

	return out
}

// ReleaseDelta releases the nested deltas owned by rec, deepest first, and
// drops them from rec. Releasing twice is a no-op.
func (c *Codec) ReleaseDelta(rec *Record) {
	if rec == nil {
		return
	}

	for _, fc := range c.fields {
		if fc.node.releaseDelta == nil {
			continue
		}

		v, ok := rec.Fields[fc.field.Name]
		if !ok {
			continue
		}

		fc.node.releaseDelta(v)
		delete(rec.Fields, fc.field.Name)
	}
}

func (c *Codec) componentID() (wire.ComponentID, error) {
	id, ok := c.ComponentID()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotComponent, c.entity.Name)
	}

	return id, nil
}

func (c *Codec) checkComponent(got wire.ComponentID) error {
	id, err := c.componentID()
	if err != nil {
		return err
	}

	if err := wire.CheckComponent(id, got); err != nil {
		return fmt.Errorf("%s: %w", c.entity.Name, err)
	}

	return nil
}

// EncodeComponentData writes a full record into a new component data buffer.
func (c *Codec) EncodeComponentData(rec Record) (*wire.ComponentData, error) {
	id, err := c.componentID()
	if err != nil {
		return nil, err
	}

	data := wire.NewComponentData(id)
	if err := c.encodeFull(data.Fields(), rec); err != nil {
		return nil, err
	}

	return data, nil
}

// DecodeComponentData reads a full record from a component data buffer.
func (c *Codec) DecodeComponentData(data *wire.ComponentData) (Record, error) {
	if err := c.checkComponent(data.ID); err != nil {
		return Record{}, err
	}

	return c.decodeFull(data.Fields())
}

// EncodeComponentUpdate writes a delta record into a new component update
// buffer.
func (c *Codec) EncodeComponentUpdate(rec *Record) (*wire.ComponentUpdate, error) {
	id, err := c.componentID()
	if err != nil {
		return nil, err
	}

	update := wire.NewComponentUpdate(id)
	if err := c.EncodeDelta(rec, update.Fields()); err != nil {
		return nil, err
	}

	return update, nil
}

// DecodeComponentUpdate reads a delta record from a component update buffer.
func (c *Codec) DecodeComponentUpdate(update *wire.ComponentUpdate) (*Record, error) {
	if err := c.checkComponent(update.ID); err != nil {
		return nil, err
	}

	return c.decodeDelta(update.Fields())
}
