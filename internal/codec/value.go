package codec

import (
	"maps"
	"slices"
)

// Record is a dynamic entity value.
type Record struct {
	// Type is the entity name. An empty Type is accepted by any codec.
	Type   string
	Fields map[string]any
}

// NewFull returns a full record of the entity typ.
func NewFull(typ string, fields map[string]any) Record {
	if fields == nil {
		fields = map[string]any{}
	}

	return Record{Type: typ, Fields: fields}
}

// NewDelta returns a delta record of the entity typ. Fields absent from the
// map carry no update.
func NewDelta(typ string, fields map[string]any) *Record {
	r := NewFull(typ, fields)
	return &r
}

// Get returns the value of the named field and whether it is present.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Has reports whether the named field is present.
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Set stores a field value, allocating the field map if needed.
func (r *Record) Set(name string, v any) *Record {
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}

	r.Fields[name] = v

	return r
}

// Names returns the present field names in no particular order.
func (r Record) Names() []string {
	return slices.Collect(maps.Keys(r.Fields))
}

// EnumValue is a dynamic enum value.
type EnumValue struct {
	Name    string
	Ordinal uint32
}

func (v EnumValue) String() string {
	return v.Name
}
