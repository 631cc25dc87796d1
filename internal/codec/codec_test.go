package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/compiler"
	"codec-generator/internal/schema"
	"codec-generator/internal/wiretype"
	"codec-generator/wire"
)

func newRegistry(t *testing.T, s *schema.Schema) *Registry {
	t.Helper()

	prog, err := compiler.Compile(context.Background(), s, compiler.DefaultOptions())
	require.NoError(t, err)

	reg, err := NewRegistry(prog)
	require.NoError(t, err)

	return reg
}

func codecOf(t *testing.T, reg *Registry, name string) *Codec {
	t.Helper()

	c, err := reg.Codec(name)
	require.NoError(t, err)

	return c
}

var kitchenSchema = &schema.Schema{
	Package: "kitchen",
	Enums: []schema.Enum{
		{Name: "Color", Variants: schema.VariantList{
			{Name: "Red", Value: 0},
			{Name: "Green", Value: 1},
			{Name: "Blue", Value: 5},
		}},
	},
	Entities: []schema.Entity{
		{Name: "Point", Fields: []schema.Field{
			{ID: 1, Name: "x", Wire: "sint32"},
			{ID: 2, Name: "y", Wire: "sint32"},
		}},
		{Name: "Sink", ID: schema.ComponentID(7), Fields: []schema.Field{
			{ID: 3, Name: "flag", Wire: "bool"},
			{ID: 4, Name: "i32", Wire: "int32"},
			{ID: 5, Name: "i64", Wire: "int64"},
			{ID: 6, Name: "u32", Wire: "uint32"},
			{ID: 7, Name: "u64", Wire: "uint64"},
			{ID: 8, Name: "s32", Wire: "sint32"},
			{ID: 9, Name: "s64", Wire: "sint64"},
			{ID: 10, Name: "f32", Wire: "fixed32"},
			{ID: 11, Name: "f64", Wire: "fixed64"},
			{ID: 12, Name: "sf32", Wire: "sfixed32"},
			{ID: 13, Name: "sf64", Wire: "sfixed64"},
			{ID: 14, Name: "fl", Wire: "float"},
			{ID: 15, Name: "db", Wire: "double"},
			{ID: 16, Name: "name", Wire: "string"},
			{ID: 17, Name: "blob", Wire: "bytes"},
			{ID: 18, Name: "eid", Type: "wire.EntityID", Wire: "EntityId"},
			{ID: 19, Name: "owner", Wire: "Entity"},
			{ID: 20, Name: "color", Type: "Color", Wire: "enum"},
			{ID: 21, Name: "origin", Type: "Point", Wire: "type"},
			{ID: 22, Name: "tags", Type: "[]string", Wire: "list<string>"},
			{ID: 23, Name: "points", Type: "[]Point", Wire: "list<type>"},
			{ID: 24, Name: "colors", Type: "[]Color", Wire: "list<enum>"},
			{ID: 25, Name: "scores", Type: "map[string]int32", Wire: "map<string,int32>"},
			{ID: 26, Name: "by_color", Type: "map[Color]Point", Wire: "map<enum,type>"},
			{ID: 27, Name: "nick", Type: "*string", Wire: "option<string>"},
			{ID: 28, Name: "home", Type: "*Point", Wire: "option<type>"},
			{ID: 29, Name: "shade", Type: "*Color", Wire: "option<enum>"},
			{ID: 30, Name: "groups", Type: "map[uint32][]int64", Wire: "map<uint32,list<int64>>"},
		}},
	},
}

func point(x, y int32) Record {
	return NewFull("Point", map[string]any{"x": x, "y": y})
}

func color(t *testing.T, reg *Registry, name string) EnumValue {
	t.Helper()

	v, err := reg.EnumValue("Color", name)
	require.NoError(t, err)

	return v
}

func fullSink(t *testing.T, reg *Registry) Record {
	return NewFull("Sink", map[string]any{
		"flag":     true,
		"i32":      int32(-3),
		"i64":      int64(1 << 40),
		"u32":      uint32(7),
		"u64":      uint64(1 << 50),
		"s32":      int32(-9),
		"s64":      int64(-10),
		"f32":      uint32(11),
		"f64":      uint64(12),
		"sf32":     int32(-13),
		"sf64":     int64(-14),
		"fl":       float32(1.5),
		"db":       2.25,
		"name":     "sink",
		"blob":     []byte{1, 2, 3},
		"eid":      wire.EntityID(99),
		"owner":    wire.EntityRef(100),
		"color":    color(t, reg, "Blue"),
		"origin":   point(1, 2),
		"tags":     []any{"a", "b"},
		"points":   []any{point(3, 4), point(5, 6)},
		"colors":   []any{color(t, reg, "Red"), color(t, reg, "Blue")},
		"scores":   map[any]any{"a": int32(1), "b": int32(2)},
		"by_color": map[any]any{color(t, reg, "Green"): point(7, 8)},
		"nick":     "nick",
		"home":     point(9, 10),
		"shade":    nil,
		"groups":   map[any]any{uint32(1): []any{int64(1), int64(2)}, uint32(2): []any{}},
	})
}

func TestMassScenario(t *testing.T) {
	reg := newRegistry(t, &schema.Schema{Entities: []schema.Entity{
		{Name: "Mass", ID: schema.ComponentID(1), Fields: []schema.Field{
			{ID: 1, Name: "x", Wire: "double"},
			{ID: 2, Name: "thrust", Wire: "float"},
		}},
	}})
	mass := codecOf(t, reg, "Mass")

	full := NewFull("Mass", map[string]any{"x": 0.2, "thrust": float32(0)})

	obj := wire.NewObject()
	require.NoError(t, mass.EncodeFull(full, obj))
	assert.Equal(t, []wire.FieldID{1, 2}, obj.FieldIDs())
	assert.Equal(t, 0.2, obj.GetDouble(1))
	assert.Equal(t, float32(0), obj.GetFloat(2))

	got, err := mass.DecodeFull(obj)
	require.NoError(t, err)
	assert.Equal(t, full, got)

	delta := NewDelta("Mass", map[string]any{"thrust": float32(0)})

	obj = wire.NewObject()
	require.NoError(t, mass.EncodeDelta(delta, obj))
	assert.Equal(t, []wire.FieldID{2}, obj.FieldIDs())

	gotDelta, err := mass.DecodeDelta(obj)
	require.NoError(t, err)
	assert.Equal(t, delta, gotDelta)
	assert.False(t, gotDelta.Has("x"))
}

func TestFullRoundTrip(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	want := fullSink(t, reg)

	obj := wire.NewObject()
	require.NoError(t, sink.EncodeFull(want, obj))

	got, err := sink.DecodeFull(obj)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFullRoundTrip_ZeroValues(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	p := codecOf(t, reg, "Point")

	obj := wire.NewObject()
	require.NoError(t, p.EncodeFull(point(0, 0), obj))
	assert.Equal(t, 1, obj.Count(1))

	got, err := p.DecodeFull(obj)
	require.NoError(t, err)
	assert.Equal(t, point(0, 0), got)
}

func TestFull_OptionsMayBeOmitted(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	rec := fullSink(t, reg)
	delete(rec.Fields, "nick")
	delete(rec.Fields, "home")

	obj := wire.NewObject()
	require.NoError(t, sink.EncodeFull(rec, obj))
	assert.Zero(t, obj.Count(27))
	assert.Zero(t, obj.ObjectCount(28))

	got, err := sink.DecodeFull(obj)
	require.NoError(t, err)
	assert.Nil(t, got.Fields["nick"])
	assert.Nil(t, got.Fields["home"])
	assert.True(t, got.Has("home"))
}

func TestDeltaRoundTrip_PartialPresence(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	tests := []struct {
		name   string
		fields map[string]any
		ids    []wire.FieldID
	}{
		{"empty", map[string]any{}, []wire.FieldID{}},
		{"zero scalar", map[string]any{"i32": int32(0)}, []wire.FieldID{4}},
		{"empty string", map[string]any{"name": ""}, []wire.FieldID{16}},
		{"empty bytes", map[string]any{"blob": []byte{}}, []wire.FieldID{17}},
		{"enum", map[string]any{"color": color(t, reg, "Red")}, []wire.FieldID{20}},
		{
			"nested delta",
			map[string]any{"origin": NewDelta("Point", map[string]any{"y": int32(5)})},
			[]wire.FieldID{21},
		},
		{"empty list", map[string]any{"tags": []any{}}, []wire.FieldID{22}},
		{"empty nested list", map[string]any{"points": []any{}}, []wire.FieldID{23}},
		{"empty map", map[string]any{"scores": map[any]any{}}, []wire.FieldID{25}},
		{"list", map[string]any{"colors": []any{color(t, reg, "Green")}}, []wire.FieldID{24}},
		{
			"map of lists",
			map[string]any{"groups": map[any]any{uint32(4): []any{int64(8)}}},
			[]wire.FieldID{30},
		},
		{"option collapses to its payload", map[string]any{"nick": "n"}, []wire.FieldID{27}},
		{
			"option of nested carries a nested delta",
			map[string]any{"home": NewDelta("Point", map[string]any{})},
			[]wire.FieldID{28},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := NewDelta("Sink", tt.fields)

			obj := wire.NewObject()
			require.NoError(t, sink.EncodeDelta(delta, obj))
			assert.Equal(t, tt.ids, obj.FieldIDs())

			got, err := sink.DecodeDelta(obj)
			require.NoError(t, err)
			assert.Equal(t, delta, got)
		})
	}
}

func TestDelta_EmptyListIsNotAbsent(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	obj := wire.NewObject()
	require.NoError(t, sink.EncodeDelta(NewDelta("Sink", map[string]any{"tags": []any{}}), obj))
	assert.True(t, obj.IsCleared(22))

	got, err := sink.DecodeDelta(obj)
	require.NoError(t, err)

	tags, ok := got.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{}, tags)
	assert.False(t, got.Has("points"))
}

func TestInvalidOrdinal(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	obj := wire.NewObject()
	require.NoError(t, sink.EncodeFull(fullSink(t, reg), obj))
	obj.AddEnum(20, 42)

	_, err := sink.DecodeFull(obj)
	require.Error(t, err)
	assert.ErrorIs(t, err, wire.ErrInvalidOrdinal)

	var ordErr *wire.InvalidOrdinalError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, "Color", ordErr.Enum)
	assert.Equal(t, uint32(42), ordErr.Ordinal)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "color", fieldErr.Field)

	delta := wire.NewObject()
	delta.AddEnumList(24, []uint32{0, 3})

	_, err = sink.DecodeDelta(delta)
	assert.ErrorIs(t, err, wire.ErrInvalidOrdinal)

	err = sink.EncodeDelta(NewDelta("Sink", map[string]any{"shade": EnumValue{Name: "Mauve", Ordinal: 2}}), wire.NewObject())
	assert.ErrorIs(t, err, wire.ErrInvalidOrdinal)
}

func TestEnumTotality(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	for _, name := range []string{"Red", "Green", "Blue"} {
		v := color(t, reg, name)

		obj := wire.NewObject()
		require.NoError(t, sink.EncodeDelta(NewDelta("Sink", map[string]any{"color": v}), obj))
		assert.Equal(t, v.Ordinal, obj.GetEnum(20))

		got, err := sink.DecodeDelta(obj)
		require.NoError(t, err)
		assert.Equal(t, v, got.Fields["color"])
	}

	_, err := reg.EnumValue("Color", "Mauve")
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func nestedSchema() *schema.Schema {
	return &schema.Schema{Entities: []schema.Entity{
		{Name: "Outer", Fields: []schema.Field{
			{ID: 1, Name: "middle", Type: "*Middle", Wire: "option<type>"},
			{ID: 2, Name: "label", Wire: "string"},
		}},
		{Name: "Middle", Fields: []schema.Field{
			{ID: 1, Name: "inner", Type: "*Inner", Wire: "option<type>"},
		}},
		{Name: "Inner", Fields: []schema.Field{
			{ID: 1, Name: "value", Wire: "int32"},
			{ID: 2, Name: "tags", Type: "[]string", Wire: "list<string>"},
			{ID: 3, Name: "blob", Wire: "bytes"},
		}},
	}}
}

func threeLevels() *Record {
	return NewDelta("Outer", map[string]any{
		"label": "outer",
		"middle": NewDelta("Middle", map[string]any{
			"inner": NewDelta("Inner", map[string]any{
				"value": int32(1),
				"tags":  []any{"a"},
				"blob":  []byte{1},
			}),
		}),
	})
}

func innerOf(rec *Record) *Record {
	return rec.Fields["middle"].(*Record).Fields["inner"].(*Record)
}

func TestCopyDelta_IsIndependent(t *testing.T) {
	reg := newRegistry(t, nestedSchema())
	outer := codecOf(t, reg, "Outer")

	orig := threeLevels()
	cp := outer.CopyDelta(orig)
	require.Equal(t, orig, cp)

	inner := innerOf(cp)
	inner.Set("value", int32(2))
	inner.Fields["tags"].([]any)[0] = "b"
	inner.Fields["blob"].([]byte)[0] = 9

	assert.Equal(t, int32(1), innerOf(orig).Fields["value"])
	assert.Equal(t, []any{"a"}, innerOf(orig).Fields["tags"])
	assert.Equal(t, []byte{1}, innerOf(orig).Fields["blob"])

	assert.Nil(t, outer.CopyDelta(nil))
}

func TestCopyDelta_AbsentStaysAbsent(t *testing.T) {
	reg := newRegistry(t, nestedSchema())
	outer := codecOf(t, reg, "Outer")

	cp := outer.CopyDelta(NewDelta("Outer", map[string]any{"label": "x"}))
	assert.False(t, cp.Has("middle"))
	assert.Equal(t, "x", cp.Fields["label"])
}

func TestReleaseDelta(t *testing.T) {
	reg := newRegistry(t, nestedSchema())
	outer := codecOf(t, reg, "Outer")

	orig := threeLevels()
	cp := outer.CopyDelta(orig)
	middle := orig.Fields["middle"].(*Record)

	outer.ReleaseDelta(orig)
	assert.False(t, orig.Has("middle"))
	assert.False(t, middle.Has("inner"))
	assert.Equal(t, "outer", orig.Fields["label"])

	assert.NotPanics(t, func() { outer.ReleaseDelta(orig) })
	assert.NotPanics(t, func() { outer.ReleaseDelta(nil) })

	assert.Equal(t, int32(1), innerOf(cp).Fields["value"])

	outer.ReleaseDelta(cp)
	assert.False(t, cp.Has("middle"))
}

func TestNestedDeltaRoundTrip(t *testing.T) {
	reg := newRegistry(t, nestedSchema())
	outer := codecOf(t, reg, "Outer")

	delta := threeLevels()

	obj := wire.NewObject()
	require.NoError(t, outer.EncodeDelta(delta, obj))
	assert.Equal(t, 1, obj.ObjectCount(1))

	got, err := outer.DecodeDelta(obj)
	require.NoError(t, err)
	assert.Equal(t, delta, got)
}

func TestEncodeErrors(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	p := codecOf(t, reg, "Point")

	tests := []struct {
		name    string
		rec     Record
		wantErr error
	}{
		{"wrong leaf type", NewFull("Point", map[string]any{"x": 1, "y": int32(2)}), ErrTypeMismatch},
		{"missing field", NewFull("Point", map[string]any{"x": int32(1)}), ErrMissingField},
		{"unknown field", NewFull("Point", map[string]any{"x": int32(1), "y": int32(2), "z": int32(3)}), ErrUnknownField},
		{"wrong record", NewFull("Sink", map[string]any{"x": int32(1), "y": int32(2)}), ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.EncodeFull(tt.rec, wire.NewObject())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	sink := codecOf(t, reg, "Sink")

	rec := fullSink(t, reg)
	rec.Fields["tags"] = []any{"a", 1}
	err := sink.EncodeFull(rec, wire.NewObject())
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "Sink.tags")
	assert.Contains(t, err.Error(), "[]string")

	err = sink.EncodeDelta(NewDelta("Sink", map[string]any{"origin": point(1, 2)}), wire.NewObject())
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "*PointUpdate")

	err = sink.EncodeDelta(NewDelta("Sink", map[string]any{"tags": []int{}}), wire.NewObject())
	assert.ErrorIs(t, err, ErrTypeMismatch)

	assert.NoError(t, sink.EncodeDelta(nil, wire.NewObject()))
}

func TestComponentBuffers(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	id, ok := sink.ComponentID()
	require.True(t, ok)
	assert.Equal(t, wire.ComponentID(7), id)

	byID, err := reg.Component(7)
	require.NoError(t, err)
	assert.Same(t, sink, byID)

	_, err = reg.Component(8)
	assert.ErrorIs(t, err, ErrUnknownEntity)

	data, err := sink.EncodeComponentData(fullSink(t, reg))
	require.NoError(t, err)
	assert.Equal(t, wire.ComponentID(7), data.ID)

	full, err := sink.DecodeComponentData(data)
	require.NoError(t, err)
	assert.Equal(t, fullSink(t, reg), full)

	update, err := sink.EncodeComponentUpdate(NewDelta("Sink", map[string]any{"u32": uint32(3)}))
	require.NoError(t, err)
	assert.Equal(t, []wire.FieldID{6}, update.Fields().FieldIDs())

	delta, err := sink.DecodeComponentUpdate(update)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), delta.Fields["u32"])

	_, err = sink.DecodeComponentData(wire.NewComponentData(8))
	assert.ErrorIs(t, err, ErrComponentMismatch)

	p := codecOf(t, reg, "Point")
	_, ok = p.ComponentID()
	assert.False(t, ok)

	_, err = p.EncodeComponentData(point(1, 1))
	assert.ErrorIs(t, err, ErrNotComponent)

	_, err = p.DecodeComponentUpdate(wire.NewComponentUpdate(1))
	assert.ErrorIs(t, err, ErrNotComponent)
}

func TestRegistry(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	assert.Equal(t, []string{"Point", "Sink"}, reg.Names())

	_, err := reg.Codec("Nope")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestNewRegistry_UnknownReference(t *testing.T) {
	prog := &compiler.Program{Entities: []*compiler.Entity{
		{Name: "A", Fields: []compiler.Field{{ID: 1, Name: "b", Wire: wiretype.Nested("B")}}},
	}}

	_, err := NewRegistry(prog)
	assert.ErrorIs(t, err, ErrUnknownEntity)

	prog = &compiler.Program{Entities: []*compiler.Entity{
		{Name: "A", Fields: []compiler.Field{{ID: 1, Name: "c", Wire: wiretype.List(wiretype.Enum("C"))}}},
	}}

	_, err = NewRegistry(prog)
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestCloneFull(t *testing.T) {
	reg := newRegistry(t, kitchenSchema)
	sink := codecOf(t, reg, "Sink")

	orig := fullSink(t, reg)
	cp := sink.CloneFull(orig)
	require.Equal(t, orig, cp)

	cp.Fields["points"].([]any)[0].(Record).Fields["x"] = int32(42)
	cp.Fields["blob"].([]byte)[0] = 42
	cp.Fields["groups"].(map[any]any)[uint32(1)].([]any)[0] = int64(42)

	assert.Equal(t, fullSink(t, reg), orig)
}
