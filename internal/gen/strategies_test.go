package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codec-generator/internal/wiretype"
)

func TestExpressionHelpers(t *testing.T) {
	assert.Equal(t, "*update.X", deref("update.X"))
	assert.Equal(t, "update.X", addr("*update.X"))
	assert.Equal(t, "&data.X", addr("data.X"))
	assert.Equal(t, "(*update.X)", paren("*update.X"))
	assert.Equal(t, "data.X", paren("data.X"))
	assert.Equal(t, "// a\n//\n// b", goComment("a\n\nb  \n"))
}

func TestSimple(t *testing.T) {
	assert.True(t, simple(wiretype.Leaf(wiretype.KindDouble)))
	assert.True(t, simple(wiretype.Enum("Color")))
	assert.False(t, simple(wiretype.Leaf(wiretype.KindBytes)))
	assert.False(t, simple(wiretype.Option(wiretype.Leaf(wiretype.KindString))))
	assert.False(t, simple(wiretype.Nested("Point")))
}

func TestEmitter_EncodeDelta(t *testing.T) {
	tests := []struct {
		name string
		typ  *wiretype.Type
		want string
	}{
		{
			name: "leaf",
			typ:  wiretype.Leaf(wiretype.KindUint32),
			want: "if update.F != nil {\ntarget.AddUint32(4, *update.F)\n}\n",
		},
		{
			name: "option collapses",
			typ:  wiretype.Option(wiretype.Nested("Point")),
			want: "if update.F != nil {\nencodePointUpdate(update.F, target.AddObject(4))\n}\n",
		},
		{
			name: "empty list clears",
			typ:  wiretype.List(wiretype.Enum("Color")),
			want: "if update.F != nil {\nif len(*update.F) == 0 {\ntarget.ClearField(4)\n} else {\n" +
				"wire.AddEnumList(target, 4, *update.F)\n}\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c code

			newEmitter().encodeDelta(&c, tt.typ, "target", "4", "update.F", 0)

			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestEmitter_TracksImports(t *testing.T) {
	em := newEmitter()

	var c code
	em.decodeFull(&c, wiretype.Leaf(wiretype.KindString), "source", "1", "out.F", "E.f", 0)
	assert.Empty(t, em.imports)

	em.decodeFull(&c, wiretype.Enum("Color"), "source", "2", "out.G", "E.g", 0)
	em.cloneFull(&c, wiretype.Map(wiretype.Leaf(wiretype.KindString), wiretype.Leaf(wiretype.KindInt32)), "out.M", "data.M", 0)
	em.cloneFull(&c, wiretype.Leaf(wiretype.KindBytes), "out.B", "data.B", 0)

	assert.Contains(t, em.imports, "fmt")
	assert.Contains(t, em.imports, "maps")
	assert.Contains(t, em.imports, "slices")
}

func TestEmitter_DecodeNestedMap(t *testing.T) {
	var c code

	typ := wiretype.Map(wiretype.Leaf(wiretype.KindString), wiretype.List(wiretype.Nested("Point")))
	newEmitter().decodeFull(&c, typ, "source", "3", "out.M", "E.m", 0)

	assert.Equal(t, "if source.ObjectCount(3) > 0 {\n"+
		"out.M = make(map[string][]PointData, source.ObjectCount(3))\n"+
		"for i0 := range source.ObjectCount(3) {\n"+
		"entry0 := source.IndexObject(3, i0)\n"+
		"var k0 string\n"+
		"var v0 []PointData\n"+
		"k0 = entry0.GetString(1)\n"+
		"if entry0.ObjectCount(2) > 0 {\n"+
		"v0 = make([]PointData, entry0.ObjectCount(2))\n"+
		"for i1 := range v0 {\n"+
		"if v0[i1], err = decodePointData(entry0.IndexObject(2, i1)); err != nil {\n"+
		"return out, fmt.Errorf(\"E.m: %w\", err)\n"+
		"}\n"+
		"}\n"+
		"}\n"+
		"out.M[k0] = v0\n"+
		"}\n"+
		"}\n", c.String())
}

func TestEmitter_DecodeEmptyContainers(t *testing.T) {
	tests := []struct {
		name  string
		typ   *wiretype.Type
		delta bool
		want  string
	}{
		{
			name: "enum list stays nil",
			typ:  wiretype.List(wiretype.Enum("Color")),
			want: "if source.Count(4) > 0 {\n" +
				"if out.F, err = wire.GetEnumList(source, 4, ColorFromOrdinal); err != nil {\n" +
				"return out, fmt.Errorf(\"E.f: %w\", err)\n}\n}\n",
		},
		{
			name:  "cleared map reads empty",
			typ:   wiretype.Map(wiretype.Leaf(wiretype.KindString), wiretype.Leaf(wiretype.KindInt32)),
			delta: true,
			want: "if wire.HasObjects(source, 4) {\n" +
				"v0 := map[string]int32{}\n" +
				"if source.ObjectCount(4) > 0 {\n" +
				"v0 = make(map[string]int32, source.ObjectCount(4))\n" +
				"for i1 := range source.ObjectCount(4) {\n" +
				"entry1 := source.IndexObject(4, i1)\n" +
				"var k1 string\nvar v1 int32\n" +
				"k1 = entry1.GetString(1)\nv1 = entry1.GetInt32(2)\n" +
				"v0[k1] = v1\n}\n}\n" +
				"out.F = &v0\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c code

			em := newEmitter()
			if tt.delta {
				em.decodeDelta(&c, tt.typ, "source", "4", "out.F", "E.f", 0)
			} else {
				em.decodeFull(&c, tt.typ, "source", "4", "out.F", "E.f", 0)
			}

			assert.Equal(t, tt.want, c.String())
		})
	}
}
