package gen

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/compiler"
	"codec-generator/internal/schema"
)

func compile(t *testing.T, s *schema.Schema) *compiler.Program {
	t.Helper()

	prog, err := compiler.Compile(context.Background(), s, compiler.DefaultOptions())
	require.NoError(t, err)

	return prog
}

func generate(t *testing.T, config GeneratorConfig, s *schema.Schema) string {
	t.Helper()

	files, err := NewGenerator(config).Generate(compile(t, s))
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

// squash collapses runs of blanks so assertions do not depend on the
// column alignment go/format applies.
func squash(src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}

	return strings.Join(lines, "\n")
}

func imports(t *testing.T, src string) map[string]string {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ImportsOnly)
	require.NoError(t, err)

	out := map[string]string{}

	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)

		alias := ""
		if spec.Name != nil {
			alias = spec.Name.Name
		}

		out[path] = alias
	}

	return out
}

var massSchema = &schema.Schema{
	Package: "physics",
	Entities: []schema.Entity{
		{Name: "Mass", ID: schema.ComponentID(404), Fields: []schema.Field{
			{ID: 1, Name: "x", Wire: "double"},
			{ID: 2, Name: "thrust", Wire: "float"},
		}},
	},
}

var restrictedSchema = &schema.Schema{
	Package: "restricted",
	Enums: []schema.Enum{
		{Name: "ConnectionStatus", Variants: schema.VariantList{
			{Name: "Unknown", Value: 0},
			{Name: "AwaitingWorkerConnection", Value: 1},
			{Name: "Connected", Value: 2},
			{Name: "Disconnected", Value: 3},
		}},
	},
	Entities: []schema.Entity{
		{Name: "Worker", ID: schema.ComponentID(60), Fields: []schema.Field{
			{ID: 1, Name: "worker_id", Wire: "string"},
			{ID: 2, Name: "worker_type", Wire: "string"},
			{ID: 3, Name: "connection", Type: "Connection", Wire: "type"},
		}},
		{Name: "Connection", Fields: []schema.Field{
			{ID: 1, Name: "status", Type: "ConnectionStatus", Wire: "enum"},
			{ID: 2, Name: "data_latency_ms", Wire: "uint32"},
			{ID: 3, Name: "connected_since_utc", Wire: "uint64"},
		}},
	},
}

var sinkSchema = &schema.Schema{
	Package: "kitchen",
	Enums: []schema.Enum{
		{Name: "Color", Variants: schema.VariantList{
			{Name: "Red", Value: 0},
			{Name: "Blue", Value: 5},
		}},
	},
	Entities: []schema.Entity{
		{Name: "Point", Fields: []schema.Field{
			{ID: 1, Name: "x", Wire: "sint32"},
			{ID: 2, Name: "y", Wire: "sint32"},
		}},
		{Name: "Sink", ID: schema.ComponentID(7), Fields: []schema.Field{
			{ID: 3, Name: "blob", Wire: "bytes"},
			{ID: 4, Name: "owner", Wire: "Entity"},
			{ID: 5, Name: "color", Type: "Color", Wire: "enum"},
			{ID: 6, Name: "origin", Type: "Point", Wire: "type"},
			{ID: 7, Name: "tags", Type: "[]string", Wire: "list<string>"},
			{ID: 8, Name: "points", Type: "[]Point", Wire: "list<type>"},
			{ID: 9, Name: "colors", Type: "[]Color", Wire: "list<enum>"},
			{ID: 10, Name: "scores", Type: "map[string]int32", Wire: "map<string,int32>"},
			{ID: 11, Name: "by_color", Type: "map[Color]Point", Wire: "map<enum,type>"},
			{ID: 12, Name: "nick", Type: "*string", Wire: "option<string>"},
			{ID: 13, Name: "home", Type: "*Point", Wire: "option<type>"},
			{ID: 14, Name: "groups", Type: "map[uint32][]int64", Wire: "map<uint32,list<int64>>"},
		}},
	},
}

func TestGenerate_Mass(t *testing.T) {
	src := generate(t, GeneratorConfig{}, massSchema)

	assert.True(t, strings.HasPrefix(src, "// Code generated by codec-generator. DO NOT EDIT.\n"))
	assert.Contains(t, src, "package physics\n")
	assert.Equal(t, map[string]string{"codec-generator/wire": ""}, imports(t, src))

	s := squash(src)
	assert.Contains(t, s, "type MassData struct {\nX float64\nThrust float32\n}")
	assert.Contains(t, s, "type MassUpdate struct {\nX *float64\nThrust *float32\n}")
	assert.Contains(t, s, "const MassComponentID wire.ComponentID = 404")
	assert.Contains(t, s, "type Mass struct{}")
	assert.Contains(t, s, "func (Mass) EncodeData(data *MassData) *wire.ComponentData {")
	assert.Contains(t, s, "func (Mass) DecodeUpdate(update *wire.ComponentUpdate) (MassUpdate, error) {")

	assert.Contains(t, s, "target.AddDouble(1, data.X)\ntarget.AddFloat(2, data.Thrust)")
	assert.Contains(t, s, "var out MassData\n\nout.X = source.GetDouble(1)")
	assert.Contains(t, s, "if update.X != nil {\ntarget.AddDouble(1, *update.X)\n}")
	assert.Contains(t, s, "if source.Count(2) > 0 {\nvar v0 float32\nv0 = source.GetFloat(2)\nout.Thrust = &v0\n}")
	assert.Contains(t, s, "if update.Thrust != nil {\nv0 := *update.Thrust\nout.Thrust = &v0\n}")

	// Nothing can fail to decode, so no error plumbing is generated.
	assert.NotContains(t, s, "err error")
}

func TestGenerate_Restricted(t *testing.T) {
	src := generate(t, GeneratorConfig{}, restrictedSchema)
	s := squash(src)

	assert.Equal(t, map[string]string{
		"codec-generator/wire": "",
		"fmt":                  "",
		"strconv":              "",
	}, imports(t, src))

	t.Run("enum", func(t *testing.T) {
		assert.Contains(t, s, "type ConnectionStatus uint32")
		assert.Contains(t, s, "ConnectionStatusAwaitingWorkerConnection ConnectionStatus = 1")
		assert.Contains(t, s, "func ConnectionStatusFromOrdinal(o uint32) (ConnectionStatus, error) {")
		assert.Contains(t, s, "case ConnectionStatusUnknown, ConnectionStatusAwaitingWorkerConnection, "+
			"ConnectionStatusConnected, ConnectionStatusDisconnected:")
		assert.Contains(t, s, `return 0, &wire.InvalidOrdinalError{Enum: "ConnectionStatus", Ordinal: o}`)
		assert.Contains(t, s, "case ConnectionStatusConnected:\nreturn \"Connected\"")
		assert.Contains(t, s, "func ConnectionStatusValues() []ConnectionStatus {")
	})

	t.Run("nested component", func(t *testing.T) {
		assert.Contains(t, s, "Connection ConnectionData\n}")
		assert.Contains(t, s, "Connection *ConnectionUpdate\n}")
		assert.Contains(t, s, "encodeConnectionData(&data.Connection, target.AddObject(3))")
		assert.Contains(t, s, "if out.Connection, err = decodeConnectionData(source.GetObject(3)); err != nil {\n"+
			"return out, fmt.Errorf(\"Worker.connection: %w\", err)\n}")
		assert.Contains(t, s, "if source.ObjectCount(3) == 1 {\nvar v0 ConnectionUpdate\n"+
			"if v0, err = decodeConnectionUpdate(source.GetObject(3)); err != nil {")
		assert.Contains(t, s, "out.Connection = cloneConnectionData(&data.Connection)")
		assert.Contains(t, s, "v0 := copyConnectionUpdate(update.Connection)")
		assert.Contains(t, s, "if update.Connection != nil {\nfreeConnectionUpdate(update.Connection)\nupdate.Connection = nil\n}")
	})

	t.Run("value type", func(t *testing.T) {
		assert.NotContains(t, s, "ConnectionComponentID")
		assert.Contains(t, s, "func (Connection) EncodeData(data *ConnectionData, target wire.Object) {")
		assert.Contains(t, s, "target.AddEnum(1, data.Status.Ordinal())")
		assert.Contains(t, s, "if out.Status, err = wire.GetEnum(source, 1, ConnectionStatusFromOrdinal); err != nil {")
		assert.Contains(t, s, "target.AddEnum(1, (*update.Status).Ordinal())")
	})
}

func TestGenerate_Containers(t *testing.T) {
	src := generate(t, GeneratorConfig{}, sinkSchema)
	s := squash(src)

	assert.Equal(t, map[string]string{
		"codec-generator/wire": "",
		"fmt":                  "",
		"maps":                 "",
		"slices":               "",
		"strconv":              "",
	}, imports(t, src))

	t.Run("full", func(t *testing.T) {
		assert.Contains(t, s, "target.AddStringList(7, data.Tags)")
		assert.Contains(t, s, "for i0 := range data.Points {\nencodePointData(&data.Points[i0], target.AddObject(8))\n}")
		assert.Contains(t, s, "wire.AddEnumList(target, 9, data.Colors)")
		assert.Contains(t, s, "for k0, v0 := range data.ByColor {\nentry0 := target.AddObject(11)\n"+
			"entry0.AddEnum(1, k0.Ordinal())\nencodePointData(&v0, entry0.AddObject(2))\n}")
		assert.Contains(t, s, "if data.Nick != nil {\ntarget.AddString(12, *data.Nick)\n}")
		assert.Contains(t, s, "for k0, v0 := range data.Groups {\nentry0 := target.AddObject(14)\n"+
			"entry0.AddUint32(1, k0)\nentry0.AddInt64List(2, v0)\n}")

		assert.Contains(t, s, "out.Points = make([]PointData, source.ObjectCount(8))\nfor i0 := range out.Points {")
		assert.Contains(t, s, "for i0 := range source.ObjectCount(11) {\nentry0 := source.IndexObject(11, i0)\n"+
			"var k0 Color\nvar v0 PointData\n")
		assert.Contains(t, s, "out.ByColor[k0] = v0")
		assert.Contains(t, s, "if source.ObjectCount(13) > 0 {\nvar v0 PointData\n")
	})

	t.Run("delta", func(t *testing.T) {
		assert.Contains(t, s, "if update.Tags != nil {\nif len(*update.Tags) == 0 {\ntarget.ClearField(7)\n} else {\n"+
			"target.AddStringList(7, *update.Tags)\n}\n}")
		assert.Contains(t, s, "for i0 := range *update.Points {\nencodePointData(&(*update.Points)[i0], target.AddObject(8))\n}")
		assert.Contains(t, s, "out.Tags = wire.OptionalList(source, 7, source.GetStringList)")
		assert.Contains(t, s, "if wire.HasObjects(source, 8) {")
		assert.Contains(t, s, "if source.Count(9) > 0 || source.IsCleared(9) {")
		assert.Contains(t, s, "if wire.HasObjects(source, 14) {")

		// Option fields collapse onto the update of their payload.
		assert.Contains(t, s, "Nick *string")
		assert.Contains(t, s, "Home *PointUpdate")
		assert.Contains(t, s, "if update.Home != nil {\nencodePointUpdate(update.Home, target.AddObject(13))\n}")
	})

	t.Run("copy", func(t *testing.T) {
		assert.Contains(t, s, "out.Blob = slices.Clone(data.Blob)")
		assert.Contains(t, s, "out.Tags = slices.Clone(data.Tags)")
		assert.Contains(t, s, "out.Scores = maps.Clone(data.Scores)")
		assert.Contains(t, s, "if data.Points != nil {\nout.Points = make([]PointData, len(data.Points))\n"+
			"for i0 := range data.Points {\nout.Points[i0] = clonePointData(&data.Points[i0])\n}\n}")
		assert.Contains(t, s, "for k0, v0 := range data.Groups {\nvar c0 []int64\nc0 = slices.Clone(v0)\nout.Groups[k0] = c0\n}")
		assert.Contains(t, s, "if data.Home != nil {\nvar c0 PointData\nc0 = clonePointData(data.Home)\nout.Home = &c0\n}")
		assert.Contains(t, s, "if update.Points != nil {\nvar v0 []PointData\nif *update.Points != nil {")
		assert.Contains(t, s, "v0[i1] = clonePointData(&(*update.Points)[i1])")
	})
}

func TestGenerate_RuntimeImport(t *testing.T) {
	src := generate(t, GeneratorConfig{RuntimeImport: "example.com/game/rt"}, massSchema)

	assert.Equal(t, map[string]string{"example.com/game/rt": "wire"}, imports(t, src))
}

func TestGenerate_HeaderAndComments(t *testing.T) {
	src := generate(t, GeneratorConfig{
		PackageName:      "override",
		Source:           "schema/mass.yaml",
		GenerateComments: true,
	}, massSchema)

	assert.Contains(t, src, "// Source: schema/mass.yaml\n")
	assert.Contains(t, src, "package override\n")
	assert.Contains(t, squash(src), "X float64 // 1: double")
}

func TestGenerate_Docs(t *testing.T) {
	s := &schema.Schema{
		Package: "docs",
		Enums: []schema.Enum{
			{Name: "Mode", Doc: "Mode selects the drive.", Variants: schema.VariantList{
				{Name: "Off", Value: 0, Doc: "Off stops it."},
			}},
		},
		Entities: []schema.Entity{
			{Name: "Drive", Doc: "Drive moves things.", Fields: []schema.Field{
				{ID: 1, Name: "mode", Type: "Mode", Wire: "enum", Doc: "Current mode."},
			}},
		},
	}

	src := squash(generate(t, GeneratorConfig{}, s))

	assert.Contains(t, src, "// Mode selects the drive.\ntype Mode uint32")
	assert.Contains(t, src, "// Off stops it.\nModeOff Mode = 0")
	assert.Contains(t, src, "//\n// Drive moves things.\ntype DriveData struct {")
	assert.Contains(t, src, "// Current mode.\nMode Mode")
}

func TestGenerate_EmptyProgram(t *testing.T) {
	files, err := NewGenerator(GeneratorConfig{}).Generate(&compiler.Program{Package: "empty"})
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "empty_codec.go", files[0].Filename)
	assert.Empty(t, imports(t, string(files[0].Content)))
}

func TestGenerate_EmptyEnum(t *testing.T) {
	prog := &compiler.Program{Package: "p", Enums: []*compiler.Enum{{Name: "Nothing"}}}

	files, err := NewGenerator(GeneratorConfig{}).Generate(prog)
	require.NoError(t, err)

	s := squash(string(files[0].Content))
	assert.Contains(t, s, "func NothingFromOrdinal(o uint32) (Nothing, error) {\n"+
		"return 0, &wire.InvalidOrdinalError{Enum: \"Nothing\", Ordinal: o}\n}")
	assert.Contains(t, s, "return []Nothing{}")
}

func TestGenerate_FormatFailureWritesSidecar(t *testing.T) {
	dir := t.TempDir()

	files, err := NewGenerator(GeneratorConfig{
		PackageName: "not valid",
		OutputDir:   dir,
		FileName:    "broken.go",
	}).Generate(compile(t, massSchema))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting broken.go")

	require.Len(t, files, 1)
	assert.Contains(t, string(files[0].Content), "package not valid")

	sidecar, err := os.ReadFile(filepath.Join(dir, "broken.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, sidecar)
}
