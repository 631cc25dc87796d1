package match

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	"codec-generator/internal/wiretype"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"double", "dubble", 2},
		{"sint32", "int32", 1},
		{"EntityId", "EntityID", 1},
		{"ключ", "ключи", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, NormalizedSimilarity("worker_id", "WorkerID"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"data_latency_ms", []string{"data", "latency", "ms"}},
		{"OrderID", []string{"Order", "ID"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"connectedSince", []string{"connected", "Since"}},
		{"a.b-c d", []string{"a", "b", "c", "d"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestGoName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"worker_id", "WorkerID"},
		{"data_latency_ms", "DataLatencyMs"},
		{"connected_since_utc", "ConnectedSinceUTC"},
		{"thrust", "Thrust"},
		{"playerIdentity", "PlayerIdentity"},
		{"entity_ids", "EntityIDs"},
		{"3d_position", "X3dPosition"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GoName(tt.in))
		})
	}
}

func TestSnakeName(t *testing.T) {
	for _, name := range []string{"worker_id", "data_latency_ms", "connected_since_utc", "thrust"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, SnakeName(GoName(name)))
		})
	}
}

func TestSuggest(t *testing.T) {
	known := []string{"double", "float", "bool", "string", "EntityId"}

	assert.Equal(t, []string{"double"}, Suggest("dubble", known, 3))
	assert.Equal(t, []string{"EntityId"}, Suggest("entity_id", known, 1))
	assert.Empty(t, Suggest("zzzzzzzz", known, 3))
}

func TestRankCandidates_Deterministic(t *testing.T) {
	list := RankCandidates("ab", []string{"ac", "aa", "ab"})

	assert.Equal(t, []string{"ab", "aa", "ac"}, list.Names())
	assert.Len(t, list.Top(1), 1)
}

func TestScoreTypeCompatibility(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	coords := types.NewNamed(types.NewTypeName(0, pkg, "Coordinates", nil), types.NewStruct(nil, nil), nil)
	status := types.NewNamed(types.NewTypeName(0, pkg, "Status", nil), types.Typ[types.Uint32], nil)
	bytesT := types.NewSlice(types.Typ[types.Byte])

	tests := []struct {
		name     string
		declared types.Type
		wire     *wiretype.Type
		want     TypeCompatibility
	}{
		{"double", types.Typ[types.Float64], wiretype.Leaf(wiretype.KindDouble), TypeIdentical},
		{"float into double", types.Typ[types.Float32], wiretype.Leaf(wiretype.KindDouble), TypeConvertible},
		{"string into int32", types.Typ[types.String], wiretype.Leaf(wiretype.KindInt32), TypeIncompatible},
		{"named uint32", status, wiretype.Leaf(wiretype.KindUint32), TypeAssignable},
		{"bytes", bytesT, wiretype.Leaf(wiretype.KindBytes), TypeIdentical},
		{"nested", coords, wiretype.Nested("Coordinates"), TypeIdentical},
		{"wrong nested", coords, wiretype.Nested("Other"), TypeIncompatible},
		{"enum", status, wiretype.Enum("Status"), TypeIdentical},
		{"list", types.NewSlice(types.Typ[types.Int64]), wiretype.List(wiretype.Leaf(wiretype.KindSint64)), TypeIdentical},
		{"list not slice", types.Typ[types.Int64], wiretype.List(wiretype.Leaf(wiretype.KindInt64)), TypeIncompatible},
		{
			"map weakest part",
			types.NewMap(types.Typ[types.String], types.Typ[types.Int]),
			wiretype.Map(wiretype.Leaf(wiretype.KindString), wiretype.Leaf(wiretype.KindInt32)),
			TypeConvertible,
		},
		{"option", types.NewPointer(coords), wiretype.Option(wiretype.Nested("Coordinates")), TypeIdentical},
		{"option not pointer", coords, wiretype.Option(wiretype.Nested("Coordinates")), TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreTypeCompatibility(tt.declared, tt.wire)
			assert.Equal(t, tt.want, res.Compatibility, res.Reason)
		})
	}
}

func TestTypeCompatibility_String(t *testing.T) {
	assert.Equal(t, "identical", TypeIdentical.String())
	assert.Equal(t, "incompatible", TypeIncompatible.String())
	assert.Equal(t, "unknown", TypeCompatibility(42).String())
}
