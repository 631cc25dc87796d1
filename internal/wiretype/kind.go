package wiretype

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the tag of a wire type node.
type Kind int

const (
	_ Kind = iota // zero value is an invalid kind

	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindEntityID
	KindEntity // reference to another entity

	KindList
	KindMap
	KindOption
	KindNested // user-defined entity embedded as a sub-object
	KindEnum

	// KindTotal is the number of kinds, including the invalid zero kind.
	KindTotal = int(iota)
)

// leafMarkers maps the schema marker of every leaf kind to the kind.
var leafMarkers = map[string]Kind{
	"bool":     KindBool,
	"int32":    KindInt32,
	"int64":    KindInt64,
	"uint32":   KindUint32,
	"uint64":   KindUint64,
	"sint32":   KindSint32,
	"sint64":   KindSint64,
	"fixed32":  KindFixed32,
	"fixed64":  KindFixed64,
	"sfixed32": KindSfixed32,
	"sfixed64": KindSfixed64,
	"float":    KindFloat,
	"double":   KindDouble,
	"string":   KindString,
	"bytes":    KindBytes,
	"EntityId": KindEntityID,
	"Entity":   KindEntity,
}

// LeafKind returns the leaf kind named by marker.
func LeafKind(marker string) (Kind, bool) {
	k, ok := leafMarkers[marker]
	return k, ok
}

// LeafMarkers returns every leaf marker, in kind order.
func LeafMarkers() []string {
	out := make([]string, 0, len(leafMarkers))
	for k := KindBool; k <= KindEntity; k++ {
		out = append(out, k.Marker())
	}

	return out
}

// Marker returns the schema marker of a leaf kind, or the composite keyword
// (list, map, option, type, enum) of a composite kind.
func (k Kind) Marker() string {
	switch k {
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOption:
		return "option"
	case KindNested:
		return "type"
	case KindEnum:
		return "enum"
	}

	for m, lk := range leafMarkers {
		if lk == k {
			return m
		}
	}

	return ""
}

// IsLeaf reports whether k is a scalar wire kind.
func (k Kind) IsLeaf() bool {
	return k >= KindBool && k <= KindEntity
}

// IsComparable reports whether values of kind k may key a map.
func (k Kind) IsComparable() bool {
	switch k {
	default:
		return false
	case KindBool,
		KindInt32, KindInt64, KindUint32, KindUint64,
		KindSint32, KindSint64, KindFixed32, KindFixed64,
		KindSfixed32, KindSfixed64, KindFloat, KindDouble,
		KindString, KindEntityID, KindEntity, KindEnum:
		return true
	}
}

// AccessorName is the suffix of the wire.Object methods that read and write
// values of a leaf or enum kind (AddDouble, GetEntityIDList, ...).
func (k Kind) AccessorName() string {
	switch k {
	case KindEntity:
		return "EntityRef"
	case KindEnum:
		return "Enum"
	}

	if !k.IsLeaf() {
		return ""
	}

	// Every other leaf shares its name with the kind.
	return k.String()[len("Kind"):]
}
