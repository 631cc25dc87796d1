package rep

import (
	"strings"

	"codec-generator/internal/wiretype"
)

// RuntimePackage is the package name generated code refers to the wire
// runtime by.
const RuntimePackage = "wire"

// Kind is the shape of a Go type reference.
type Kind int

const (
	_ Kind = iota

	KindBasic   // predeclared: bool, int32, string, ...
	KindNamed   // declared type, optionally package-qualified
	KindSlice   // []Elem
	KindMap     // map[Key]Elem
	KindPointer // *Elem
)

// Type is a reference to a Go type as generated code spells it.
type Type struct {
	Kind    Kind
	Package string // qualifier of a named type; empty for the generated package
	Name    string // basic or named type name
	Key     *Type  // map key
	Elem    *Type  // slice/pointer element, map value
}

// String renders t in Go syntax ("[]wire.EntityID", "*map[string]int32").
func (t *Type) String() string {
	var sb strings.Builder
	t.write(&sb)

	return sb.String()
}

func (t *Type) write(sb *strings.Builder) {
	switch t.Kind {
	case KindSlice:
		sb.WriteString("[]")
		t.Elem.write(sb)
	case KindMap:
		sb.WriteString("map[")
		t.Key.write(sb)
		sb.WriteString("]")
		t.Elem.write(sb)
	case KindPointer:
		sb.WriteString("*")
		t.Elem.write(sb)
	default:
		if t.Package != "" {
			sb.WriteString(t.Package)
			sb.WriteString(".")
		}

		sb.WriteString(t.Name)
	}
}

// IsPointer reports whether t is a pointer type.
func (t *Type) IsPointer() bool {
	return t.Kind == KindPointer
}

// Nillable reports whether the zero value of t is nil.
func (t *Type) Nillable() bool {
	switch t.Kind {
	case KindSlice, KindMap, KindPointer:
		return true
	default:
		return false
	}
}

// UsesRuntime reports whether t refers to a type of the wire runtime.
func (t *Type) UsesRuntime() bool {
	if t == nil {
		return false
	}

	return t.Package == RuntimePackage || t.Key.UsesRuntime() || t.Elem.UsesRuntime()
}

func basic(name string) *Type {
	return &Type{Kind: KindBasic, Name: name}
}

func named(pkg, name string) *Type {
	return &Type{Kind: KindNamed, Package: pkg, Name: name}
}

func sliceOf(elem *Type) *Type {
	return &Type{Kind: KindSlice, Elem: elem}
}

func mapOf(key, elem *Type) *Type {
	return &Type{Kind: KindMap, Key: key, Elem: elem}
}

func pointerTo(elem *Type) *Type {
	return &Type{Kind: KindPointer, Elem: elem}
}

// FullName is the name of the generated full representation of an entity.
func FullName(entity string) string {
	return entity + "Data"
}

// DeltaName is the name of the generated delta representation of an entity.
func DeltaName(entity string) string {
	return entity + "Update"
}

// Leaf returns the Go type of a leaf kind.
func Leaf(k wiretype.Kind) *Type {
	switch k {
	case wiretype.KindBool:
		return basic("bool")
	case wiretype.KindInt32, wiretype.KindSint32, wiretype.KindSfixed32:
		return basic("int32")
	case wiretype.KindInt64, wiretype.KindSint64, wiretype.KindSfixed64:
		return basic("int64")
	case wiretype.KindUint32, wiretype.KindFixed32:
		return basic("uint32")
	case wiretype.KindUint64, wiretype.KindFixed64:
		return basic("uint64")
	case wiretype.KindFloat:
		return basic("float32")
	case wiretype.KindDouble:
		return basic("float64")
	case wiretype.KindString:
		return basic("string")
	case wiretype.KindBytes:
		return sliceOf(basic("byte"))
	case wiretype.KindEntityID:
		return named(RuntimePackage, "EntityID")
	case wiretype.KindEntity:
		return named(RuntimePackage, "EntityRef")
	default:
		return nil
	}
}

// Full returns the Go type holding a complete value of t.
//
//	leaf       -> its Go type
//	List(T)    -> []Full(T)
//	Map(K,V)   -> map[Full(K)]Full(V)
//	Option(T)  -> *Full(T)
//	Nested(E)  -> EData
//	Enum(En)   -> En
func Full(t *wiretype.Type) *Type {
	switch t.Kind {
	case wiretype.KindList:
		return sliceOf(Full(t.Elem))
	case wiretype.KindMap:
		return mapOf(Full(t.Key), Full(t.Value))
	case wiretype.KindOption:
		return pointerTo(Full(t.Elem))
	case wiretype.KindNested:
		return named("", FullName(t.Ref))
	case wiretype.KindEnum:
		return named("", t.Ref)
	default:
		return Leaf(t.Kind)
	}
}

// Delta returns the Go type carrying a possibly absent change to a value of
// t. Absence is a nil pointer.
//
// Containers are replaced wholesale, so their elements keep the full
// representation. Option collapses into the delta of its payload, and a
// nested entity is carried as an owned pointer to its own delta.
func Delta(t *wiretype.Type) *Type {
	switch t.Kind {
	case wiretype.KindOption:
		return Delta(t.Elem)
	case wiretype.KindNested:
		return pointerTo(named("", DeltaName(t.Ref)))
	default:
		return pointerTo(Full(t))
	}
}
