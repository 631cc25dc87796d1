package wiretype

import (
	"errors"
	"fmt"

	"codec-generator/internal/common"
)

// Composition errors returned by Validate.
var (
	ErrInvalidComposition = errors.New("invalid wire type composition")
	ErrInvalidMapKey      = errors.New("invalid map key")
)

// Type is a node of the wire type tree.
//
// Leaves carry only a Kind. List and Option carry Elem, Map carries Key and
// Value, Nested and Enum carry the name of the referenced entity or enum in
// Ref.
type Type struct {
	Kind  Kind
	Elem  *Type
	Key   *Type
	Value *Type
	Ref   string
}

// Leaf returns a leaf node.
func Leaf(k Kind) *Type {
	return &Type{Kind: k}
}

// List returns List(elem).
func List(elem *Type) *Type {
	return &Type{Kind: KindList, Elem: elem}
}

// Map returns Map(key, value).
func Map(key, value *Type) *Type {
	return &Type{Kind: KindMap, Key: key, Value: value}
}

// Option returns Option(elem).
func Option(elem *Type) *Type {
	return &Type{Kind: KindOption, Elem: elem}
}

// Nested returns a reference to the entity named ref.
func Nested(ref string) *Type {
	return &Type{Kind: KindNested, Ref: ref}
}

// Enum returns a reference to the enum named ref.
func Enum(ref string) *Type {
	return &Type{Kind: KindEnum, Ref: ref}
}

// String renders t in marker syntax, with references written as their name:
// "map<string,list<int32>>", "option<Coordinates>".
func (t *Type) String() string {
	if t == nil {
		return common.NilStr
	}

	switch t.Kind {
	case KindList, KindOption:
		return t.Kind.Marker() + "<" + t.Elem.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	case KindNested, KindEnum:
		return t.Ref
	default:
		if m := t.Kind.Marker(); m != "" {
			return m
		}

		return t.Kind.String()
	}
}

// Equal reports whether two trees are structurally identical.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}

	return t.Kind == o.Kind &&
		t.Ref == o.Ref &&
		t.Elem.Equal(o.Elem) &&
		t.Key.Equal(o.Key) &&
		t.Value.Equal(o.Value)
}

// Walk calls fn for t and every node below it, parents first.
func (t *Type) Walk(fn func(*Type)) {
	if t == nil {
		return
	}

	fn(t)
	t.Elem.Walk(fn)
	t.Key.Walk(fn)
	t.Value.Walk(fn)
}

// Refs returns the names of the entities and of the enums t refers to, in
// walk order and without duplicates.
func (t *Type) Refs() (entities, enums []string) {
	seen := map[string]struct{}{}

	t.Walk(func(n *Type) {
		if n.Kind != KindNested && n.Kind != KindEnum {
			return
		}

		key := n.Kind.Marker() + ":" + n.Ref
		if _, ok := seen[key]; ok {
			return
		}

		seen[key] = struct{}{}

		if n.Kind == KindNested {
			entities = append(entities, n.Ref)
		} else {
			enums = append(enums, n.Ref)
		}
	})

	return entities, enums
}

// Contains reports whether any node of t has kind k.
func (t *Type) Contains(k Kind) bool {
	found := false

	t.Walk(func(n *Type) {
		if n.Kind == k {
			found = true
		}
	})

	return found
}

// Fallible reports whether decoding t can fail: enum ordinals may be invalid
// and nested entities may contain enums.
func (t *Type) Fallible() bool {
	return t.Contains(KindEnum) || t.Contains(KindNested)
}

// ObjectEncoded reports whether t is written as sub-objects rather than as
// scalar values: nested entities, lists of nested entities and maps.
func (t *Type) ObjectEncoded() bool {
	switch t.Kind {
	case KindNested, KindMap:
		return true
	case KindList:
		return t.Elem.Kind == KindNested
	default:
		return false
	}
}

// Validate checks the composition rules of the tree.
//
// List elements and Option payloads must be leaves, enums or nested
// entities, since both are written as repeated values at a single field id.
// Map keys must be comparable scalars. Map values may be anything but an
// Option, whose absence could not be told apart from the entry itself.
func (t *Type) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: missing node", ErrInvalidComposition)
	}

	switch t.Kind {
	case KindList, KindOption:
		if t.Elem == nil {
			return fmt.Errorf("%w: %s without element", ErrInvalidComposition, t.Kind.Marker())
		}

		if !t.Elem.Kind.IsLeaf() && t.Elem.Kind != KindEnum && t.Elem.Kind != KindNested {
			return fmt.Errorf("%w: %s element %s", ErrInvalidComposition, t.Kind.Marker(), t.Elem)
		}

		return t.Elem.Validate()
	case KindMap:
		if t.Key == nil || t.Value == nil {
			return fmt.Errorf("%w: map without key or value", ErrInvalidComposition)
		}

		if !t.Key.Kind.IsComparable() {
			return fmt.Errorf("%w: %s", ErrInvalidMapKey, t.Key)
		}

		if t.Value.Kind == KindOption {
			return fmt.Errorf("%w: map value %s", ErrInvalidComposition, t.Value)
		}

		return t.Value.Validate()
	case KindNested, KindEnum:
		if t.Ref == "" {
			return fmt.Errorf("%w: %s without a referenced name", ErrInvalidComposition, t.Kind.Marker())
		}

		return nil
	default:
		if !t.Kind.IsLeaf() {
			return fmt.Errorf("%w: %s", ErrInvalidComposition, t.Kind)
		}

		return nil
	}
}
