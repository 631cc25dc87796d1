package codec

import (
	"bytes"
	"fmt"

	"codec-generator/internal/compiler"
	"codec-generator/internal/rep"
	"codec-generator/internal/wiretype"
	"codec-generator/wire"
)

// node holds the closures that move values of one wire type through a field
// id of a wire object.
type node struct {
	wt *wiretype.Type

	encodeFull func(obj wire.Object, id wire.FieldID, v any) error
	decodeFull func(obj wire.Object, id wire.FieldID) (any, error)
	// present reports whether a full value was written at id; Option uses it.
	present func(obj wire.Object, id wire.FieldID) bool

	encodeDelta func(obj wire.Object, id wire.FieldID, v any) error
	decodeDelta func(obj wire.Object, id wire.FieldID) (v any, ok bool, err error)

	cloneFull func(v any) any
	copyDelta func(v any) any
	// releaseDelta is nil unless deltas of this type own nested deltas.
	releaseDelta func(v any)
}

func (r *Registry) build(t *wiretype.Type) (*node, error) {
	switch t.Kind {
	case wiretype.KindList:
		return r.buildList(t)
	case wiretype.KindMap:
		return r.buildMap(t)
	case wiretype.KindOption:
		return r.buildOption(t)
	case wiretype.KindNested:
		return r.buildNested(t)
	case wiretype.KindEnum:
		return r.buildEnum(t)
	default:
		if !t.Kind.IsLeaf() {
			return nil, fmt.Errorf("%w: %s", ErrTypeMismatch, t)
		}

		return buildLeaf(t), nil
	}
}

func hasCount(obj wire.Object, id wire.FieldID) bool {
	return obj.Count(id) > 0
}

func hasObject(obj wire.Object, id wire.FieldID) bool {
	return obj.ObjectCount(id) > 0
}

// withScalarDelta fills the delta closures of a node whose full value is
// written as scalars at its id.
func withScalarDelta(n *node) *node {
	n.encodeDelta = n.encodeFull
	n.decodeDelta = func(obj wire.Object, id wire.FieldID) (any, bool, error) {
		if !n.present(obj, id) {
			return nil, false, nil
		}

		v, err := n.decodeFull(obj, id)

		return v, true, err
	}
	n.copyDelta = n.cloneFull

	return n
}

func buildLeaf(t *wiretype.Type) *node {
	acc := leaves[t.Kind]
	want := rep.Full(t).String()

	n := &node{
		wt: t,
		encodeFull: func(obj wire.Object, id wire.FieldID, v any) error {
			if !acc.add(obj, id, v) {
				return mismatch(want, v)
			}

			return nil
		},
		decodeFull: func(obj wire.Object, id wire.FieldID) (any, error) {
			return acc.get(obj, id), nil
		},
		present: hasCount,
		cloneFull: func(v any) any {
			if b, ok := v.([]byte); ok {
				return bytes.Clone(b)
			}

			return v
		},
	}

	return withScalarDelta(n)
}

func (r *Registry) buildEnum(t *wiretype.Type) (*node, error) {
	en, ok := r.enums[t.Ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, t.Ref)
	}

	n := &node{
		wt: t,
		encodeFull: func(obj wire.Object, id wire.FieldID, v any) error {
			o, err := ordinalOf(en, v)
			if err != nil {
				return err
			}

			obj.AddEnum(id, o)

			return nil
		},
		decodeFull: func(obj wire.Object, id wire.FieldID) (any, error) {
			return variantOf(en, obj.GetEnum(id))
		},
		present:   hasCount,
		cloneFull: func(v any) any { return v },
	}

	return withScalarDelta(n), nil
}

func ordinalOf(en *compiler.Enum, v any) (uint32, error) {
	ev, ok := v.(EnumValue)
	if !ok {
		return 0, mismatch(en.Name, v)
	}

	if _, ok := en.FromOrdinal(ev.Ordinal); !ok {
		return 0, &wire.InvalidOrdinalError{Enum: en.Name, Ordinal: ev.Ordinal}
	}

	return ev.Ordinal, nil
}

func variantOf(en *compiler.Enum, o uint32) (EnumValue, error) {
	variant, ok := en.FromOrdinal(o)
	if !ok {
		return EnumValue{}, &wire.InvalidOrdinalError{Enum: en.Name, Ordinal: o}
	}

	return EnumValue{Name: variant.Name, Ordinal: variant.Value}, nil
}

func (r *Registry) buildList(t *wiretype.Type) (*node, error) {
	elem, err := r.build(t.Elem)
	if err != nil {
		return nil, err
	}

	want := rep.Full(t).String()
	n := &node{wt: t}

	switch t.Elem.Kind {
	case wiretype.KindNested:
		n.encodeFull = func(obj wire.Object, id wire.FieldID, v any) error {
			list, ok := v.([]any)
			if !ok {
				return mismatch(want, v)
			}

			for i, item := range list {
				rec, ok := item.(Record)
				if !ok {
					return fmt.Errorf("element %d: %w", i, mismatch(rep.FullName(t.Elem.Ref), item))
				}

				if err := r.entities[t.Elem.Ref].encodeFull(obj.AddObject(id), rec); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}

			return nil
		}
		n.decodeFull = func(obj wire.Object, id wire.FieldID) (any, error) {
			out := make([]any, obj.ObjectCount(id))
			for i := range out {
				rec, err := r.entities[t.Elem.Ref].decodeFull(obj.IndexObject(id, i))
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}

				out[i] = rec
			}

			return out, nil
		}
		n.present = hasObject
	case wiretype.KindEnum:
		en := r.enums[t.Elem.Ref]
		n.encodeFull = func(obj wire.Object, id wire.FieldID, v any) error {
			list, ok := v.([]any)
			if !ok {
				return mismatch(want, v)
			}

			ordinals := make([]uint32, len(list))
			for i, item := range list {
				o, err := ordinalOf(en, item)
				if err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}

				ordinals[i] = o
			}

			if len(ordinals) > 0 {
				obj.AddEnumList(id, ordinals)
			}

			return nil
		}
		n.decodeFull = func(obj wire.Object, id wire.FieldID) (any, error) {
			ordinals := obj.GetEnumList(id)

			out := make([]any, len(ordinals))
			for i, o := range ordinals {
				ev, err := variantOf(en, o)
				if err != nil {
					return nil, err
				}

				out[i] = ev
			}

			return out, nil
		}
		n.present = hasCount
	default:
		acc := leaves[t.Elem.Kind]
		n.encodeFull = func(obj wire.Object, id wire.FieldID, v any) error {
			list, ok := v.([]any)
			if !ok || !acc.addList(obj, id, list) {
				return mismatch(want, v)
			}

			return nil
		}
		n.decodeFull = func(obj wire.Object, id wire.FieldID) (any, error) {
			return acc.getList(obj, id), nil
		}
		n.present = hasCount
	}

	n.cloneFull = func(v any) any {
		list, ok := v.([]any)
		if !ok {
			return v
		}

		out := make([]any, len(list))
		for i, item := range list {
			out[i] = elem.cloneFull(item)
		}

		return out
	}

	return withContainerDelta(n, func(v any) int {
		list, _ := v.([]any)
		return len(list)
	}), nil
}

func (r *Registry) buildMap(t *wiretype.Type) (*node, error) {
	key, err := r.build(t.Key)
	if err != nil {
		return nil, err
	}

	value, err := r.build(t.Value)
	if err != nil {
		return nil, err
	}

	want := rep.Full(t).String()

	n := &node{
		wt: t,
		encodeFull: func(obj wire.Object, id wire.FieldID, v any) error {
			m, ok := v.(map[any]any)
			if !ok {
				return mismatch(want, v)
			}

			for k, item := range m {
				entry := obj.AddObject(id)

				if err := key.encodeFull(entry, compiler.MapKeyFieldID, k); err != nil {
					return fmt.Errorf("key %v: %w", k, err)
				}

				if err := value.encodeFull(entry, compiler.MapValueFieldID, item); err != nil {
					return fmt.Errorf("value at %v: %w", k, err)
				}
			}

			return nil
		},
		decodeFull: func(obj wire.Object, id wire.FieldID) (any, error) {
			count := obj.ObjectCount(id)

			out := make(map[any]any, count)
			for i := range count {
				entry := obj.IndexObject(id, i)

				k, err := key.decodeFull(entry, compiler.MapKeyFieldID)
				if err != nil {
					return nil, fmt.Errorf("entry %d key: %w", i, err)
				}

				item, err := value.decodeFull(entry, compiler.MapValueFieldID)
				if err != nil {
					return nil, fmt.Errorf("entry %d value: %w", i, err)
				}

				out[k] = item
			}

			return out, nil
		},
		present: hasObject,
		cloneFull: func(v any) any {
			m, ok := v.(map[any]any)
			if !ok {
				return v
			}

			out := make(map[any]any, len(m))
			for k, item := range m {
				out[k] = value.cloneFull(item)
			}

			return out
		},
	}

	return withContainerDelta(n, func(v any) int {
		m, _ := v.(map[any]any)
		return len(m)
	}), nil
}

// withContainerDelta fills the delta closures of a list or map node. A
// present empty container is written as a cleared field, since writing no
// values would read back as "no update".
func withContainerDelta(n *node, length func(any) int) *node {
	n.encodeDelta = func(obj wire.Object, id wire.FieldID, v any) error {
		if length(v) == 0 {
			if err := n.encodeFull(wire.NewObject(), id, v); err != nil {
				return err
			}

			obj.ClearField(id)

			return nil
		}

		return n.encodeFull(obj, id, v)
	}
	n.decodeDelta = func(obj wire.Object, id wire.FieldID) (any, bool, error) {
		if !n.present(obj, id) && !obj.IsCleared(id) {
			return nil, false, nil
		}

		v, err := n.decodeFull(obj, id)

		return v, true, err
	}
	n.copyDelta = n.cloneFull

	return n
}

func (r *Registry) buildOption(t *wiretype.Type) (*node, error) {
	inner, err := r.build(t.Elem)
	if err != nil {
		return nil, err
	}

	return &node{
		wt: t,
		encodeFull: func(obj wire.Object, id wire.FieldID, v any) error {
			if v == nil {
				return nil
			}

			return inner.encodeFull(obj, id, v)
		},
		decodeFull: func(obj wire.Object, id wire.FieldID) (any, error) {
			if !inner.present(obj, id) {
				return nil, nil
			}

			return inner.decodeFull(obj, id)
		},
		present: inner.present,
		cloneFull: func(v any) any {
			if v == nil {
				return nil
			}

			return inner.cloneFull(v)
		},
		encodeDelta:  inner.encodeDelta,
		decodeDelta:  inner.decodeDelta,
		copyDelta:    inner.copyDelta,
		releaseDelta: inner.releaseDelta,
	}, nil
}

func (r *Registry) buildNested(t *wiretype.Type) (*node, error) {
	if _, ok := r.program.Entity(t.Ref); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, t.Ref)
	}

	// Codecs may refer to each other, so the target is looked up per call.
	target := func() *Codec { return r.entities[t.Ref] }
	full := rep.FullName(t.Ref)
	delta := "*" + rep.DeltaName(t.Ref)

	return &node{
		wt: t,
		encodeFull: func(obj wire.Object, id wire.FieldID, v any) error {
			rec, ok := v.(Record)
			if !ok {
				return mismatch(full, v)
			}

			return target().encodeFull(obj.AddObject(id), rec)
		},
		decodeFull: func(obj wire.Object, id wire.FieldID) (any, error) {
			return target().decodeFull(obj.GetObject(id))
		},
		present: hasObject,
		cloneFull: func(v any) any {
			rec, ok := v.(Record)
			if !ok {
				return v
			}

			return target().CloneFull(rec)
		},
		encodeDelta: func(obj wire.Object, id wire.FieldID, v any) error {
			rec, ok := v.(*Record)
			if !ok || rec == nil {
				return mismatch(delta, v)
			}

			return target().encodeDelta(obj.AddObject(id), rec)
		},
		decodeDelta: func(obj wire.Object, id wire.FieldID) (any, bool, error) {
			if obj.ObjectCount(id) != 1 {
				return nil, false, nil
			}

			rec, err := target().decodeDelta(obj.GetObject(id))

			return rec, true, err
		},
		copyDelta: func(v any) any {
			rec, ok := v.(*Record)
			if !ok {
				return v
			}

			return target().CopyDelta(rec)
		},
		releaseDelta: func(v any) {
			if rec, ok := v.(*Record); ok {
				target().ReleaseDelta(rec)
			}
		},
	}, nil
}
