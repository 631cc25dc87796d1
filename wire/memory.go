package wire

import (
	"bytes"
	"slices"
)

// valueKind tags a stored scalar so that reads of another kind at the same id
// see nothing.
type valueKind uint8

const (
	kindBool valueKind = iota + 1
	kindInt32
	kindInt64
	kindUint32
	kindUint64
	kindSint32
	kindSint64
	kindFixed32
	kindFixed64
	kindSfixed32
	kindSfixed64
	kindFloat
	kindDouble
	kindString
	kindBytes
	kindEntityID
	kindEntityRef
	kindEnum
)

type scalar struct {
	kind  valueKind
	value any
}

type slot struct {
	values  []scalar
	objects []*memObject
	cleared bool
}

// memObject is the in-memory Object returned by NewObject.
type memObject struct {
	fields map[FieldID]*slot
}

// NewObject returns an empty in-memory Object.
func NewObject() Object {
	return newMemObject()
}

func newMemObject() *memObject {
	return &memObject{fields: make(map[FieldID]*slot)}
}

func (o *memObject) slot(id FieldID) *slot {
	s, ok := o.fields[id]
	if !ok {
		s = &slot{}
		o.fields[id] = s
	}

	return s
}

func add[T any](o *memObject, id FieldID, kind valueKind, v T) {
	s := o.slot(id)
	s.values = append(s.values, scalar{kind: kind, value: v})
}

func addList[T any](o *memObject, id FieldID, kind valueKind, vs []T) {
	if len(vs) == 0 {
		return
	}

	s := o.slot(id)
	for _, v := range vs {
		s.values = append(s.values, scalar{kind: kind, value: v})
	}
}

func get[T any](o *memObject, id FieldID, kind valueKind) T {
	var zero T

	s, ok := o.fields[id]
	if !ok {
		return zero
	}

	for i := len(s.values) - 1; i >= 0; i-- {
		if s.values[i].kind == kind {
			v, _ := s.values[i].value.(T)
			return v
		}
	}

	return zero
}

func getList[T any](o *memObject, id FieldID, kind valueKind) []T {
	s, ok := o.fields[id]
	if !ok {
		return nil
	}

	var out []T

	for _, sv := range s.values {
		if sv.kind != kind {
			continue
		}

		if v, ok := sv.value.(T); ok {
			out = append(out, v)
		}
	}

	return out
}

func (o *memObject) AddBool(id FieldID, v bool) { add(o, id, kindBool, v) }

func (o *memObject) GetBool(id FieldID) bool { return get[bool](o, id, kindBool) }

func (o *memObject) AddBoolList(id FieldID, v []bool) { addList(o, id, kindBool, v) }

func (o *memObject) GetBoolList(id FieldID) []bool { return getList[bool](o, id, kindBool) }

func (o *memObject) AddInt32(id FieldID, v int32) { add(o, id, kindInt32, v) }

func (o *memObject) GetInt32(id FieldID) int32 { return get[int32](o, id, kindInt32) }

func (o *memObject) AddInt32List(id FieldID, v []int32) { addList(o, id, kindInt32, v) }

func (o *memObject) GetInt32List(id FieldID) []int32 { return getList[int32](o, id, kindInt32) }

func (o *memObject) AddInt64(id FieldID, v int64) { add(o, id, kindInt64, v) }

func (o *memObject) GetInt64(id FieldID) int64 { return get[int64](o, id, kindInt64) }

func (o *memObject) AddInt64List(id FieldID, v []int64) { addList(o, id, kindInt64, v) }

func (o *memObject) GetInt64List(id FieldID) []int64 { return getList[int64](o, id, kindInt64) }

func (o *memObject) AddUint32(id FieldID, v uint32) { add(o, id, kindUint32, v) }

func (o *memObject) GetUint32(id FieldID) uint32 { return get[uint32](o, id, kindUint32) }

func (o *memObject) AddUint32List(id FieldID, v []uint32) { addList(o, id, kindUint32, v) }

func (o *memObject) GetUint32List(id FieldID) []uint32 { return getList[uint32](o, id, kindUint32) }

func (o *memObject) AddUint64(id FieldID, v uint64) { add(o, id, kindUint64, v) }

func (o *memObject) GetUint64(id FieldID) uint64 { return get[uint64](o, id, kindUint64) }

func (o *memObject) AddUint64List(id FieldID, v []uint64) { addList(o, id, kindUint64, v) }

func (o *memObject) GetUint64List(id FieldID) []uint64 { return getList[uint64](o, id, kindUint64) }

func (o *memObject) AddSint32(id FieldID, v int32) { add(o, id, kindSint32, v) }

func (o *memObject) GetSint32(id FieldID) int32 { return get[int32](o, id, kindSint32) }

func (o *memObject) AddSint32List(id FieldID, v []int32) { addList(o, id, kindSint32, v) }

func (o *memObject) GetSint32List(id FieldID) []int32 { return getList[int32](o, id, kindSint32) }

func (o *memObject) AddSint64(id FieldID, v int64) { add(o, id, kindSint64, v) }

func (o *memObject) GetSint64(id FieldID) int64 { return get[int64](o, id, kindSint64) }

func (o *memObject) AddSint64List(id FieldID, v []int64) { addList(o, id, kindSint64, v) }

func (o *memObject) GetSint64List(id FieldID) []int64 { return getList[int64](o, id, kindSint64) }

func (o *memObject) AddFixed32(id FieldID, v uint32) { add(o, id, kindFixed32, v) }

func (o *memObject) GetFixed32(id FieldID) uint32 { return get[uint32](o, id, kindFixed32) }

func (o *memObject) AddFixed32List(id FieldID, v []uint32) { addList(o, id, kindFixed32, v) }

func (o *memObject) GetFixed32List(id FieldID) []uint32 { return getList[uint32](o, id, kindFixed32) }

func (o *memObject) AddFixed64(id FieldID, v uint64) { add(o, id, kindFixed64, v) }

func (o *memObject) GetFixed64(id FieldID) uint64 { return get[uint64](o, id, kindFixed64) }

func (o *memObject) AddFixed64List(id FieldID, v []uint64) { addList(o, id, kindFixed64, v) }

func (o *memObject) GetFixed64List(id FieldID) []uint64 { return getList[uint64](o, id, kindFixed64) }

func (o *memObject) AddSfixed32(id FieldID, v int32) { add(o, id, kindSfixed32, v) }

func (o *memObject) GetSfixed32(id FieldID) int32 { return get[int32](o, id, kindSfixed32) }

func (o *memObject) AddSfixed32List(id FieldID, v []int32) { addList(o, id, kindSfixed32, v) }

func (o *memObject) GetSfixed32List(id FieldID) []int32 { return getList[int32](o, id, kindSfixed32) }

func (o *memObject) AddSfixed64(id FieldID, v int64) { add(o, id, kindSfixed64, v) }

func (o *memObject) GetSfixed64(id FieldID) int64 { return get[int64](o, id, kindSfixed64) }

func (o *memObject) AddSfixed64List(id FieldID, v []int64) { addList(o, id, kindSfixed64, v) }

func (o *memObject) GetSfixed64List(id FieldID) []int64 { return getList[int64](o, id, kindSfixed64) }

func (o *memObject) AddFloat(id FieldID, v float32) { add(o, id, kindFloat, v) }

func (o *memObject) GetFloat(id FieldID) float32 { return get[float32](o, id, kindFloat) }

func (o *memObject) AddFloatList(id FieldID, v []float32) { addList(o, id, kindFloat, v) }

func (o *memObject) GetFloatList(id FieldID) []float32 { return getList[float32](o, id, kindFloat) }

func (o *memObject) AddDouble(id FieldID, v float64) { add(o, id, kindDouble, v) }

func (o *memObject) GetDouble(id FieldID) float64 { return get[float64](o, id, kindDouble) }

func (o *memObject) AddDoubleList(id FieldID, v []float64) { addList(o, id, kindDouble, v) }

func (o *memObject) GetDoubleList(id FieldID) []float64 { return getList[float64](o, id, kindDouble) }

func (o *memObject) AddString(id FieldID, v string) { add(o, id, kindString, v) }

func (o *memObject) GetString(id FieldID) string { return get[string](o, id, kindString) }

func (o *memObject) AddStringList(id FieldID, v []string) { addList(o, id, kindString, v) }

func (o *memObject) GetStringList(id FieldID) []string { return getList[string](o, id, kindString) }

func (o *memObject) AddBytes(id FieldID, v []byte) { add(o, id, kindBytes, bytes.Clone(v)) }

func (o *memObject) GetBytes(id FieldID) []byte { return bytes.Clone(get[[]byte](o, id, kindBytes)) }

func (o *memObject) AddBytesList(id FieldID, v [][]byte) {
	for _, b := range v {
		o.AddBytes(id, b)
	}
}

func (o *memObject) GetBytesList(id FieldID) [][]byte {
	list := getList[[]byte](o, id, kindBytes)
	for i := range list {
		list[i] = bytes.Clone(list[i])
	}

	return list
}

func (o *memObject) AddEntityID(id FieldID, v EntityID) { add(o, id, kindEntityID, v) }

func (o *memObject) GetEntityID(id FieldID) EntityID { return get[EntityID](o, id, kindEntityID) }

func (o *memObject) AddEntityIDList(id FieldID, v []EntityID) { addList(o, id, kindEntityID, v) }

func (o *memObject) GetEntityIDList(id FieldID) []EntityID { return getList[EntityID](o, id, kindEntityID) }

func (o *memObject) AddEntityRef(id FieldID, v EntityRef) { add(o, id, kindEntityRef, v) }

func (o *memObject) GetEntityRef(id FieldID) EntityRef { return get[EntityRef](o, id, kindEntityRef) }

func (o *memObject) AddEntityRefList(id FieldID, v []EntityRef) { addList(o, id, kindEntityRef, v) }

func (o *memObject) GetEntityRefList(id FieldID) []EntityRef { return getList[EntityRef](o, id, kindEntityRef) }

func (o *memObject) AddEnum(id FieldID, ordinal uint32) { add(o, id, kindEnum, ordinal) }

func (o *memObject) GetEnum(id FieldID) uint32 { return get[uint32](o, id, kindEnum) }

func (o *memObject) AddEnumList(id FieldID, ordinals []uint32) { addList(o, id, kindEnum, ordinals) }

func (o *memObject) GetEnumList(id FieldID) []uint32 { return getList[uint32](o, id, kindEnum) }

func (o *memObject) Count(id FieldID) int {
	if s, ok := o.fields[id]; ok {
		return len(s.values)
	}

	return 0
}

func (o *memObject) AddObject(id FieldID) Object {
	child := newMemObject()
	s := o.slot(id)
	s.objects = append(s.objects, child)

	return child
}

func (o *memObject) GetObject(id FieldID) Object {
	s, ok := o.fields[id]
	if !ok || len(s.objects) == 0 {
		return newMemObject()
	}

	return s.objects[len(s.objects)-1]
}

func (o *memObject) IndexObject(id FieldID, i int) Object {
	s, ok := o.fields[id]
	if !ok || i < 0 || i >= len(s.objects) {
		return newMemObject()
	}

	return s.objects[i]
}

func (o *memObject) ObjectCount(id FieldID) int {
	if s, ok := o.fields[id]; ok {
		return len(s.objects)
	}

	return 0
}

func (o *memObject) ClearField(id FieldID) {
	o.slot(id).cleared = true
}

func (o *memObject) IsCleared(id FieldID) bool {
	s, ok := o.fields[id]
	return ok && s.cleared
}

func (o *memObject) FieldIDs() []FieldID {
	ids := make([]FieldID, 0, len(o.fields))
	for id := range o.fields {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
