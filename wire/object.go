package wire

// FieldID addresses a field inside an Object.
type FieldID = uint32

// EntityID identifies an entity in the simulation.
type EntityID int64

// EntityRef is a reference to another entity, carried on the wire as its id.
type EntityRef int64

// Object is a field-id-addressed container of typed scalar values and
// sub-objects.
//
// A field id may hold several values. Get returns the last value written at
// the id (the zero value when the id holds nothing), GetList returns every
// value (nil when there are none), and Count reports how many scalar values the id holds. Sub-objects
// live in a separate namespace queried with ObjectCount.
//
// ClearField marks an id as explicitly emptied. Deltas use it to tell "the
// list became empty" apart from "the list did not change".
type Object interface {
	AddBool(id FieldID, v bool)
	GetBool(id FieldID) bool
	AddBoolList(id FieldID, v []bool)
	GetBoolList(id FieldID) []bool

	AddInt32(id FieldID, v int32)
	GetInt32(id FieldID) int32
	AddInt32List(id FieldID, v []int32)
	GetInt32List(id FieldID) []int32

	AddInt64(id FieldID, v int64)
	GetInt64(id FieldID) int64
	AddInt64List(id FieldID, v []int64)
	GetInt64List(id FieldID) []int64

	AddUint32(id FieldID, v uint32)
	GetUint32(id FieldID) uint32
	AddUint32List(id FieldID, v []uint32)
	GetUint32List(id FieldID) []uint32

	AddUint64(id FieldID, v uint64)
	GetUint64(id FieldID) uint64
	AddUint64List(id FieldID, v []uint64)
	GetUint64List(id FieldID) []uint64

	AddSint32(id FieldID, v int32)
	GetSint32(id FieldID) int32
	AddSint32List(id FieldID, v []int32)
	GetSint32List(id FieldID) []int32

	AddSint64(id FieldID, v int64)
	GetSint64(id FieldID) int64
	AddSint64List(id FieldID, v []int64)
	GetSint64List(id FieldID) []int64

	AddFixed32(id FieldID, v uint32)
	GetFixed32(id FieldID) uint32
	AddFixed32List(id FieldID, v []uint32)
	GetFixed32List(id FieldID) []uint32

	AddFixed64(id FieldID, v uint64)
	GetFixed64(id FieldID) uint64
	AddFixed64List(id FieldID, v []uint64)
	GetFixed64List(id FieldID) []uint64

	AddSfixed32(id FieldID, v int32)
	GetSfixed32(id FieldID) int32
	AddSfixed32List(id FieldID, v []int32)
	GetSfixed32List(id FieldID) []int32

	AddSfixed64(id FieldID, v int64)
	GetSfixed64(id FieldID) int64
	AddSfixed64List(id FieldID, v []int64)
	GetSfixed64List(id FieldID) []int64

	AddFloat(id FieldID, v float32)
	GetFloat(id FieldID) float32
	AddFloatList(id FieldID, v []float32)
	GetFloatList(id FieldID) []float32

	AddDouble(id FieldID, v float64)
	GetDouble(id FieldID) float64
	AddDoubleList(id FieldID, v []float64)
	GetDoubleList(id FieldID) []float64

	AddString(id FieldID, v string)
	GetString(id FieldID) string
	AddStringList(id FieldID, v []string)
	GetStringList(id FieldID) []string

	AddBytes(id FieldID, v []byte)
	GetBytes(id FieldID) []byte
	AddBytesList(id FieldID, v [][]byte)
	GetBytesList(id FieldID) [][]byte

	AddEntityID(id FieldID, v EntityID)
	GetEntityID(id FieldID) EntityID
	AddEntityIDList(id FieldID, v []EntityID)
	GetEntityIDList(id FieldID) []EntityID

	AddEntityRef(id FieldID, v EntityRef)
	GetEntityRef(id FieldID) EntityRef
	AddEntityRefList(id FieldID, v []EntityRef)
	GetEntityRefList(id FieldID) []EntityRef

	// Enum values travel as their uint32 ordinal.
	AddEnum(id FieldID, ordinal uint32)
	GetEnum(id FieldID) uint32
	AddEnumList(id FieldID, ordinals []uint32)
	GetEnumList(id FieldID) []uint32

	// Count returns the number of scalar values stored at id.
	Count(id FieldID) int

	// AddObject appends a new empty sub-object at id and returns it.
	AddObject(id FieldID) Object
	// GetObject returns the last sub-object at id, or an empty object.
	GetObject(id FieldID) Object
	// IndexObject returns the i-th sub-object at id, or an empty object.
	IndexObject(id FieldID, i int) Object
	// ObjectCount returns the number of sub-objects stored at id.
	ObjectCount(id FieldID) int

	ClearField(id FieldID)
	IsCleared(id FieldID) bool

	// FieldIDs returns every id that holds a value, a sub-object or a clear
	// mark, in ascending order.
	FieldIDs() []FieldID
}

// OptionalList is the presence-qualified list read used by delta decoding.
// It returns nil when id holds no values and was not cleared, and a pointer
// to the (possibly empty) list otherwise.
func OptionalList[T any](obj Object, id FieldID, get func(FieldID) []T) *[]T {
	if obj.Count(id) == 0 && !obj.IsCleared(id) {
		return nil
	}

	list := get(id)
	if list == nil {
		list = []T{}
	}

	return &list
}

// HasObjects reports whether id carries sub-objects or a clear mark.
func HasObjects(obj Object, id FieldID) bool {
	return obj.ObjectCount(id) > 0 || obj.IsCleared(id)
}
