// Package codec is the runtime codec strategy: it turns a compiled program
// into closures that move dynamic records in and out of wire objects.
//
// Values follow the Go representation of their wire type, with entities and
// containers made dynamic:
//
//	leaf        its Go type (bool, int32, ..., []byte, wire.EntityID, wire.EntityRef)
//	Enum        EnumValue
//	List(T)     []any
//	Map(K,V)    map[any]any
//	Option(T)   nil or the value
//	Nested(E)   Record in full values, *Record in deltas
//
// A full Record holds every field of its entity, keyed by field name. A delta
// Record holds only the fields that changed.
package codec
