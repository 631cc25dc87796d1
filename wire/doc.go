// Package wire is the runtime imported by generated codecs.
//
// It defines the field-id-addressed Object that generated encode/decode
// functions read and write, the component buffers that wrap an Object for
// component entities, the entity id types, and the enum ordinal helpers.
//
// Binary encoding of an Object is outside the scope of this package; NewObject
// returns an in-memory implementation suitable for tests and for adapting to
// a concrete transport.
package wire
