// Package wiretype defines the wire type algebra: a closed set of leaf kinds
// plus the List, Map, Option, Nested and Enum composites, arranged as a tree.
//
// A Type tree is what a field descriptor resolves to. Every downstream stage
// (representation, codec synthesis, source generation) dispatches on Kind.
package wiretype
