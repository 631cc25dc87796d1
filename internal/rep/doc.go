// Package rep derives the Go representations of a wire type: the Full type
// that holds a complete value and the Delta type that holds a possibly
// absent change to it.
package rep
