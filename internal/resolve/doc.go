// Package resolve turns a field's declared container type and its wire
// marker into a wiretype.Type tree.
//
// Markers are matched by literal text: leaf names (double, EntityId, ...),
// the reference keywords type and enum, and the composites list<T>,
// option<T> and map<K,V>, whose inner markers resolve against the type
// arguments of the container in order.
package resolve
