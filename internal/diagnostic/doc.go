// Package diagnostic provides structured errors, warnings and notes produced
// while loading and compiling a schema.
//
// Each diagnostic carries a stable code, the entity and field it concerns,
// and optional suggestions (for example the closest known marker to a
// misspelled one).
package diagnostic
