// Package match provides identifier tokenizing, Go naming, edit-distance
// suggestions for misspelled markers and references, and compatibility
// scoring between a declared Go type and the representation a wire marker
// implies.
//
// Key functions:
//   - GoName: exported Go identifier for a schema name
//   - Suggest: closest known names to an unknown one
//   - ScoreTypeCompatibility: declared type vs. representation type
package match
