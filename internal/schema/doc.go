// Package schema defines the descriptor model the compiler consumes
// (entities with field descriptors, and enums with variants) and loads it
// from YAML schema files.
//
// Loading is structural only: Validate checks names and shapes, while wire
// type resolution and reference checks belong to the compiler.
package schema
