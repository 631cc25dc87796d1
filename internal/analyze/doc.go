// Package analyze reads schema declarations from Go packages.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. Struct
// types carry a directive in their doc comment and tag every wire field:
//
//	// Worker describes a connected worker.
//	// schema:component 60
//	type Worker struct {
//		WorkerID   string     `schema:"1,string"`
//		Connection Connection `schema:"3,type"`
//	}
//
//	// schema:type
//	type Connection struct { ... }
//
// Enums are named integer types marked "// schema:enum"; their constants
// are the variants, named after the constant with the enum name trimmed.
//
// The result is a schema.Schema, so Go and YAML descriptors go through the
// same compiler.
package analyze
