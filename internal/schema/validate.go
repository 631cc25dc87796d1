package schema

import (
	"fmt"
	"go/token"

	"codec-generator/internal/diagnostic"
	"codec-generator/internal/match"
)

// Diagnostic codes reported by Validate.
const (
	CodeSchemaNil      = "schema_is_nil"
	CodeInvalidPackage = "invalid_package"
	CodeInvalidName    = "invalid_name"
	CodeEmptyEnum      = "empty_enum"
)

// Validate checks the structure of a schema: every entity, enum, field and
// variant has a name that can become a Go identifier, and the package name
// is valid. Semantic checks (ids, markers, references) are the compiler's.
func Validate(s *Schema) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if s == nil {
		res.AddError(CodeSchemaNil, "schema is nil", "", "")
		return res
	}

	if s.Package != "" && !token.IsIdentifier(s.Package) {
		res.AddError(CodeInvalidPackage, fmt.Sprintf("package name %q is not a Go identifier", s.Package), "", "")
	}

	for i := range s.Enums {
		en := &s.Enums[i]
		checkTypeName(res, en.Name, "enum")

		if len(en.Variants) == 0 {
			res.AddWarning(CodeEmptyEnum, "enum declares no variants", en.Name, "")
		}

		for _, v := range en.Variants {
			checkMemberName(res, en.Name, v.Name, "variant")
		}
	}

	for i := range s.Entities {
		e := &s.Entities[i]
		checkTypeName(res, e.Name, "entity")

		for _, f := range e.Fields {
			checkMemberName(res, e.Name, f.Name, "field")
		}
	}

	return res
}

func checkTypeName(res *diagnostic.Diagnostics, name, what string) {
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		res.AddError(CodeInvalidName, fmt.Sprintf("%s name %q is not an exported Go identifier", what, name), name, "")
	}
}

func checkMemberName(res *diagnostic.Diagnostics, owner, name, what string) {
	if name == "" {
		res.AddError(CodeInvalidName, what+" without a name", owner, "")
		return
	}

	if goName := match.GoName(name); !token.IsIdentifier(goName) {
		res.AddError(CodeInvalidName, fmt.Sprintf("%s name %q does not map to a Go identifier", what, name), owner, name)
	}
}
