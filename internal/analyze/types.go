package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"codec-generator/internal/common"
	"codec-generator/internal/diagnostic"
	"codec-generator/internal/schema"
)

const (
	// DirectivePrefix starts a schema directive in a doc comment.
	DirectivePrefix = "schema:"
	// TagKey is the struct tag key of entity fields.
	TagKey = "schema"
)

// Errors reported for malformed declarations.
var (
	ErrBadDirective = errors.New("malformed schema directive")
	ErrBadTag       = errors.New("malformed schema tag")
	ErrBadDecl      = errors.New("unsupported declaration")
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "codec-generator/examples/improbable/descriptors"
	Name    string // e.g., "Worker"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// DeclKind is what a directive declares.
type DeclKind int

const (
	DeclUnknown   DeclKind = iota
	DeclComponent          // schema:component <id>
	DeclType               // schema:type
	DeclEnum               // schema:enum
)

// String returns the directive word of the kind.
func (k DeclKind) String() string {
	switch k {
	case DeclComponent:
		return "component"
	case DeclType:
		return "type"
	case DeclEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// Decl records one declaration found in the loaded packages.
type Decl struct {
	ID          TypeID
	Kind        DeclKind
	ComponentID uint32
	Pos         token.Position
}

// ParseDirective parses the text after "//" of a comment line. ok is false
// when the line is not a schema directive.
func ParseDirective(line string) (kind DeclKind, id uint32, ok bool, err error) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), DirectivePrefix)
	if !found {
		return DeclUnknown, 0, false, nil
	}

	words := strings.Fields(rest)
	if len(words) == 0 {
		return DeclUnknown, 0, true, fmt.Errorf("%w: %q", ErrBadDirective, line)
	}

	switch words[0] {
	case "component":
		if len(words) != 2 {
			return DeclComponent, 0, true, fmt.Errorf("%w: component needs one id: %q", ErrBadDirective, line)
		}

		n, err := strconv.ParseUint(words[1], 10, 32)
		if err != nil {
			return DeclComponent, 0, true, fmt.Errorf("%w: component id %q: %w", ErrBadDirective, words[1], err)
		}

		return DeclComponent, uint32(n), true, nil
	case "type", "enum":
		if len(words) != 1 {
			return DeclUnknown, 0, true, fmt.Errorf("%w: %s takes no arguments: %q", ErrBadDirective, words[0], line)
		}

		if words[0] == "enum" {
			return DeclEnum, 0, true, nil
		}

		return DeclType, 0, true, nil
	default:
		return DeclUnknown, 0, true, fmt.Errorf("%w: unknown kind %q", ErrBadDirective, words[0])
	}
}

// FieldTag is a parsed `schema:"<id>,<marker>[,<name>]"` tag. Name
// defaults to the snake_case form of the Go field name.
type FieldTag struct {
	ID     uint32
	Marker string
	Name   string
}

// ParseFieldTag parses the value of a schema struct tag. Markers may
// contain commas inside angle brackets ("map<string,int32>").
func ParseFieldTag(tag string) (FieldTag, error) {
	idPart, rest, found := strings.Cut(tag, ",")
	if !found {
		return FieldTag{}, fmt.Errorf("%w: %q has no marker", ErrBadTag, tag)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 32)
	if err != nil || id == 0 {
		return FieldTag{}, fmt.Errorf("%w: %q: field id must be a positive integer", ErrBadTag, tag)
	}

	out := FieldTag{ID: uint32(id), Marker: strings.TrimSpace(rest)}

	if i := lastTopLevelComma(rest); i >= 0 {
		out.Marker = strings.TrimSpace(rest[:i])
		out.Name = strings.TrimSpace(rest[i+1:])
	}

	if out.Marker == "" {
		return FieldTag{}, fmt.Errorf("%w: %q has an empty marker", ErrBadTag, tag)
	}

	return out, nil
}

// lastTopLevelComma returns the index of the last comma outside angle
// brackets, or -1.
func lastTopLevelComma(s string) int {
	depth := 0

	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// Result is what Load found.
type Result struct {
	Schema *schema.Schema
	Decls  []Decl
	// Diagnostics holds type compatibility notes; errors abort Load.
	Diagnostics diagnostic.Diagnostics
}

// Decl returns the declaration of the named type.
func (r *Result) Decl(name string) (Decl, bool) {
	for _, d := range r.Decls {
		if d.ID.Name == name {
			return d, true
		}
	}

	return Decl{}, false
}
