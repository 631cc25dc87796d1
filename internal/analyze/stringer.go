package analyze

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
)

// TypeStringer renders go/types types as declared container types, the
// syntax schema.Field.Type uses. Types of the described package are
// unqualified; other named types are qualified with their package name.
type TypeStringer struct {
	pkg *types.Package
}

// NewTypeStringer creates a TypeStringer relative to pkg.
func NewTypeStringer(pkg *types.Package) TypeStringer {
	return TypeStringer{pkg: pkg}
}

func (s TypeStringer) qualifier(p *types.Package) string {
	if p == s.pkg {
		return ""
	}

	return p.Name()
}

// String renders t, rejecting types no wire marker can describe.
func (s TypeStringer) String(t types.Type) (string, error) {
	if err := s.check(t); err != nil {
		return "", err
	}

	return types.TypeString(t, s.qualifier), nil
}

func (s TypeStringer) check(t types.Type) error {
	switch tt := t.(type) {
	case *types.Basic, *types.Named:
		return nil
	case *types.Alias:
		return s.check(types.Unalias(tt))
	case *types.Pointer:
		return s.check(tt.Elem())
	case *types.Slice:
		return s.check(tt.Elem())
	case *types.Map:
		if err := s.check(tt.Key()); err != nil {
			return err
		}

		return s.check(tt.Elem())
	default:
		return fmt.Errorf("%w: field type %s", ErrBadDecl, types.TypeString(t, s.qualifier))
	}
}

// docText returns the text of a doc comment without schema directives.
func docText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g == nil {
			continue
		}

		var kept []string

		for _, line := range strings.Split(g.Text(), "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), DirectivePrefix) {
				continue
			}

			kept = append(kept, line)
		}

		if text := strings.TrimSpace(strings.Join(kept, "\n")); text != "" {
			return text
		}
	}

	return ""
}

// directive finds the schema directive in the first comment group that has
// one.
func directive(groups ...*ast.CommentGroup) (kind DeclKind, id uint32, found bool, err error) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			kind, id, found, err = ParseDirective(strings.TrimPrefix(c.Text, "//"))
			if found {
				return kind, id, found, err
			}
		}
	}

	return DeclUnknown, 0, false, nil
}
