package resolve

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"strings"
)

// Names given to the unnamed Go type constructors.
const (
	SliceName   = "[]"
	MapName     = "map"
	PointerName = "*"
)

// ErrInvalidTypeExpr is returned for declared types that cannot be parsed.
var ErrInvalidTypeExpr = errors.New("invalid type expression")

// TypeExpr is a declared container type: a name and its ordered type
// arguments.
//
//	[]Coordinates          -> {[] [Coordinates]}
//	map[string]int32       -> {map [string int32]}
//	*Coordinates           -> {* [Coordinates]}
//	Pair[string, float64]  -> {Pair [string float64]}
//	HashMap<String, u32>   -> {HashMap [String u32]}
type TypeExpr struct {
	Name string
	Args []TypeExpr
}

// Named reports whether e names a declared type rather than one of the
// unnamed slice, map or pointer constructors.
func (e TypeExpr) Named() bool {
	switch e.Name {
	case "", SliceName, MapName, PointerName:
		return false
	default:
		return true
	}
}

// BaseName returns Name with any package qualifier removed.
func (e TypeExpr) BaseName() string {
	if i := strings.LastIndexAny(e.Name, ".:"); i >= 0 {
		return e.Name[i+1:]
	}

	return e.Name
}

// String renders e back in Go syntax.
func (e TypeExpr) String() string {
	switch {
	case e.Name == SliceName && len(e.Args) == 1:
		return "[]" + e.Args[0].String()
	case e.Name == MapName && len(e.Args) == 2:
		return "map[" + e.Args[0].String() + "]" + e.Args[1].String()
	case e.Name == PointerName && len(e.Args) == 1:
		return "*" + e.Args[0].String()
	case len(e.Args) == 0:
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return e.Name + "[" + strings.Join(args, ", ") + "]"
}

// ParseTypeExpr parses a declared type. Go syntax is tried first; text with
// angle brackets (Vec<T>, Option<T>, HashMap<K, V>) is read with the generic
// angle-bracket grammar.
func ParseTypeExpr(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeExpr{}, nil
	}

	if strings.ContainsRune(s, '<') {
		return parseAngle(s)
	}

	expr, err := parser.ParseExpr(s)
	if err != nil {
		return TypeExpr{}, fmt.Errorf("%w %q: %w", ErrInvalidTypeExpr, s, err)
	}

	return FromAST(expr)
}

// MustParseTypeExpr is ParseTypeExpr for literals known to be valid.
func MustParseTypeExpr(s string) TypeExpr {
	e, err := ParseTypeExpr(s)
	if err != nil {
		panic(err)
	}

	return e
}

// FromAST converts a Go type expression.
func FromAST(expr ast.Expr) (TypeExpr, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		return TypeExpr{Name: x.Name}, nil
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return TypeExpr{}, fmt.Errorf("%w: selector on %T", ErrInvalidTypeExpr, x.X)
		}

		return TypeExpr{Name: pkg.Name + "." + x.Sel.Name}, nil
	case *ast.ParenExpr:
		return FromAST(x.X)
	case *ast.StarExpr:
		return withArgs(PointerName, x.X)
	case *ast.ArrayType:
		return withArgs(SliceName, x.Elt)
	case *ast.MapType:
		return withArgs(MapName, x.Key, x.Value)
	case *ast.IndexExpr:
		base, err := FromAST(x.X)
		if err != nil {
			return TypeExpr{}, err
		}

		return withArgs(base.Name, x.Index)
	case *ast.IndexListExpr:
		base, err := FromAST(x.X)
		if err != nil {
			return TypeExpr{}, err
		}

		return withArgs(base.Name, x.Indices...)
	default:
		return TypeExpr{}, fmt.Errorf("%w: unsupported %T", ErrInvalidTypeExpr, expr)
	}
}

func withArgs(name string, args ...ast.Expr) (TypeExpr, error) {
	out := TypeExpr{Name: name, Args: make([]TypeExpr, 0, len(args))}

	for _, a := range args {
		arg, err := FromAST(a)
		if err != nil {
			return TypeExpr{}, err
		}

		out.Args = append(out.Args, arg)
	}

	return out, nil
}

// parseAngle parses Name<Arg, Arg<...>>.
func parseAngle(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)

	open := strings.IndexByte(s, '<')
	if open < 0 {
		if s == "" || strings.ContainsAny(s, ">,") {
			return TypeExpr{}, fmt.Errorf("%w %q", ErrInvalidTypeExpr, s)
		}

		return TypeExpr{Name: s}, nil
	}

	if !strings.HasSuffix(s, ">") || open == 0 {
		return TypeExpr{}, fmt.Errorf("%w %q: unbalanced angle brackets", ErrInvalidTypeExpr, s)
	}

	parts, err := SplitTopLevel(s[open+1 : len(s)-1])
	if err != nil {
		return TypeExpr{}, fmt.Errorf("%w %q: %w", ErrInvalidTypeExpr, s, err)
	}

	out := TypeExpr{Name: strings.TrimSpace(s[:open])}

	for _, p := range parts {
		arg, err := parseAngle(p)
		if err != nil {
			return TypeExpr{}, err
		}

		out.Args = append(out.Args, arg)
	}

	return out, nil
}

// SplitTopLevel splits s on commas that are not nested inside <> or [].
// Parts are trimmed; an empty input yields no parts.
func SplitTopLevel(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var (
		parts []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}

	return append(parts, strings.TrimSpace(s[start:])), nil
}
