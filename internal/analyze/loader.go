package analyze

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"math"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"codec-generator/internal/common"
	"codec-generator/internal/match"
	"codec-generator/internal/resolve"
	"codec-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts their schema declarations.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir    string
	Logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Logger: slog.Default()}
}

// Load loads the packages matching patterns and collects every declaration
// marked with a schema directive. Patterns are standard Go package patterns
// ("./descriptors", "codec-generator/examples/improbable/descriptors").
func (a *Analyzer) Load(ctx context.Context, patterns ...string) (*Result, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     a.Dir,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	res := &Result{Schema: &schema.Schema{}}
	if first, ok := common.First(pkgs); ok {
		res.Schema.Package = first.Name
	}

	for _, pkg := range pkgs {
		p := &pkgScan{pkg: pkg, res: res, logger: a.logger(), names: NewTypeStringer(pkg.Types)}

		if err := p.scan(); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return res, nil
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}

	return a.Logger
}

// pkgScan collects the declarations of one package.
type pkgScan struct {
	pkg    *packages.Package
	res    *Result
	logger *slog.Logger
	names  TypeStringer

	// constDocs maps constant names to their doc comments.
	constDocs map[string]string
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

func (p *pkgScan) scan() error {
	p.constDocs = map[string]string{}

	var decls []typeDecl

	for _, file := range p.pkg.Syntax {
		for _, d := range file.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gen.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					doc := s.Doc
					if doc == nil && len(gen.Specs) == 1 {
						doc = gen.Doc
					}

					decls = append(decls, typeDecl{spec: s, doc: doc})
				case *ast.ValueSpec:
					if gen.Tok != token.CONST {
						continue
					}

					for _, name := range s.Names {
						p.constDocs[name.Name] = docText(s.Doc, s.Comment)
					}
				}
			}
		}
	}

	var errs []error

	for _, d := range decls {
		if err := p.decl(d); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *pkgScan) decl(d typeDecl) error {
	kind, id, found, err := directive(d.doc)
	if !found {
		return nil
	}

	name := d.spec.Name.Name
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	obj, ok := p.pkg.TypesInfo.Defs[d.spec.Name].(*types.TypeName)
	if !ok {
		return fmt.Errorf("%w: %s has no type information", ErrBadDecl, name)
	}

	decl := Decl{
		ID:          TypeID{PkgPath: p.pkg.PkgPath, Name: name},
		Kind:        kind,
		ComponentID: id,
		Pos:         p.pkg.Fset.Position(d.spec.Pos()),
	}
	p.res.Decls = append(p.res.Decls, decl)

	p.logger.Debug("schema declaration", "type", decl.ID, "kind", kind, "pos", decl.Pos)

	doc := docText(d.doc)

	if kind == DeclEnum {
		return p.enum(obj, doc)
	}

	return p.entity(obj, decl, doc, d.spec)
}

func (p *pkgScan) entity(obj *types.TypeName, decl Decl, doc string, spec *ast.TypeSpec) error {
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return fmt.Errorf("%w: %s is marked %s but is not a struct", ErrBadDecl, obj.Name(), decl.Kind)
	}

	astFields := structFields(spec)

	e := schema.Entity{Name: obj.Name(), Doc: doc}
	if decl.Kind == DeclComponent {
		e.ID = schema.ComponentID(decl.ComponentID)
	}

	for i := range st.NumFields() {
		v := st.Field(i)

		raw, ok := reflect.StructTag(st.Tag(i)).Lookup(TagKey)
		if !ok {
			p.logger.Debug("skipping untagged field", "type", obj.Name(), "field", v.Name())

			continue
		}

		if v.Embedded() {
			return fmt.Errorf("%w: %s.%s: embedded fields cannot carry a schema tag", ErrBadDecl, obj.Name(), v.Name())
		}

		f, err := p.field(obj.Name(), v, raw)
		if err != nil {
			return err
		}

		if af, ok := astFields[v.Name()]; ok {
			f.Doc = docText(af.Doc, af.Comment)
		}

		e.Fields = append(e.Fields, f)
	}

	p.res.Schema.Entities = append(p.res.Schema.Entities, e)

	return nil
}

func (p *pkgScan) field(entity string, v *types.Var, raw string) (schema.Field, error) {
	tag, err := ParseFieldTag(raw)
	if err != nil {
		return schema.Field{}, fmt.Errorf("%s.%s: %w", entity, v.Name(), err)
	}

	declared, err := p.names.String(v.Type())
	if err != nil {
		return schema.Field{}, fmt.Errorf("%s.%s: %w", entity, v.Name(), err)
	}

	name := tag.Name
	if name == "" {
		name = match.SnakeName(v.Name())
	}

	p.checkCompatibility(entity, name, v.Type(), declared, tag.Marker)

	return schema.Field{ID: tag.ID, Name: name, Type: declared, Wire: tag.Marker}, nil
}

// checkCompatibility notes declared types that do not match the
// representation the marker implies. Generated code uses its own types, so
// a mismatch only means the descriptor struct is misleading.
func (p *pkgScan) checkCompatibility(entity, field string, declared types.Type, expr, marker string) {
	te, err := resolve.ParseTypeExpr(expr)
	if err != nil {
		return
	}

	wt, err := resolve.Resolve(te, marker)
	if err != nil {
		// The compiler reports unresolvable markers.
		return
	}

	res := match.ScoreTypeCompatibility(declared, wt)

	switch res.Compatibility {
	case match.TypeIncompatible:
		p.res.Diagnostics.AddWarning("declared_type_mismatch",
			fmt.Sprintf("declared %s cannot hold %s: %s", res.Declared, res.Wire, res.Reason), entity, field)
	case match.TypeConvertible:
		p.res.Diagnostics.AddInfo("declared_type_conversion",
			fmt.Sprintf("declared %s holds %s with a conversion: %s", res.Declared, res.Wire, res.Reason), entity, field)
	}
}

func (p *pkgScan) enum(obj *types.TypeName, doc string) error {
	basic, ok := obj.Type().Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsInteger == 0 {
		return fmt.Errorf("%w: %s is marked enum but is not an integer type", ErrBadDecl, obj.Name())
	}

	var consts []*types.Const

	scope := p.pkg.Types.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), obj.Type()) {
			consts = append(consts, c)
		}
	}

	slices.SortFunc(consts, func(a, b *types.Const) int { return cmp.Compare(a.Pos(), b.Pos()) })

	en := schema.Enum{Name: obj.Name(), Doc: doc}

	for _, c := range consts {
		v, exact := constant.Uint64Val(constant.ToInt(c.Val()))
		if !exact || v > math.MaxUint32 {
			return fmt.Errorf("%w: %s = %s is not a uint32 ordinal", ErrBadDecl, c.Name(), c.Val())
		}

		name := strings.TrimPrefix(c.Name(), obj.Name())
		if name == "" {
			name = c.Name()
		}

		en.Variants = append(en.Variants, schema.Variant{Name: name, Value: uint32(v), Doc: p.constDocs[c.Name()]})
	}

	p.res.Schema.Enums = append(p.res.Schema.Enums, en)

	return nil
}

// structFields indexes the AST fields of a struct type spec by name.
func structFields(spec *ast.TypeSpec) map[string]*ast.Field {
	out := map[string]*ast.Field{}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return out
	}

	for _, f := range st.Fields.List {
		for _, n := range f.Names {
			out[n.Name] = f
		}
	}

	return out
}
