package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"codec-generator/internal/diagnostic"
	"codec-generator/internal/schema"
	"codec-generator/internal/wiretype"
)

// Options tune compilation.
type Options struct {
	// AllowMapEntryOverlap lets entities with map fields use field ids 1
	// and 2.
	AllowMapEntryOverlap bool
	// Concurrency bounds the descriptors compiled at once; zero or less
	// means no bound.
	Concurrency int
	// Logger receives debug output; nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{Concurrency: 8}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

// Compile compiles every descriptor of s. On any error it returns a
// *Failure listing all of them and no program.
func Compile(ctx context.Context, s *schema.Schema, opts Options) (*Program, error) {
	log := opts.logger()

	structural := schema.Validate(s)
	if structural.HasErrors() {
		return nil, &Failure{Diagnostics: *structural, Err: fmt.Errorf("%w: %w", ErrInvalidSchema, structural.Error())}
	}

	names := NamesOf(s)

	errs := checkNames(s)

	entities := make([]*Entity, len(s.Entities))
	enums := make([]*Enum, len(s.Enums))
	entityErrs := make([]error, len(s.Entities))
	enumErrs := make([]error, len(s.Enums))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i := range s.Enums {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			enums[i], enumErrs[i] = CompileEnum(&s.Enums[i])

			return nil
		})
	}

	for i := range s.Entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entities[i], entityErrs[i] = CompileEntity(&s.Entities[i], names, opts)
			if entityErrs[i] == nil {
				log.Debug("compiled entity",
					slog.String("entity", entities[i].Name),
					slog.Int("fields", len(entities[i].Fields)),
					slog.Bool("component", entities[i].IsComponent))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	for _, err := range slices.Concat(enumErrs, entityErrs) {
		errs = append(errs, collectErrors(err)...)
	}

	if len(errs) == 0 {
		errs = append(errs, checkRecursion(entities)...)
	}

	if len(errs) > 0 {
		return nil, newFailure(errs, *structural)
	}

	prog := &Program{
		Package: s.Package,
		Enums:   enums,
	}
	prog.Diagnostics.Merge(*structural)

	order, err := topoSort(len(entities), func(i int) []int {
		refs, _ := entities[i].Refs()

		var deps []int
		for _, r := range refs {
			if j := slices.IndexFunc(entities, func(e *Entity) bool { return e.Name == r }); j >= 0 {
				deps = append(deps, j)
			}
		}

		return deps
	})

	switch {
	case errors.Is(err, errCycle):
		prog.Entities = entities
		prog.Diagnostics.AddInfo("declaration_order", "entity references form a cycle; keeping declaration order", "", "")
	case err != nil:
		return nil, fmt.Errorf("ordering entities: %w", err)
	default:
		prog.Entities = make([]*Entity, 0, len(order))
		for _, i := range order {
			prog.Entities = append(prog.Entities, entities[i])
		}
	}

	log.Debug("compiled schema",
		slog.String("package", s.Package),
		slog.Int("entities", len(prog.Entities)),
		slog.Int("enums", len(prog.Enums)))

	return prog, nil
}

// checkNames reports names declared twice, duplicate component ids, and
// generated identifiers that collide across declarations.
func checkNames(s *schema.Schema) []*Error {
	var errs []*Error

	owners := map[string]string{}
	claim := func(ident, owner string) {
		if prev, ok := owners[ident]; ok && prev != owner {
			errs = append(errs, &Error{
				Code:   ErrDuplicateName,
				Entity: owner,
				Detail: fmt.Sprintf("generated identifier %s collides with %s", ident, prev),
			})

			return
		}

		owners[ident] = owner
	}

	declared := map[string]struct{}{}
	declare := func(name string) bool {
		if _, ok := declared[name]; ok {
			errs = append(errs, &Error{Code: ErrDuplicateName, Entity: name, Detail: "declared more than once"})
			return false
		}

		declared[name] = struct{}{}

		return true
	}

	for i := range s.Enums {
		en := &s.Enums[i]
		if !declare(en.Name) {
			continue
		}

		for _, ident := range EnumIdentifiers(en.Name) {
			claim(ident, en.Name)
		}
	}

	componentIDs := map[uint32]string{}

	for i := range s.Entities {
		e := &s.Entities[i]
		if !declare(e.Name) {
			continue
		}

		for _, ident := range EntityIdentifiers(e.Name, e.IsComponent()) {
			claim(ident, e.Name)
		}

		if e.ID == nil {
			continue
		}

		if prev, ok := componentIDs[*e.ID]; ok {
			errs = append(errs, &Error{
				Code:   ErrDuplicateComponentID,
				Entity: e.Name,
				Detail: fmt.Sprintf("component id %d already used by %s", *e.ID, prev),
			})

			continue
		}

		componentIDs[*e.ID] = e.Name
	}

	return errs
}

// EntityIdentifiers returns the package-level identifiers generated for an
// entity.
func EntityIdentifiers(name string, component bool) []string {
	ids := []string{name, name + "Data", name + "Update"}
	if component {
		ids = append(ids, name+"ComponentID")
	}

	return ids
}

// EnumIdentifiers returns the package-level identifiers generated for an
// enum, apart from its variant constants.
func EnumIdentifiers(name string) []string {
	return []string{name, name + "FromOrdinal", name + "Values"}
}

// checkRecursion rejects entities that contain themselves through fields
// held by value (nested fields outside any list, map or option), which
// would make their full representation infinitely large.
func checkRecursion(entities []*Entity) []*Error {
	byName := map[string]*Entity{}
	for _, e := range entities {
		byName[e.Name] = e
	}

	direct := func(e *Entity) []string {
		var out []string

		for _, f := range e.Fields {
			if f.Wire.Kind == wiretype.KindNested {
				out = append(out, f.Wire.Ref)
			}
		}

		return out
	}

	const (
		unvisited = iota
		visiting
		done
	)

	state := map[string]int{}

	var (
		errs  []*Error
		stack []string
		visit func(name string)
	)

	visit = func(name string) {
		switch state[name] {
		case visiting:
			start := slices.Index(stack, name)
			cycle := append(slices.Clone(stack[start:]), name)
			errs = append(errs, &Error{
				Code:   ErrRecursiveValue,
				Entity: name,
				Detail: strings.Join(cycle, " -> "),
			})

			return
		case done:
			return
		}

		e, ok := byName[name]
		if !ok {
			return
		}

		state[name] = visiting
		stack = append(stack, name)

		for _, ref := range direct(e) {
			visit(ref)
		}

		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, e := range entities {
		if state[e.Name] == unvisited {
			visit(e.Name)
		}
	}

	return errs
}

// Describe renders a one-line summary of a compiled entity, for logs and the
// dump command.
func Describe(e *Entity) string {
	var b strings.Builder

	b.WriteString(e.Name)

	if e.IsComponent {
		fmt.Fprintf(&b, " (component %d)", e.ComponentID)
	}

	b.WriteString(" {")

	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%d %s %s", f.ID, f.Name, f.Wire)
	}

	b.WriteString("}")

	return b.String()
}

// Summary renders diagnostics one per line, errors first.
func Summary(d diagnostic.Diagnostics) string {
	lines := make([]string, 0, len(d.All()))
	for _, item := range d.All() {
		lines = append(lines, item.Severity.String()+": "+item.String())
	}

	return strings.Join(lines, "\n")
}
