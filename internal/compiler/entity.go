package compiler

import (
	"errors"
	"fmt"
	"slices"

	"codec-generator/internal/match"
	"codec-generator/internal/rep"
	"codec-generator/internal/resolve"
	"codec-generator/internal/schema"
	"codec-generator/internal/wiretype"
)

// Map entries carry their key and value at these ids.
const (
	MapKeyFieldID   uint32 = 1
	MapValueFieldID uint32 = 2
)

// Names lists the entity and enum names field references may resolve to.
type Names struct {
	Entities []string
	Enums    []string
}

// NamesOf collects the names declared by a schema.
func NamesOf(s *schema.Schema) Names {
	var n Names

	for i := range s.Entities {
		n.Entities = append(n.Entities, s.Entities[i].Name)
	}

	for i := range s.Enums {
		n.Enums = append(n.Enums, s.Enums[i].Name)
	}

	return n
}

// CompileEntity compiles one entity descriptor. Every problem found is
// reported; the returned error joins them and the entity is nil.
func CompileEntity(desc *schema.Entity, names Names, opts Options) (*Entity, error) {
	out := &Entity{
		Name:        desc.Name,
		Doc:         desc.Doc,
		IsComponent: desc.IsComponent(),
	}

	if desc.ID != nil {
		out.ComponentID = *desc.ID
	}

	var (
		errs      []error
		seenIDs   = map[uint32]string{}
		seenNames = map[string]string{}
		hasMap    bool
	)

	for _, fd := range desc.Fields {
		if fd.ID == 0 || fd.Wire == "" {
			detail := "missing field id"
			if fd.ID != 0 {
				detail = "missing wire marker"
			}

			errs = append(errs, &Error{Code: ErrUnresolvedField, Entity: desc.Name, Field: fd.Name, Detail: detail})

			continue
		}

		if prev, ok := seenIDs[fd.ID]; ok {
			errs = append(errs, &Error{
				Code:   ErrDuplicateFieldID,
				Entity: desc.Name,
				Field:  fd.Name,
				Detail: fmt.Sprintf("id %d already used by %s", fd.ID, prev),
			})
		} else {
			seenIDs[fd.ID] = fd.Name
		}

		goName := match.GoName(fd.Name)
		if prev, ok := seenNames[goName]; ok {
			errs = append(errs, &Error{
				Code:   ErrDuplicateName,
				Entity: desc.Name,
				Field:  fd.Name,
				Detail: fmt.Sprintf("field %s collides with %s as %s", fd.Name, prev, goName),
			})
		} else {
			seenNames[goName] = fd.Name
		}

		f, err := compileField(desc.Name, fd, names)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		hasMap = hasMap || f.Wire.Contains(wiretype.KindMap)
		out.Fields = append(out.Fields, f)
	}

	if hasMap && !opts.AllowMapEntryOverlap {
		for _, fd := range desc.Fields {
			if fd.ID == MapKeyFieldID || fd.ID == MapValueFieldID {
				errs = append(errs, &Error{
					Code:   ErrReservedFieldID,
					Entity: desc.Name,
					Field:  fd.Name,
					Detail: fmt.Sprintf("id %d is reserved for map entries in entities with map fields", fd.ID),
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return out, nil
}

func compileField(entity string, fd schema.Field, names Names) (Field, error) {
	fail := func(code error, cause error, detail string) (Field, error) {
		return Field{}, &Error{Code: code, Entity: entity, Field: fd.Name, Cause: cause, Detail: detail}
	}

	declared, err := resolve.ParseTypeExpr(fd.Type)
	if err != nil {
		return fail(ErrUnresolvedWireType, err, "")
	}

	wt, err := resolve.Resolve(declared, fd.Wire)
	if err != nil {
		if errors.Is(err, ErrArityMismatch) {
			return fail(ErrArityMismatch, err, "")
		}

		return fail(ErrUnresolvedWireType, err, "")
	}

	if err := wt.Validate(); err != nil {
		if errors.Is(err, ErrInvalidMapKey) {
			return fail(ErrInvalidMapKey, err, "")
		}

		return fail(ErrUnresolvedWireType, err, "")
	}

	entities, enums := wt.Refs()
	for _, ref := range entities {
		if err := checkRef(entity, fd.Name, ref, "type", names.Entities, names.Enums); err != nil {
			return Field{}, err
		}
	}

	for _, ref := range enums {
		if err := checkRef(entity, fd.Name, ref, "enum", names.Enums, names.Entities); err != nil {
			return Field{}, err
		}
	}

	return Field{
		ID:       fd.ID,
		Name:     fd.Name,
		GoName:   match.GoName(fd.Name),
		Doc:      fd.Doc,
		Declared: declared,
		Wire:     wt,
		Full:     rep.Full(wt),
		Delta:    rep.Delta(wt),
	}, nil
}

// checkRef fails unless ref is among known. other lists the names of the
// opposite kind, to point out a type/enum marker mix-up.
func checkRef(entity, field, ref, marker string, known, other []string) error {
	if slices.Contains(known, ref) {
		return nil
	}

	e := &Error{
		Code:   ErrUnresolvedWireType,
		Entity: entity,
		Field:  field,
	}

	if slices.Contains(other, ref) {
		e.Detail = fmt.Sprintf("%s is not a %s target; check the marker", ref, marker)
	} else {
		e.Detail = fmt.Sprintf("unknown %s reference %s", marker, ref)
		e.Suggestions = match.Suggest(ref, known, 2)
	}

	return e
}
