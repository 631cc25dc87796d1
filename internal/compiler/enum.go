package compiler

import (
	"errors"
	"fmt"

	"codec-generator/internal/match"
	"codec-generator/internal/schema"
)

// CompileEnum compiles one enum descriptor. Variant values and names must be
// unique.
func CompileEnum(desc *schema.Enum) (*Enum, error) {
	out := &Enum{Name: desc.Name, Doc: desc.Doc}

	var (
		errs       []error
		seenValues = map[uint32]string{}
		seenNames  = map[string]struct{}{}
	)

	for _, v := range desc.Variants {
		if prev, ok := seenValues[v.Value]; ok {
			errs = append(errs, &Error{
				Code:   ErrDuplicateEnumValue,
				Entity: desc.Name,
				Field:  v.Name,
				Detail: fmt.Sprintf("value %d already used by %s", v.Value, prev),
			})

			continue
		}

		goName := desc.Name + match.GoName(v.Name)
		if _, ok := seenNames[goName]; ok {
			errs = append(errs, &Error{
				Code:   ErrDuplicateName,
				Entity: desc.Name,
				Field:  v.Name,
				Detail: "variant declared twice as " + goName,
			})

			continue
		}

		seenValues[v.Value] = v.Name
		seenNames[goName] = struct{}{}

		out.Variants = append(out.Variants, Variant{
			Name:   v.Name,
			GoName: goName,
			Value:  v.Value,
			Doc:    v.Doc,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return out, nil
}
