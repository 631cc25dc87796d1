package gen

import (
	"fmt"
	"strings"

	"codec-generator/internal/compiler"
	"codec-generator/internal/rep"
)

// generateStruct renders the full or delta struct of entity e.
func (g *Generator) generateStruct(e *compiler.Entity, delta bool) string {
	var sb strings.Builder

	name := e.FullName()
	if delta {
		name = e.DeltaName()
	}

	fmt.Fprintf(&sb, "type %s struct {\n", name)

	for i := range e.Fields {
		f := &e.Fields[i]

		if f.Doc != "" {
			sb.WriteString(goComment(f.Doc))
			sb.WriteByte('\n')
		}

		typ := f.Full
		if delta {
			typ = f.Delta
		}

		if typ == nil {
			typ = fieldType(f, delta)
		}

		fmt.Fprintf(&sb, "\t%s %s", f.GoName, typ)

		if g.config.GenerateComments {
			fmt.Fprintf(&sb, " // %d: %s", f.ID, f.Wire)
		}

		sb.WriteByte('\n')
	}

	sb.WriteString("}")

	return sb.String()
}

func fieldType(f *compiler.Field, delta bool) *rep.Type {
	if delta {
		return rep.Delta(f.Wire)
	}

	return rep.Full(f.Wire)
}
