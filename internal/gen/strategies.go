package gen

import (
	"fmt"
	"strings"

	"codec-generator/internal/wiretype"
)

// code accumulates generated statements. Indentation is left to go/format.
type code struct {
	strings.Builder
}

func (c *code) line(format string, args ...any) {
	fmt.Fprintf(&c.Builder, format, args...)
	c.WriteByte('\n')
}

// emitter writes the statements of one generated file and records the
// imports they need.
type emitter struct {
	imports map[string]importSpec
}

func newEmitter() *emitter {
	return &emitter{imports: map[string]importSpec{}}
}

func (e *emitter) use(path string) {
	e.imports[path] = importSpec{Path: path, Std: true}
}

// tryAssign assigns a fallible call to lhs and returns from the decoder on
// error, prefixing it with where.
func (e *emitter) tryAssign(c *code, lhs, call, where string) {
	e.use("fmt")
	c.line("if %s, err = %s; err != nil {", lhs, call)
	c.line("return out, fmt.Errorf(%q, err)", where+": %w")
	c.line("}")
}

// encodeFull writes the full value v of type t at field id of target.
func (e *emitter) encodeFull(c *code, t *wiretype.Type, target, id, v string, depth int) {
	switch t.Kind {
	case wiretype.KindEnum:
		c.line("%s.AddEnum(%s, %s.Ordinal())", target, id, paren(v))
	case wiretype.KindNested:
		c.line("%s(%s, %s.AddObject(%s))", encodeDataFunc(t.Ref), addr(v), target, id)
	case wiretype.KindOption:
		c.line("if %s != nil {", v)
		e.encodeFull(c, t.Elem, target, id, deref(v), depth)
		c.line("}")
	case wiretype.KindList:
		e.encodeList(c, t, target, id, v, depth)
	case wiretype.KindMap:
		e.encodeMap(c, t, target, id, v, depth)
	default:
		c.line("%s.Add%s(%s, %s)", target, t.Kind.AccessorName(), id, v)
	}
}

// decodeFull reads a full value of type t at field id of source into lhs.
func (e *emitter) decodeFull(c *code, t *wiretype.Type, source, id, lhs, where string, depth int) {
	switch t.Kind {
	case wiretype.KindEnum:
		e.tryAssign(c, lhs, fmt.Sprintf("wire.GetEnum(%s, %s, %s)", source, id, fromOrdinalFunc(t.Ref)), where)
	case wiretype.KindNested:
		e.tryAssign(c, lhs, fmt.Sprintf("%s(%s.GetObject(%s))", decodeDataFunc(t.Ref), source, id), where)
	case wiretype.KindOption:
		count := "Count"
		if t.Elem.Kind == wiretype.KindNested {
			count = "ObjectCount"
		}

		v := valueVar(depth)
		c.line("if %s.%s(%s) > 0 {", source, count, id)
		c.line("var %s %s", v, fullType(t.Elem))
		e.decodeFull(c, t.Elem, source, id, v, where, depth+1)
		c.line("%s = &%s", lhs, v)
		c.line("}")
	case wiretype.KindList:
		e.decodeList(c, t, source, id, lhs, where, depth)
	case wiretype.KindMap:
		e.decodeMap(c, t, source, id, lhs, where, depth)
	default:
		c.line("%s = %s.Get%s(%s)", lhs, source, t.Kind.AccessorName(), id)
	}
}

// encodeDelta writes the update p, a pointer that is nil when the field
// carries no change. An empty container is sent as a cleared field.
func (e *emitter) encodeDelta(c *code, t *wiretype.Type, target, id, p string, depth int) {
	switch t.Kind {
	case wiretype.KindOption:
		e.encodeDelta(c, t.Elem, target, id, p, depth)
	case wiretype.KindNested:
		c.line("if %s != nil {", p)
		c.line("%s(%s, %s.AddObject(%s))", encodeUpdateFunc(t.Ref), p, target, id)
		c.line("}")
	case wiretype.KindList, wiretype.KindMap:
		c.line("if %s != nil {", p)
		c.line("if len(%s) == 0 {", deref(p))
		c.line("%s.ClearField(%s)", target, id)
		c.line("} else {")
		e.encodeFull(c, t, target, id, deref(p), depth)
		c.line("}")
		c.line("}")
	default:
		c.line("if %s != nil {", p)
		e.encodeFull(c, t, target, id, deref(p), depth)
		c.line("}")
	}
}

// decodeDelta reads an update of type t into the pointer lhs, leaving it
// nil when source carries nothing for the field. A cleared container reads
// as a pointer to an empty, non-nil container.
func (e *emitter) decodeDelta(c *code, t *wiretype.Type, source, id, lhs, where string, depth int) {
	var present string

	switch t.Kind {
	case wiretype.KindOption:
		e.decodeDelta(c, t.Elem, source, id, lhs, where, depth)

		return
	case wiretype.KindNested:
		v := valueVar(depth)
		c.line("if %s.ObjectCount(%s) == 1 {", source, id)
		c.line("var %s %s", v, deltaType(t)[1:])
		e.tryAssign(c, v, fmt.Sprintf("%s(%s.GetObject(%s))", decodeUpdateFunc(t.Ref), source, id), where)
		c.line("%s = &%s", lhs, v)
		c.line("}")

		return
	case wiretype.KindList:
		switch {
		case t.Elem.Kind == wiretype.KindNested:
			present = fmt.Sprintf("wire.HasObjects(%s, %s)", source, id)
		case t.Elem.Kind == wiretype.KindEnum:
			present = fmt.Sprintf("%s.Count(%s) > 0 || %s.IsCleared(%s)", source, id, source, id)
		default:
			c.line("%s = wire.OptionalList(%s, %s, %s.Get%sList)", lhs, source, id, source, t.Elem.Kind.AccessorName())

			return
		}
	case wiretype.KindMap:
		present = fmt.Sprintf("wire.HasObjects(%s, %s)", source, id)
	default:
		present = fmt.Sprintf("%s.Count(%s) > 0", source, id)
	}

	v := valueVar(depth)
	c.line("if %s {", present)

	if t.Kind == wiretype.KindList || t.Kind == wiretype.KindMap {
		c.line("%s := %s{}", v, fullType(t))
	} else {
		c.line("var %s %s", v, fullType(t))
	}

	e.decodeFull(c, t, source, id, v, where, depth+1)
	c.line("%s = &%s", lhs, v)
	c.line("}")
}

// copyDelta deep copies the update src into dst.
func (e *emitter) copyDelta(c *code, t *wiretype.Type, dst, src string, depth int) {
	v := valueVar(depth)

	switch {
	case t.Kind == wiretype.KindOption:
		e.copyDelta(c, t.Elem, dst, src, depth)
	case t.Kind == wiretype.KindNested:
		c.line("if %s != nil {", src)
		c.line("%s := %s(%s)", v, copyUpdateFunc(t.Ref), src)
		c.line("%s = &%s", dst, v)
		c.line("}")
	case simple(t):
		c.line("if %s != nil {", src)
		c.line("%s := %s", v, deref(src))
		c.line("%s = &%s", dst, v)
		c.line("}")
	default:
		c.line("if %s != nil {", src)
		c.line("var %s %s", v, fullType(t))
		e.cloneFull(c, t, v, deref(src), depth+1)
		c.line("%s = &%s", dst, v)
		c.line("}")
	}
}

// cloneFull deep copies the full value src into dst.
func (e *emitter) cloneFull(c *code, t *wiretype.Type, dst, src string, depth int) {
	switch {
	case simple(t):
		c.line("%s = %s", dst, src)
	case t.Kind == wiretype.KindBytes:
		e.use("slices")
		c.line("%s = slices.Clone(%s)", dst, src)
	case t.Kind == wiretype.KindNested:
		c.line("%s = %s(%s)", dst, cloneDataFunc(t.Ref), addr(src))
	case t.Kind == wiretype.KindOption:
		cv := cloneVar(depth)
		c.line("if %s != nil {", src)
		c.line("var %s %s", cv, fullType(t.Elem))
		e.cloneFull(c, t.Elem, cv, deref(src), depth+1)
		c.line("%s = &%s", dst, cv)
		c.line("}")
	case t.Kind == wiretype.KindList:
		e.cloneList(c, t, dst, src, depth)
	case t.Kind == wiretype.KindMap:
		e.cloneMap(c, t, dst, src, depth)
	}
}

// owned reports whether a field of type t holds nested updates that must be
// released with the update that holds them.
func owned(t *wiretype.Type) bool {
	return t.Kind == wiretype.KindNested || (t.Kind == wiretype.KindOption && t.Elem.Kind == wiretype.KindNested)
}

func refOf(t *wiretype.Type) string {
	if t.Kind == wiretype.KindOption {
		return t.Elem.Ref
	}

	return t.Ref
}
