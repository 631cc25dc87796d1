package gen

import (
	"fmt"

	"codec-generator/internal/compiler"
	"codec-generator/internal/wiretype"
)

var (
	mapKeyID   = fieldID(compiler.MapKeyFieldID)
	mapValueID = fieldID(compiler.MapValueFieldID)
)

// encodeList writes list v. Leaves and enums go out as one repeated field,
// nested entities as one sub-object per element.
func (e *emitter) encodeList(c *code, t *wiretype.Type, target, id, v string, depth int) {
	switch t.Elem.Kind {
	case wiretype.KindEnum:
		c.line("wire.AddEnumList(%s, %s, %s)", target, id, v)
	case wiretype.KindNested:
		i := indexVar(depth)
		c.line("for %s := range %s {", i, v)
		c.line("%s(&%s[%s], %s.AddObject(%s))", encodeDataFunc(t.Elem.Ref), paren(v), i, target, id)
		c.line("}")
	default:
		c.line("%s.Add%sList(%s, %s)", target, t.Elem.Kind.AccessorName(), id, v)
	}
}

// encodeMap writes one entry object per pair of map v, the key at field 1
// and the value at field 2.
func (e *emitter) encodeMap(c *code, t *wiretype.Type, target, id, v string, depth int) {
	k, val, entry := keyVar(depth), valueVar(depth), entryVar(depth)

	c.line("for %s, %s := range %s {", k, val, v)
	c.line("%s := %s.AddObject(%s)", entry, target, id)
	e.encodeFull(c, t.Key, entry, mapKeyID, k, depth+1)
	e.encodeFull(c, t.Value, entry, mapValueID, val, depth+1)
	c.line("}")
}

// decodeList reads list lhs, leaving it untouched when source holds no
// elements at id.
func (e *emitter) decodeList(c *code, t *wiretype.Type, source, id, lhs, where string, depth int) {
	switch t.Elem.Kind {
	case wiretype.KindEnum:
		c.line("if %s.Count(%s) > 0 {", source, id)
		e.tryAssign(c, lhs, fmt.Sprintf("wire.GetEnumList(%s, %s, %s)", source, id, fromOrdinalFunc(t.Elem.Ref)), where)
		c.line("}")
	case wiretype.KindNested:
		i := indexVar(depth)
		c.line("if %s.ObjectCount(%s) > 0 {", source, id)
		c.line("%s = make(%s, %s.ObjectCount(%s))", lhs, fullType(t), source, id)
		c.line("for %s := range %s {", i, lhs)
		e.tryAssign(c, fmt.Sprintf("%s[%s]", lhs, i),
			fmt.Sprintf("%s(%s.IndexObject(%s, %s))", decodeDataFunc(t.Elem.Ref), source, id, i), where)
		c.line("}")
		c.line("}")
	default:
		c.line("%s = %s.Get%sList(%s)", lhs, source, t.Elem.Kind.AccessorName(), id)
	}
}

func (e *emitter) decodeMap(c *code, t *wiretype.Type, source, id, lhs, where string, depth int) {
	i, k, val, entry := indexVar(depth), keyVar(depth), valueVar(depth), entryVar(depth)

	c.line("if %s.ObjectCount(%s) > 0 {", source, id)
	c.line("%s = make(%s, %s.ObjectCount(%s))", lhs, fullType(t), source, id)
	c.line("for %s := range %s.ObjectCount(%s) {", i, source, id)
	c.line("%s := %s.IndexObject(%s, %s)", entry, source, id, i)
	c.line("var %s %s", k, fullType(t.Key))
	c.line("var %s %s", val, fullType(t.Value))
	e.decodeFull(c, t.Key, entry, mapKeyID, k, where, depth+1)
	e.decodeFull(c, t.Value, entry, mapValueID, val, where, depth+1)
	c.line("%s[%s] = %s", lhs, k, val)
	c.line("}")
	c.line("}")
}

// cloneList copies list src into dst, element by element unless the
// elements are plain values.
func (e *emitter) cloneList(c *code, t *wiretype.Type, dst, src string, depth int) {
	if simple(t.Elem) {
		e.use("slices")
		c.line("%s = slices.Clone(%s)", dst, src)

		return
	}

	i := indexVar(depth)
	c.line("if %s != nil {", src)
	c.line("%s = make(%s, len(%s))", dst, fullType(t), src)
	c.line("for %s := range %s {", i, src)
	e.cloneFull(c, t.Elem, fmt.Sprintf("%s[%s]", dst, i), fmt.Sprintf("%s[%s]", paren(src), i), depth+1)
	c.line("}")
	c.line("}")
}

func (e *emitter) cloneMap(c *code, t *wiretype.Type, dst, src string, depth int) {
	if simple(t.Value) {
		e.use("maps")
		c.line("%s = maps.Clone(%s)", dst, src)

		return
	}

	k, val, cv := keyVar(depth), valueVar(depth), cloneVar(depth)
	c.line("if %s != nil {", src)
	c.line("%s = make(%s, len(%s))", dst, fullType(t), src)
	c.line("for %s, %s := range %s {", k, val, src)
	c.line("var %s %s", cv, fullType(t.Value))
	e.cloneFull(c, t.Value, cv, val, depth+1)
	c.line("%s[%s] = %s", dst, k, cv)
	c.line("}")
	c.line("}")
}
