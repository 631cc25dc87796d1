package gen

import (
	"fmt"
	"strings"

	"codec-generator/internal/rep"
	"codec-generator/internal/wiretype"
)

// fullType spells the full representation of t.
func fullType(t *wiretype.Type) string {
	return rep.Full(t).String()
}

// deltaType spells the delta representation of t.
func deltaType(t *wiretype.Type) string {
	return rep.Delta(t).String()
}

// simple reports whether a full value of t is copied by plain assignment.
func simple(t *wiretype.Type) bool {
	switch {
	case t.Kind == wiretype.KindBytes:
		return false
	case t.Kind.IsLeaf(), t.Kind == wiretype.KindEnum:
		return true
	default:
		return false
	}
}

// deref dereferences a pointer expression.
func deref(expr string) string {
	return "*" + expr
}

// addr takes the address of expr, undoing a deref when there is one.
func addr(expr string) string {
	if strings.HasPrefix(expr, "*") {
		return expr[1:]
	}

	return "&" + expr
}

// paren wraps a dereference so it can be indexed or selected.
func paren(expr string) string {
	if strings.HasPrefix(expr, "*") {
		return "(" + expr + ")"
	}

	return expr
}

func fieldID(id uint32) string {
	return fmt.Sprintf("%d", id)
}

func indexVar(depth int) string {
	return fmt.Sprintf("i%d", depth)
}

func keyVar(depth int) string {
	return fmt.Sprintf("k%d", depth)
}

func valueVar(depth int) string {
	return fmt.Sprintf("v%d", depth)
}

func entryVar(depth int) string {
	return fmt.Sprintf("entry%d", depth)
}

func cloneVar(depth int) string {
	return fmt.Sprintf("c%d", depth)
}

// Helper names generated per entity.

func encodeDataFunc(entity string) string   { return "encode" + rep.FullName(entity) }
func decodeDataFunc(entity string) string   { return "decode" + rep.FullName(entity) }
func encodeUpdateFunc(entity string) string { return "encode" + rep.DeltaName(entity) }
func decodeUpdateFunc(entity string) string { return "decode" + rep.DeltaName(entity) }
func cloneDataFunc(entity string) string    { return "clone" + rep.FullName(entity) }
func copyUpdateFunc(entity string) string   { return "copy" + rep.DeltaName(entity) }
func freeUpdateFunc(entity string) string   { return "free" + rep.DeltaName(entity) }
func fromOrdinalFunc(enum string) string    { return enum + "FromOrdinal" }
func componentIDConst(entity string) string { return entity + "ComponentID" }

// goComment renders doc as // comment lines.
func goComment(doc string) string {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + l
		}
	}

	return strings.Join(lines, "\n")
}
