package resolve

import (
	"errors"
	"fmt"
	"strings"

	"codec-generator/internal/match"
	"codec-generator/internal/wiretype"
)

// Resolution errors. ErrUnsupportedMarker is a kind of ErrUnresolvedWireType.
var (
	ErrUnresolvedWireType = errors.New("unresolved wire type")
	ErrUnsupportedMarker  = fmt.Errorf("%w: unsupported marker", ErrUnresolvedWireType)
	ErrArityMismatch      = errors.New("arity mismatch")
)

// composite marker heads
const (
	markerList   = "list"
	markerMap    = "map"
	markerOption = "option"
	markerType   = "type"
	markerEnum   = "enum"
)

// Error describes why a marker did not resolve against its container.
type Error struct {
	// Err is one of the package sentinel errors.
	Err       error
	Marker    string
	Container string
	Detail    string
	// Suggestions lists known markers close to an unsupported one.
	Suggestions []string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Marker != "" {
		fmt.Fprintf(&b, ": marker %q", e.Marker)
	}

	if e.Container != "" {
		fmt.Fprintf(&b, " on %s", e.Container)
	}

	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Markers returns every marker keyword the resolver understands.
func Markers() []string {
	return append(wiretype.LeafMarkers(), markerList, markerMap, markerOption, markerType, markerEnum)
}

// Resolve maps a field's declared container type and wire marker to a wire
// type tree.
//
// Leaf markers ignore the container. "type" and "enum" take the referenced
// name from the container. Composite markers (list<T>, option<T>, map<K,V>)
// resolve their inner markers against the container's type arguments in
// order. Resolve is pure.
func Resolve(container TypeExpr, marker string) (*wiretype.Type, error) {
	marker = strings.TrimSpace(marker)

	if k, ok := wiretype.LeafKind(marker); ok {
		return wiretype.Leaf(k), nil
	}

	switch marker {
	case markerType, markerEnum:
		return resolveRef(container, marker)
	}

	head, args, ok := splitComposite(marker)
	if !ok {
		return nil, unsupported(container, marker)
	}

	switch head {
	case markerList, markerOption:
		if len(args) != 1 {
			return nil, unsupported(container, marker)
		}

		elem, err := resolveArgs(container, marker, args)
		if err != nil {
			return nil, err
		}

		if head == markerList {
			return wiretype.List(elem[0]), nil
		}

		return wiretype.Option(elem[0]), nil
	case markerMap:
		if len(args) != 2 {
			return nil, unsupported(container, marker)
		}

		kv, err := resolveArgs(container, marker, args)
		if err != nil {
			return nil, err
		}

		return wiretype.Map(kv[0], kv[1]), nil
	default:
		return nil, unsupported(container, marker)
	}
}

// resolveArgs resolves inner markers against the container type arguments.
func resolveArgs(container TypeExpr, marker string, inner []string) ([]*wiretype.Type, error) {
	if len(container.Args) != len(inner) {
		return nil, &Error{
			Err:       ErrArityMismatch,
			Marker:    marker,
			Container: container.String(),
			Detail:    fmt.Sprintf("marker expects %d type argument(s), container has %d", len(inner), len(container.Args)),
		}
	}

	out := make([]*wiretype.Type, len(inner))

	for i, m := range inner {
		t, err := Resolve(container.Args[i], m)
		if err != nil {
			return nil, err
		}

		out[i] = t
	}

	return out, nil
}

func resolveRef(container TypeExpr, marker string) (*wiretype.Type, error) {
	if !container.Named() {
		return nil, &Error{
			Err:       ErrUnresolvedWireType,
			Marker:    marker,
			Container: container.String(),
			Detail:    "container does not name a type",
		}
	}

	if marker == markerType {
		return wiretype.Nested(container.BaseName()), nil
	}

	return wiretype.Enum(container.BaseName()), nil
}

// splitComposite splits "head<a,b>" into head and its top-level inner markers.
func splitComposite(marker string) (string, []string, bool) {
	open := strings.IndexByte(marker, '<')
	if open <= 0 || !strings.HasSuffix(marker, ">") {
		return "", nil, false
	}

	args, err := SplitTopLevel(marker[open+1 : len(marker)-1])
	if err != nil {
		return "", nil, false
	}

	for _, a := range args {
		if a == "" {
			return "", nil, false
		}
	}

	return strings.TrimSpace(marker[:open]), args, true
}

func unsupported(container TypeExpr, marker string) *Error {
	head := marker
	if i := strings.IndexByte(marker, '<'); i > 0 {
		head = marker[:i]
	}

	err := &Error{
		Err:       ErrUnsupportedMarker,
		Marker:    marker,
		Container: container.String(),
	}

	switch head {
	case markerList, markerMap, markerOption:
		err.Detail = "malformed " + head + " marker"
	default:
		err.Suggestions = match.Suggest(head, Markers(), 2)
	}

	return err
}
