package match

import (
	"go/types"

	"codec-generator/internal/wiretype"
)

// TypeCompatibility is how well a declared Go type fits the representation a
// wire marker implies.
type TypeCompatibility int

const (
	// TypeIncompatible means the declared type cannot hold the wire value.
	TypeIncompatible TypeCompatibility = iota
	// TypeConvertible means a numeric conversion is needed, possibly lossy.
	TypeConvertible
	// TypeAssignable means the declared type is a named type over the
	// expected underlying type.
	TypeAssignable
	// TypeIdentical means the declared type is exactly the expected type.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictConvertible  = "convertible"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult explains a compatibility verdict.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	Declared      string
	Wire          string
}

// leafBasics is the Go basic kind each leaf wire kind is represented with.
var leafBasics = map[wiretype.Kind]types.BasicKind{
	wiretype.KindBool:     types.Bool,
	wiretype.KindInt32:    types.Int32,
	wiretype.KindSint32:   types.Int32,
	wiretype.KindSfixed32: types.Int32,
	wiretype.KindInt64:    types.Int64,
	wiretype.KindSint64:   types.Int64,
	wiretype.KindSfixed64: types.Int64,
	wiretype.KindUint32:   types.Uint32,
	wiretype.KindFixed32:  types.Uint32,
	wiretype.KindUint64:   types.Uint64,
	wiretype.KindFixed64:  types.Uint64,
	wiretype.KindFloat:    types.Float32,
	wiretype.KindDouble:   types.Float64,
	wiretype.KindString:   types.String,
	wiretype.KindEntityID: types.Int64,
	wiretype.KindEntity:   types.Int64,
}

// ScoreTypeCompatibility scores the declared Go type of a field against its
// resolved wire type. Composite verdicts are the weakest verdict of their
// parts.
func ScoreTypeCompatibility(declared types.Type, wt *wiretype.Type) TypeCompatibilityResult {
	res := TypeCompatibilityResult{
		Declared: types.TypeString(declared, shortQualifier),
		Wire:     wt.String(),
	}

	res.Compatibility, res.Reason = score(declared, wt)

	return res
}

func score(declared types.Type, wt *wiretype.Type) (TypeCompatibility, string) {
	if declared == nil || wt == nil {
		return TypeIncompatible, "type information unavailable"
	}

	switch wt.Kind {
	case wiretype.KindList:
		sl, ok := declared.Underlying().(*types.Slice)
		if !ok {
			return TypeIncompatible, "list field is not declared as a slice"
		}

		return score(sl.Elem(), wt.Elem)
	case wiretype.KindMap:
		m, ok := declared.Underlying().(*types.Map)
		if !ok {
			return TypeIncompatible, "map field is not declared as a map"
		}

		kc, kr := score(m.Key(), wt.Key)
		vc, vr := score(m.Elem(), wt.Value)

		if kc <= vc {
			return kc, kr
		}

		return vc, vr
	case wiretype.KindOption:
		p, ok := declared.(*types.Pointer)
		if !ok {
			return TypeIncompatible, "option field is not declared as a pointer"
		}

		return score(p.Elem(), wt.Elem)
	case wiretype.KindNested, wiretype.KindEnum:
		named, ok := declared.(*types.Named)
		if !ok || named.Obj().Name() != wt.Ref {
			return TypeIncompatible, "declared type does not name " + wt.Ref
		}

		return TypeIdentical, "declared type names " + wt.Ref
	case wiretype.KindBytes:
		sl, ok := declared.Underlying().(*types.Slice)
		if !ok || !isBasic(sl.Elem(), types.Byte) {
			return TypeIncompatible, "bytes field is not declared as []byte"
		}

		if _, named := declared.(*types.Named); named {
			return TypeAssignable, "named []byte"
		}

		return TypeIdentical, "types are identical"
	}

	want, ok := leafBasics[wt.Kind]
	if !ok {
		return TypeIncompatible, "unknown wire kind " + wt.Kind.String()
	}

	basic, ok := declared.Underlying().(*types.Basic)
	if !ok {
		return TypeIncompatible, "declared type is not a basic type"
	}

	switch {
	case basic.Kind() == want:
		if _, named := declared.(*types.Named); named {
			return TypeAssignable, "named type over " + basic.Name()
		}

		return TypeIdentical, "types are identical"
	case IsNumericType(declared) && basic.Kind() != types.Bool && want != types.Bool && want != types.String:
		return TypeConvertible, "numeric conversion from " + basic.Name()
	default:
		return TypeIncompatible, "declared " + basic.Name() + " cannot hold " + wt.String()
	}
}

func isBasic(t types.Type, kind types.BasicKind) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Kind() == kind
}

func shortQualifier(p *types.Package) string {
	return p.Name()
}

// IsNumericType returns true if the type is a numeric basic type.
func IsNumericType(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	return basic.Info()&types.IsNumeric != 0
}
