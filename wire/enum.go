package wire

import (
	"errors"
	"fmt"
)

// ErrInvalidOrdinal is matched by every error returned when a wire ordinal
// does not name a variant of the target enum.
var ErrInvalidOrdinal = errors.New("invalid enum ordinal")

// InvalidOrdinalError reports an ordinal with no matching variant.
type InvalidOrdinalError struct {
	Enum    string
	Ordinal uint32
}

func (e *InvalidOrdinalError) Error() string {
	return fmt.Sprintf("%s: %d is not a valid %s", ErrInvalidOrdinal, e.Ordinal, e.Enum)
}

// Is makes errors.Is(err, ErrInvalidOrdinal) hold.
func (e *InvalidOrdinalError) Is(target error) bool {
	return target == ErrInvalidOrdinal
}

// Enum is implemented by generated enum types.
type Enum interface {
	comparable
	Ordinal() uint32
}

// AddEnum writes the ordinal of v at id.
func AddEnum[E Enum](obj Object, id FieldID, v E) {
	obj.AddEnum(id, v.Ordinal())
}

// AddEnumList writes the ordinals of vs at id.
func AddEnumList[E Enum](obj Object, id FieldID, vs []E) {
	if len(vs) == 0 {
		return
	}

	ordinals := make([]uint32, len(vs))
	for i, v := range vs {
		ordinals[i] = v.Ordinal()
	}

	obj.AddEnumList(id, ordinals)
}

// GetEnum reads the ordinal at id and converts it with from.
func GetEnum[E any](obj Object, id FieldID, from func(uint32) (E, error)) (E, error) {
	return from(obj.GetEnum(id))
}

// GetEnumList reads every ordinal at id and converts each with from. The
// first ordinal that fails conversion aborts the read. An id without
// ordinals reads as nil.
func GetEnumList[E any](obj Object, id FieldID, from func(uint32) (E, error)) ([]E, error) {
	ordinals := obj.GetEnumList(id)
	if len(ordinals) == 0 {
		return nil, nil
	}

	out := make([]E, 0, len(ordinals))

	for _, o := range ordinals {
		v, err := from(o)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}
