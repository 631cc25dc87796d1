package codec

import (
	"codec-generator/internal/wiretype"
	"codec-generator/wire"
)

// leafAccess moves one leaf kind through a wire object. The add functions
// report false when a value does not have the kind's Go type.
type leafAccess struct {
	add     func(obj wire.Object, id wire.FieldID, v any) bool
	get     func(obj wire.Object, id wire.FieldID) any
	addList func(obj wire.Object, id wire.FieldID, vs []any) bool
	getList func(obj wire.Object, id wire.FieldID) []any
}

func access[T any](
	add func(wire.Object, wire.FieldID, T),
	get func(wire.Object, wire.FieldID) T,
	addList func(wire.Object, wire.FieldID, []T),
	getList func(wire.Object, wire.FieldID) []T,
) leafAccess {
	return leafAccess{
		add: func(obj wire.Object, id wire.FieldID, v any) bool {
			tv, ok := v.(T)
			if ok {
				add(obj, id, tv)
			}

			return ok
		},
		get: func(obj wire.Object, id wire.FieldID) any {
			return get(obj, id)
		},
		addList: func(obj wire.Object, id wire.FieldID, vs []any) bool {
			typed := make([]T, len(vs))
			for i, v := range vs {
				tv, ok := v.(T)
				if !ok {
					return false
				}

				typed[i] = tv
			}

			if len(typed) > 0 {
				addList(obj, id, typed)
			}

			return true
		},
		getList: func(obj wire.Object, id wire.FieldID) []any {
			typed := getList(obj, id)

			out := make([]any, len(typed))
			for i, v := range typed {
				out[i] = v
			}

			return out
		},
	}
}

var leaves = [wiretype.KindTotal]leafAccess{
	wiretype.KindBool:     access(wire.Object.AddBool, wire.Object.GetBool, wire.Object.AddBoolList, wire.Object.GetBoolList),
	wiretype.KindInt32:    access(wire.Object.AddInt32, wire.Object.GetInt32, wire.Object.AddInt32List, wire.Object.GetInt32List),
	wiretype.KindInt64:    access(wire.Object.AddInt64, wire.Object.GetInt64, wire.Object.AddInt64List, wire.Object.GetInt64List),
	wiretype.KindUint32:   access(wire.Object.AddUint32, wire.Object.GetUint32, wire.Object.AddUint32List, wire.Object.GetUint32List),
	wiretype.KindUint64:   access(wire.Object.AddUint64, wire.Object.GetUint64, wire.Object.AddUint64List, wire.Object.GetUint64List),
	wiretype.KindSint32:   access(wire.Object.AddSint32, wire.Object.GetSint32, wire.Object.AddSint32List, wire.Object.GetSint32List),
	wiretype.KindSint64:   access(wire.Object.AddSint64, wire.Object.GetSint64, wire.Object.AddSint64List, wire.Object.GetSint64List),
	wiretype.KindFixed32:  access(wire.Object.AddFixed32, wire.Object.GetFixed32, wire.Object.AddFixed32List, wire.Object.GetFixed32List),
	wiretype.KindFixed64:  access(wire.Object.AddFixed64, wire.Object.GetFixed64, wire.Object.AddFixed64List, wire.Object.GetFixed64List),
	wiretype.KindSfixed32: access(wire.Object.AddSfixed32, wire.Object.GetSfixed32, wire.Object.AddSfixed32List, wire.Object.GetSfixed32List),
	wiretype.KindSfixed64: access(wire.Object.AddSfixed64, wire.Object.GetSfixed64, wire.Object.AddSfixed64List, wire.Object.GetSfixed64List),
	wiretype.KindFloat:    access(wire.Object.AddFloat, wire.Object.GetFloat, wire.Object.AddFloatList, wire.Object.GetFloatList),
	wiretype.KindDouble:   access(wire.Object.AddDouble, wire.Object.GetDouble, wire.Object.AddDoubleList, wire.Object.GetDoubleList),
	wiretype.KindString:   access(wire.Object.AddString, wire.Object.GetString, wire.Object.AddStringList, wire.Object.GetStringList),
	wiretype.KindBytes:    access(wire.Object.AddBytes, wire.Object.GetBytes, wire.Object.AddBytesList, wire.Object.GetBytesList),
	wiretype.KindEntityID: access(wire.Object.AddEntityID, wire.Object.GetEntityID, wire.Object.AddEntityIDList, wire.Object.GetEntityIDList),
	wiretype.KindEntity:   access(wire.Object.AddEntityRef, wire.Object.GetEntityRef, wire.Object.AddEntityRefList, wire.Object.GetEntityRefList),
}
