// Package gen renders the Go source of compiled schemas.
//
// Generation uses text/template + go/format. Every entity E gets:
//   - EData, the full state, and EUpdate, a partial update whose nil fields
//     carry no change
//   - a stateless codec type E with EncodeData/DecodeData,
//     EncodeUpdate/DecodeUpdate, CloneData, CopyUpdate and FreeUpdate
//   - EComponentID and component buffer methods when E is a component
//
// Every enum gets a uint32 type with one constant per variant, a checked
// conversion from a wire ordinal and a String method.
//
// Statement bodies are built as text with depth-suffixed loop variables
// (i0, k1, v2, ...), so nested containers never shadow each other.
package gen
