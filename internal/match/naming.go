package match

import (
	"strings"
	"unicode"
)

// initialisms are rendered upper-case by GoName.
var initialisms = map[string]struct{}{
	"api":  {},
	"id":   {},
	"ids":  {},
	"json": {},
	"http": {},
	"ip":   {},
	"url":  {},
	"utc":  {},
	"uuid": {},
}

// Tokenize splits an identifier on separators (_, -, space, .) and on case
// transitions.
//
//	"data_latency_ms" -> ["data", "latency", "ms"]
//	"OrderID"         -> ["Order", "ID"]
//	"XMLParser"       -> ["XML", "Parser"]
//	"connectedSince"  -> ["connected", "Since"]
func Tokenize(s string) []string {
	var (
		tokens []string
		cur    []rune
	)

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		cur = append(cur, r)
	}

	flush()

	return tokens
}

// NormalizeIdent lower-cases an identifier and drops separators, for fuzzy
// comparisons.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// GoName converts a schema identifier into an exported Go identifier.
//
//	"worker_id"          -> "WorkerID"
//	"connected_since_utc" -> "ConnectedSinceUTC"
//	"thrust"             -> "Thrust"
func GoName(s string) string {
	var b strings.Builder

	for _, tok := range Tokenize(s) {
		lower := strings.ToLower(tok)
		if _, ok := initialisms[lower]; ok {
			if lower == "ids" {
				b.WriteString("IDs")
			} else {
				b.WriteString(strings.ToUpper(lower))
			}

			continue
		}

		r := []rune(tok)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}

	out := b.String()
	if out == "" {
		return ""
	}

	if first := []rune(out)[0]; !unicode.IsLetter(first) {
		out = "X" + out
	}

	return out
}

// SnakeName converts a Go identifier into a schema identifier. It is the
// inverse of GoName for names GoName produced.
//
//	"WorkerID"          -> "worker_id"
//	"ConnectedSinceUTC" -> "connected_since_utc"
func SnakeName(s string) string {
	tokens := Tokenize(s)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}

	return strings.Join(tokens, "_")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if isSeparator(prev) {
		return false
	}

	// lower or digit to upper: "orderID" splits before 'I'
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(r) && unicode.IsUpper(prev) &&
		i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
