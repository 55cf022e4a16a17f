package buffer

import "golang.org/x/text/width"

// charClass is the four-way classification §4.1's word-boundary rule uses
// to decide where a forward/back word step stops.
type charClass uint8

const (
	classWhiteSpace charClass = iota
	classAlphaNumeric
	classSymbol
	classOther
)

// classify buckets r per spec's word-boundary rule: AlphaNumeric (ASCII
// letters, digits, underscore), Symbol (ASCII punctuation other than
// underscore), WhiteSpace (ASCII whitespace), Other (everything else,
// including non-ASCII).
//
// Fullwidth/halfwidth compatibility variants (common from CJK input
// methods) are folded to their narrow form first, so e.g. a fullwidth
// comma entered via an IME classifies the same as its ASCII counterpart
// rather than falling into Other.
func classify(r rune) charClass {
	r = width.Fold(r)

	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
		return classWhiteSpace
	case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'):
		return classAlphaNumeric
	case r < 0x80 && isASCIIPunct(r):
		return classSymbol
	default:
		return classOther
	}
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}
