package search

import (
	"regexp"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
)

// Match is one regex match location, expressed in character coordinates so
// it composes directly with Selection/Position arithmetic.
type Match struct {
	Start position.Position
	End   position.Position
	Len   int // match length in characters, for highlight span width
}

// Compile parses a search pattern into a regexp. The pattern is taken as Go
// regexp syntax; vi magic-mode patterns are not translated. An empty
// pattern is rejected rather than silently matching everything.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	return regexp.Compile(pattern)
}

// MatchPositions scans the full buffer text and returns every non-overlapping
// match of re, in document order.
func MatchPositions(b *buffer.Buffer, re *regexp.Regexp) ([]Match, error) {
	text := b.Text()
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil, nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		start := b.PositionAtByte(uint64(loc[0]))
		end := b.PositionAtByte(uint64(loc[1]))
		matches = append(matches, Match{
			Start: start,
			End:   end,
			Len:   runeLen(text[loc[0]:loc[1]]),
		})
	}
	return matches, nil
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// MatchPositionsInView filters matches to those whose start row falls in
// [firstRow, lastRow], the visible window the Reactor derives from
// RowOffset and TerminalHeight.
func MatchPositionsInView(matches []Match, firstRow, lastRow uint32) []Match {
	var out []Match
	for _, m := range matches {
		if m.Start.Row >= firstRow && m.Start.Row <= lastRow {
			out = append(out, m)
		}
	}
	return out
}

// NextMatch returns the first match strictly after cursor, wrapping around
// to the first match in the document if cursor is after every match.
func NextMatch(matches []Match, cursor position.Position) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	for _, m := range matches {
		if m.Start.After(cursor) {
			return m, true
		}
	}
	return matches[0], true
}

// PrevMatch returns the last match strictly before cursor, wrapping around
// to the last match in the document if cursor is before every match.
func PrevMatch(matches []Match, cursor position.Position) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Start.Before(cursor) {
			return matches[i], true
		}
	}
	return matches[len(matches)-1], true
}
