package buffer

import "fmt"

// Range is a character range in the buffer: [Start, End).
type Range struct {
	Start CharOffset
	End   CharOffset
}

// NewRange creates a Range from start and end character offsets.
func NewRange(start, end CharOffset) Range { return Range{Start: start, End: end} }

// String returns a human-readable representation of the range.
func (r Range) String() string { return fmt.Sprintf("[%d:%d)", r.Start, r.End) }

// Len returns the number of characters spanned by the range.
func (r Range) Len() CharOffset { return r.End - r.Start }

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool { return r.Start <= r.End }

// Contains returns true if offset lies within the range.
func (r Range) Contains(offset CharOffset) bool {
	return offset >= r.Start && offset < r.End
}

// BufferSlice is a view over a character range of the buffer's text. It is a
// thin wrapper over the materialized string; the rope's chunked storage
// means producing it is O(range length), not O(document length).
type BufferSlice struct {
	text string
}

// String returns the slice's text. May allocate if the underlying rope slice
// spanned more than one chunk; cheap (no copy beyond the rope's own Slice)
// otherwise.
func (s BufferSlice) String() string { return s.text }

// Len returns the character length of the slice.
func (s BufferSlice) Len() int {
	n := 0
	for range s.text {
		n++
	}
	return n
}

// Runes returns the slice's content as a rune slice for iteration.
func (s BufferSlice) Runes() []rune { return []rune(s.text) }
