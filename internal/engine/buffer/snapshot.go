package buffer

import (
	"unicode/utf8"

	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/rope"
)

// Snapshot is a read-only, lock-free view of a Buffer at a point in time.
// It never changes even if the originating Buffer is mutated afterward,
// since ropes are immutable and Snapshot holds its own reference to one.
type Snapshot struct {
	rope       rope.Rope
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string { return s.rope.String() }

// Len returns the character length of the snapshot.
func (s *Snapshot) Len() CharOffset {
	return CharOffset(utf8.RuneCountInString(s.rope.String()))
}

// CountLines returns the number of lines, per the same trailing-newline
// rule as Buffer.CountLines.
func (s *Snapshot) CountLines() uint32 {
	n := s.rope.LineCount()
	if s.rope.Len() > 0 {
		if last, ok := s.rope.ByteAt(s.rope.Len() - 1); ok && last == '\n' {
			return n - 1
		}
	}
	return n
}

// RowLen returns the character count of row, excluding its terminator.
func (s *Snapshot) RowLen(row uint32) (int, error) {
	if row >= s.CountLines() {
		return 0, ErrOutOfRange
	}
	return utf8.RuneCountInString(s.rope.LineText(row)), nil
}

// LineText returns the text of row, excluding its terminator.
func (s *Snapshot) LineText(row uint32) (string, error) {
	if row >= s.CountLines() {
		return "", ErrOutOfRange
	}
	return s.rope.LineText(row), nil
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool { return s.rope.IsEmpty() }

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding { return s.lineEnding }

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int { return s.tabWidth }

// Position converts a character offset to a Position against this snapshot.
func (s *Snapshot) Position(offset CharOffset) (position.Position, error) {
	if offset > s.Len() {
		return position.Position{}, ErrOutOfRange
	}
	lineCount := s.CountLines()
	var consumed CharOffset
	for r := uint32(0); r < lineCount; r++ {
		rowLen, err := s.RowLen(r)
		if err != nil {
			return position.Position{}, err
		}
		isLast := r == lineCount-1
		if offset <= consumed+CharOffset(rowLen) || isLast {
			return position.Position{Row: r, Col: uint32(offset - consumed)}, nil
		}
		consumed += CharOffset(rowLen) + 1
	}
	return position.Position{}, ErrOutOfRange
}

// Chunks returns an iterator over all byte chunks, used by the Highlighter
// to read buffer content incrementally without a full copy.
func (s *Snapshot) Chunks() *rope.ChunkIterator { return s.rope.Chunks() }
