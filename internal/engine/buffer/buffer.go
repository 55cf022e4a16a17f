package buffer

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/rope"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a character-indexed text store built over an immutable byte rope.
// It implements spec's Buffer contract (§4.1): offset/position conversion,
// per-line length excluding the terminator, forward/back word counting, and
// sub-linear insert/remove/slice. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	rope       rope.Rope
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:       rope.New(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(normalizeLineEndings(b.lineEnding, s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b.rope = rope.FromString(normalizeLineEndings(b.lineEnding, string(data)))
	return b, nil
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Len returns the total character length of the buffer.
func (b *Buffer) Len() CharOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lenLocked()
}

func (b *Buffer) lenLocked() CharOffset {
	return CharOffset(b.rope.RuneCount())
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// CountLines returns the number of lines. A trailing '\n' does not count a
// trailing empty row (spec §4.1, §9 Open Question decision).
func (b *Buffer) CountLines() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.countLinesLocked()
}

func (b *Buffer) countLinesLocked() uint32 {
	n := b.rope.LineCount()
	if b.rope.Len() > 0 {
		if last, ok := b.rope.ByteAt(b.rope.Len() - 1); ok && last == '\n' {
			return n - 1
		}
	}
	return n
}

// RowLen returns the character count of row r, excluding its terminator.
func (b *Buffer) RowLen(row uint32) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rowLenLocked(row)
}

func (b *Buffer) rowLenLocked(row uint32) (int, error) {
	if row >= b.countLinesLocked() {
		return 0, ErrOutOfRange
	}
	return utf8.RuneCountInString(b.rope.LineText(row)), nil
}

// LineText returns the text of row, excluding its terminator.
func (b *Buffer) LineText(row uint32) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row >= b.countLinesLocked() {
		return "", ErrOutOfRange
	}
	return b.rope.LineText(row), nil
}

// Offset converts a Position to a character offset. Fails with
// ErrOutOfRange if pos.Row is out of bounds or pos.Col exceeds the row's
// length.
func (b *Buffer) Offset(pos position.Position) (CharOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.offsetLocked(pos)
}

func (b *Buffer) offsetLocked(pos position.Position) (CharOffset, error) {
	lineCount := b.countLinesLocked()
	if pos.Row >= lineCount {
		return 0, ErrOutOfRange
	}

	lineStartByte := b.rope.LineStartOffset(pos.Row)
	lineEndByte := b.rope.LineEndOffset(pos.Row)
	lineStartChar := b.rope.ByteOffsetToCharOffset(lineStartByte)

	rowLen := utf8.RuneCountInString(b.rope.Slice(lineStartByte, lineEndByte))
	if pos.Col > uint32(rowLen) {
		return 0, ErrOutOfRange
	}
	return CharOffset(lineStartChar) + CharOffset(pos.Col), nil
}

// Position converts a character offset to a Position.
func (b *Buffer) Position(offset CharOffset) (position.Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.positionLocked(offset)
}

func (b *Buffer) positionLocked(offset CharOffset) (position.Position, error) {
	if offset > b.lenLocked() {
		return position.Position{}, ErrOutOfRange
	}
	lineCount := b.countLinesLocked()

	byteOffset := b.rope.CharOffsetToByteOffset(uint64(offset))
	row := b.rope.OffsetToPoint(byteOffset).Line
	// Buffer's line count trims the synthetic trailing empty row a final
	// '\n' gives the rope; an end-of-buffer offset lands on that row in
	// rope terms and must fold back onto the buffer's real last row.
	if row >= lineCount {
		row = lineCount - 1
	}

	lineStartByte := b.rope.LineStartOffset(row)
	if byteOffset < lineStartByte {
		byteOffset = lineStartByte
	}
	col := uint32(utf8.RuneCountInString(b.rope.Slice(lineStartByte, byteOffset)))
	return position.Position{Row: row, Col: col}, nil
}

// PositionAtByte converts a byte offset (as used by the incremental parser)
// to a Position. Unlike Offset/Position this never errors: out-of-range
// byte offsets clamp to the end of the buffer.
func (b *Buffer) PositionAtByte(byteOffset uint64) position.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bo := rope.ByteOffset(byteOffset)
	if bo > b.rope.Len() {
		bo = b.rope.Len()
	}
	pt := b.rope.OffsetToPoint(bo)
	lineStart := b.rope.LineStartOffset(pt.Line)
	prefix := b.rope.Slice(lineStart, bo)
	return position.Position{Row: pt.Line, Col: uint32(utf8.RuneCountInString(prefix))}
}

// ByteOffsetOf converts a character offset to the byte offset the rope uses
// internally. Used to build byte-edit descriptors for the Highlighter.
func (b *Buffer) ByteOffsetOf(offset CharOffset) (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	pos, err := b.positionLocked(offset)
	if err != nil {
		return 0, err
	}
	return uint64(b.byteOffsetForPositionLocked(pos)), nil
}

func (b *Buffer) byteOffsetForPositionLocked(pos position.Position) rope.ByteOffset {
	lineStart := b.rope.LineStartOffset(pos.Row)
	lineEnd := b.rope.LineEndOffset(pos.Row)
	lineBytes := b.rope.Slice(lineStart, lineEnd)

	var byteCol rope.ByteOffset
	var col uint32
	for _, r := range lineBytes {
		if col >= pos.Col {
			break
		}
		byteCol += rope.ByteOffset(utf8.RuneLen(r))
		col++
	}
	return lineStart + byteCol
}

// Slice returns the text in the character range r.
func (b *Buffer) Slice(r Range) (BufferSlice, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !r.IsValid() {
		return BufferSlice{}, ErrInvalidRange
	}
	startPos, err := b.positionLocked(r.Start)
	if err != nil {
		return BufferSlice{}, err
	}
	endPos, err := b.positionLocked(r.End)
	if err != nil {
		return BufferSlice{}, err
	}
	startByte := b.byteOffsetForPositionLocked(startPos)
	endByte := b.byteOffsetForPositionLocked(endPos)
	return BufferSlice{text: b.rope.Slice(startByte, endByte)}, nil
}

// Insert inserts s at character offset.
func (b *Buffer) Insert(offset CharOffset, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset > b.lenLocked() {
		return ErrOutOfRange
	}
	pos, err := b.positionLocked(offset)
	if err != nil {
		return err
	}
	byteOffset := b.byteOffsetForPositionLocked(pos)
	b.rope = b.rope.Insert(byteOffset, normalizeLineEndings(b.lineEnding, s))
	return nil
}

// Remove deletes the character range r and returns the removed text.
func (b *Buffer) Remove(r Range) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !r.IsValid() {
		return "", ErrInvalidRange
	}
	if r.IsEmpty() {
		return "", nil
	}
	startPos, err := b.positionLocked(r.Start)
	if err != nil {
		return "", err
	}
	endPos, err := b.positionLocked(r.End)
	if err != nil {
		return "", err
	}
	startByte := b.byteOffsetForPositionLocked(startPos)
	endByte := b.byteOffsetForPositionLocked(endPos)
	removed := b.rope.Slice(startByte, endByte)
	b.rope = b.rope.Delete(startByte, endByte)
	return removed, nil
}

// CountForwardWord returns the character delta from offset to the next word
// boundary, per §4.1's word-boundary rule: advance while the class equals
// the starting class, then skip whitespace to the next non-whitespace run.
func (b *Buffer) CountForwardWord(offset CharOffset) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	runes, start, err := b.runesFrom(offset)
	if err != nil {
		return 0, err
	}
	if start >= len(runes) {
		return 0, nil
	}

	i := start
	startClass := classify(runes[i])
	for i < len(runes) && classify(runes[i]) == startClass {
		i++
	}
	for i < len(runes) && classify(runes[i]) == classWhiteSpace {
		i++
	}
	return i - start, nil
}

// CountWordEnd returns the character delta from offset to the end of the
// current or next word: like CountForwardWord but stops at a class change
// without the trailing whitespace skip.
func (b *Buffer) CountWordEnd(offset CharOffset) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	runes, start, err := b.runesFrom(offset)
	if err != nil {
		return 0, err
	}
	if start >= len(runes) {
		return 0, nil
	}

	i := start
	for i < len(runes) && classify(runes[i]) == classWhiteSpace {
		i++
	}
	if i >= len(runes) {
		return i - start, nil
	}
	cls := classify(runes[i])
	for i < len(runes) && classify(runes[i]) == cls {
		i++
	}
	return i - start, nil
}

// CountBackWord returns the character delta from the previous word boundary
// back to offset: first skip whitespace backward (counting), then consume
// one run of identical class.
func (b *Buffer) CountBackWord(offset CharOffset) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset > b.lenLocked() {
		return 0, ErrOutOfRange
	}
	runes := []rune(b.rope.String())

	i := int(offset)
	start := i
	for i > 0 && classify(runes[i-1]) == classWhiteSpace {
		i--
	}
	if i > 0 {
		cls := classify(runes[i-1])
		for i > 0 && classify(runes[i-1]) == cls {
			i--
		}
	}
	return start - i, nil
}

// runesFrom decodes the full buffer text to runes and returns the rune
// index corresponding to offset. Buffers are expected to fit comfortably in
// memory (this mirrors the teacher's Text()-based helpers); word scanning
// is local to a handful of runes around offset in practice.
func (b *Buffer) runesFrom(offset CharOffset) ([]rune, int, error) {
	if offset > b.lenLocked() {
		return nil, 0, ErrOutOfRange
	}
	runes := []rune(b.rope.String())
	return runes, int(offset), nil
}

// CurrentLineIndentHead returns the column of the first non-whitespace
// character of row, or row_len(row) if the row is blank.
func (b *Buffer) CurrentLineIndentHead(row uint32) (uint32, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if row >= b.countLinesLocked() {
		return 0, ErrOutOfRange
	}
	text := b.rope.LineText(row)
	col := uint32(0)
	for _, r := range text {
		if classify(r) != classWhiteSpace {
			return col, nil
		}
		col++
	}
	return col, nil
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only snapshot of the current buffer state, safe
// for concurrent access from other goroutines. Ropes are immutable so this
// shares storage with b without copying.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{rope: b.rope, lineEnding: b.lineEnding, tabWidth: b.tabWidth}
}
