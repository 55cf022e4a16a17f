package state

import (
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
)

// MeasureSelection resolves sel against s into a character Range within
// s.Buffer, per spec §4.2's resolution table. Left/Down/Up/Right are
// reserved selection kinds: resolving them reports
// position.ErrUnimplemented rather than guessing a meaning.
func MeasureSelection(s State, sel position.Selection) (buffer.Range, error) {
	b := s.Buffer
	cursor, err := b.Offset(s.Cursor)
	if err != nil {
		return buffer.Range{}, err
	}
	n := int(sel.Count)

	switch sel.Kind {
	case position.ForwardWord:
		delta, err := sumForwardWord(b, cursor, n)
		if err != nil {
			return buffer.Range{}, err
		}
		return buffer.Range{Start: cursor, End: cursor + buffer.CharOffset(delta)}, nil

	case position.WordEnd:
		delta, err := sumWordEnd(b, cursor, n)
		if err != nil {
			return buffer.Range{}, err
		}
		return buffer.Range{Start: cursor, End: cursor + buffer.CharOffset(delta)}, nil

	case position.BackWord:
		delta, err := sumBackWord(b, cursor, n)
		if err != nil {
			return buffer.Range{}, err
		}
		start := buffer.CharOffset(0)
		if buffer.CharOffset(delta) <= cursor {
			start = cursor - buffer.CharOffset(delta)
		}
		return buffer.Range{Start: start, End: cursor}, nil

	case position.Word:
		back, err := b.CountBackWord(cursor)
		if err != nil {
			return buffer.Range{}, err
		}
		fwd, err := b.CountWordEnd(cursor)
		if err != nil {
			return buffer.Range{}, err
		}
		start := buffer.CharOffset(0)
		if buffer.CharOffset(back) <= cursor {
			start = cursor - buffer.CharOffset(back)
		}
		return buffer.Range{Start: start, End: cursor + buffer.CharOffset(fwd)}, nil

	case position.Line:
		return lineRange(b, s.Cursor.Row, uint32(n))

	case position.LineRemain:
		rowLen, err := b.RowLen(s.Cursor.Row)
		if err != nil {
			return buffer.Range{}, err
		}
		end, err := b.Offset(position.Position{Row: s.Cursor.Row, Col: uint32(rowLen)})
		if err != nil {
			return buffer.Range{}, err
		}
		return buffer.Range{Start: cursor, End: end}, nil

	case position.Left, position.Down, position.Up, position.Right:
		return buffer.Range{}, position.ErrUnimplemented

	default:
		return buffer.Range{}, position.ErrUnimplemented
	}
}

func sumForwardWord(b *buffer.Buffer, start buffer.CharOffset, n int) (int, error) {
	total := 0
	pos := start
	for i := 0; i < n; i++ {
		d, err := b.CountForwardWord(pos)
		if err != nil {
			return 0, err
		}
		total += d
		pos += buffer.CharOffset(d)
	}
	return total, nil
}

func sumWordEnd(b *buffer.Buffer, start buffer.CharOffset, n int) (int, error) {
	total := 0
	pos := start
	for i := 0; i < n; i++ {
		d, err := b.CountWordEnd(pos)
		if err != nil {
			return 0, err
		}
		total += d
		pos += buffer.CharOffset(d)
	}
	return total, nil
}

func sumBackWord(b *buffer.Buffer, start buffer.CharOffset, n int) (int, error) {
	total := 0
	pos := start
	for i := 0; i < n; i++ {
		d, err := b.CountBackWord(pos)
		if err != nil {
			return 0, err
		}
		total += d
		if buffer.CharOffset(d) > pos {
			pos = 0
		} else {
			pos -= buffer.CharOffset(d)
		}
	}
	return total, nil
}

// lineRange returns the full character range of n lines starting at row,
// including line terminators, clamped to the end of the buffer.
func lineRange(b *buffer.Buffer, row uint32, n uint32) (buffer.Range, error) {
	if n == 0 {
		n = 1
	}
	start, err := b.Offset(position.Position{Row: row, Col: 0})
	if err != nil {
		return buffer.Range{}, err
	}
	lastRow := row + n
	if lastRow >= b.CountLines() {
		return buffer.Range{Start: start, End: b.Len()}, nil
	}
	end, err := b.Offset(position.Position{Row: lastRow, Col: 0})
	if err != nil {
		return buffer.Range{}, err
	}
	return buffer.Range{Start: start, End: end}, nil
}
