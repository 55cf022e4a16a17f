package dispatcher

import (
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/reactor"
	"github.com/dshills/keystorm/internal/engine/search"
	"github.com/dshills/keystorm/internal/engine/state"
)

// applyMovement implements spec §4.4: every MovementKind repositions
// Cursor (and, for the scroll kinds, RowOffset) without mutating the
// buffer. Count repeats MoveLeft/Right/Up/Down and the word motions;
// MoveLine takes it as the 1-based target row; every other kind
// (including MoveNextMatch/MovePrevMatch and the screen scrolls) ignores it.
func (s *Store) applyMovement(kind state.MovementKind, count int, target uint64) error {
	b := s.state.Buffer
	cur := s.state.Cursor

	switch kind {
	case state.MoveLeft:
		col := cur.Col
		if uint32(count) > col {
			col = 0
		} else {
			col -= uint32(count)
		}
		s.state.Cursor = position.Position{Row: cur.Row, Col: col}

	case state.MoveRight:
		rowLen, err := b.RowLen(cur.Row)
		if err != nil {
			return err
		}
		col := cur.Col + uint32(count)
		if limit := lineColLimit(uint32(rowLen), s.state.Mode.Kind); col > limit {
			col = limit
		}
		s.state.Cursor = position.Position{Row: cur.Row, Col: col}

	case state.MoveUp:
		row := cur.Row
		if uint32(count) > row {
			row = 0
		} else {
			row -= uint32(count)
		}
		s.state.Cursor = position.Position{Row: row, Col: s.clampCol(row, s.state.MaxColumn)}

	case state.MoveDown:
		last := lastRow(b)
		row := cur.Row + uint32(count)
		if row > last {
			row = last
		}
		s.state.Cursor = position.Position{Row: row, Col: s.clampCol(row, s.state.MaxColumn)}

	case state.MoveLineHead:
		s.state.Cursor = position.Position{Row: cur.Row, Col: 0}
		s.state.MaxColumn = 0

	case state.MoveLineTail:
		rowLen, err := b.RowLen(cur.Row)
		if err != nil {
			return err
		}
		col := lineColLimit(uint32(rowLen), s.state.Mode.Kind)
		s.state.Cursor = position.Position{Row: cur.Row, Col: col}
		s.state.MaxColumn = col

	case state.MoveIndentHead:
		col, err := b.CurrentLineIndentHead(cur.Row)
		if err != nil {
			return err
		}
		s.state.Cursor = position.Position{Row: cur.Row, Col: col}
		s.state.MaxColumn = col

	case state.MoveForwardWord:
		offset, err := b.Offset(cur)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			delta, err := b.CountForwardWord(offset)
			if err != nil {
				return err
			}
			offset += buffer.CharOffset(delta)
		}
		pos, err := b.Position(offset)
		if err != nil {
			return err
		}
		s.state.Cursor = pos
		s.state.MaxColumn = pos.Col

	case state.MoveBackWord:
		offset, err := b.Offset(cur)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			delta, err := b.CountBackWord(offset)
			if err != nil {
				return err
			}
			offset -= buffer.CharOffset(delta)
		}
		pos, err := b.Position(offset)
		if err != nil {
			return err
		}
		s.state.Cursor = pos
		s.state.MaxColumn = pos.Col

	case state.MoveLine:
		row := uint32(count) - 1
		if last := lastRow(b); row > last {
			row = last
		}
		col, err := b.CurrentLineIndentHead(row)
		if err != nil {
			return err
		}
		s.state.Cursor = position.Position{Row: row, Col: col}
		s.state.MaxColumn = col

	case state.MoveTail:
		row := lastRow(b)
		col, err := b.CurrentLineIndentHead(row)
		if err != nil {
			return err
		}
		s.state.Cursor = position.Position{Row: row, Col: col}
		s.state.MaxColumn = col

	case state.MoveScreenUp:
		rows := s.state.TextAreaRows()
		if s.state.RowOffset > rows {
			s.state.RowOffset -= rows
		} else {
			s.state.RowOffset = 0
		}
		s.state.Cursor = position.Position{Row: s.state.RowOffset, Col: s.clampCol(s.state.RowOffset, s.state.MaxColumn)}

	case state.MoveScreenDown:
		rows := s.state.TextAreaRows()
		last := lastRow(b)
		offset := s.state.RowOffset + rows
		if offset > last {
			offset = last
		}
		s.state.RowOffset = offset
		s.state.Cursor = position.Position{Row: offset, Col: s.clampCol(offset, s.state.MaxColumn)}

	case state.MoveTo:
		pos, err := b.Position(buffer.CharOffset(target))
		if err != nil {
			return err
		}
		s.state.Cursor = pos
		s.state.MaxColumn = pos.Col

	case state.MoveAsSeenOnView:
		s.state.Cursor = position.Position(reactor.Get[reactor.CursorView](s.reactor))

	case state.MoveNextMatch:
		matches := reactor.Get[reactor.MatchPositions](s.reactor)
		if m, ok := search.NextMatch(matches, cur); ok {
			s.state.Cursor = m.Start
			s.state.MaxColumn = m.Start.Col
		}

	case state.MovePrevMatch:
		matches := reactor.Get[reactor.MatchPositions](s.reactor)
		if m, ok := search.PrevMatch(matches, cur); ok {
			s.state.Cursor = m.Start
			s.state.MaxColumn = m.Start.Col
		}
	}

	switch kind {
	case state.MoveLeft, state.MoveRight:
		s.state.MaxColumn = s.state.Cursor.Col
	}

	return nil
}

// lineColLimit returns the highest column a cursor may occupy on a line of
// the given length: Insert/CmdLine/Search modes allow the position just
// past the last rune (to type after it); Normal/Edit modes cap one short
// of that so the cursor always rests on a character (spec §4.7's "normal
// mode never rests past the last column" rule, restated here since
// movements are clamped as they are computed, not only in coercion).
func lineColLimit(rowLen uint32, mode state.ModeKind) uint32 {
	if rowLen == 0 {
		return 0
	}
	if mode == state.ModeInsert || mode == state.ModeCmdLine || mode == state.ModeSearch {
		return rowLen
	}
	return rowLen - 1
}

func lastRow(b *buffer.Buffer) uint32 {
	n := b.CountLines()
	if n == 0 {
		return 0
	}
	return n - 1
}

// clampCol resolves the desired column against a possibly shorter target
// row, the vim "sticky column" behavior backing MaxColumn (spec §4.4).
func (s *Store) clampCol(row, desired uint32) uint32 {
	rowLen, err := s.state.Buffer.RowLen(row)
	if err != nil {
		return 0
	}
	limit := lineColLimit(uint32(rowLen), s.state.Mode.Kind)
	if desired > limit {
		return limit
	}
	return desired
}
