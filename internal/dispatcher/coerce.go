package dispatcher

// coerce implements spec §4.7: after every Action, Cursor and RowOffset
// are brought back into a range the rest of the system can rely on,
// independent of which Action just ran. Individual movement/edit handlers
// already clamp the values they compute directly; this pass catches
// everything else (history restores, mode transitions, edits that shrink
// the buffer out from under an unrelated cursor row).
func (s *Store) coerce() {
	s.coerceCursorRow()
	s.coerceCursorCol()
	s.coerceScroll()
}

func (s *Store) coerceCursorRow() {
	last := lastRow(s.state.Buffer)
	if s.state.Cursor.Row > last {
		s.state.Cursor.Row = last
	}
}

func (s *Store) coerceCursorCol() {
	rowLen, err := s.state.Buffer.RowLen(s.state.Cursor.Row)
	if err != nil {
		return
	}
	limit := lineColLimit(uint32(rowLen), s.state.Mode.Kind)
	if s.state.Cursor.Col > limit {
		s.state.Cursor.Col = limit
	}
}

// coerceScroll keeps Cursor within the RowOffset..RowOffset+TextAreaRows
// window (spec §4.3/§4.7), scrolling the minimum amount necessary rather
// than recentering.
func (s *Store) coerceScroll() {
	rows := s.state.TextAreaRows()
	if rows == 0 {
		return
	}
	if s.state.Cursor.Row < s.state.RowOffset {
		s.state.RowOffset = s.state.Cursor.Row
		return
	}
	bottom := s.state.RowOffset + rows - 1
	if s.state.Cursor.Row > bottom {
		s.state.RowOffset = s.state.Cursor.Row - rows + 1
	}
}
