package dispatcher

import (
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/history"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/state"
)

// intoNormalMode implements leaving Insert/Edit/CmdLine/Search mode
// (Escape). Vim never rests the cursor past the last character of a line,
// so a cursor sitting just past the end of text after typing steps back
// one column (spec §4.7's column coercion restated here at the moment of
// transition, since the generic post-dispatch pass only clamps, it does
// not also decide which mode just ended).
func (s *Store) intoNormalMode() error {
	leaving := s.state.Mode
	wasInsert := leaving.Kind == state.ModeInsert
	s.state.Mode = state.NewNormalMode()
	if wasInsert {
		s.synthesizeRepeatFromStaged(leaving)
		if s.state.Cursor.Col > 0 {
			rowLen, err := s.state.Buffer.RowLen(s.state.Cursor.Row)
			if err == nil && s.state.Cursor.Col >= uint32(rowLen) {
				s.state.Cursor.Col--
				s.state.MaxColumn = s.state.Cursor.Col
			}
		}
	}
	return nil
}

// synthesizeRepeatFromStaged replaces State.PrevEdit with a single edit
// covering the whole insert run that just ended, per spec §9: "insert-mode
// keystrokes accumulate in a staged string and become a single InsertString
// or Edit EditKind on transition back to Normal". A run that inserted
// nothing (plain Escape right after entering Insert) leaves PrevEdit as
// whatever structural edit preceded it.
func (s *Store) synthesizeRepeatFromStaged(leaving state.Mode) {
	if leaving.Staged == "" {
		return
	}
	edit := state.Edit{Kind: state.EditInsertString, Text: leaving.Staged, Pre: leaving.PrefixMotion}
	if leaving.Insert == state.InsertKindEdit {
		edit.Kind = state.EditEdit
		if leaving.EditSelection != nil {
			edit.Selection = *leaving.EditSelection
		}
	}
	s.state.PrevEdit = &state.PrevEdit{Edit: edit, Count: 1}
}

// intoInsertMode enters plain insertion ("i"), optionally preceded by a
// motion that repositions the cursor before typing begins. Dispatch always
// passes a nil prefix; the parameter is accepted for parity with
// state.NewInsertMode's signature.
func (s *Store) intoInsertMode(prefix *state.MovementKind) error {
	s.pushHistory()
	s.state.Mode = state.NewInsertMode(prefix)
	return nil
}

// intoAppendMode enters insertion one column to the right of the cursor
// ("a"), landing past the last character of a non-empty line.
func (s *Store) intoAppendMode() error {
	rowLen, err := s.state.Buffer.RowLen(s.state.Cursor.Row)
	if err != nil {
		return err
	}
	if uint32(rowLen) > 0 {
		s.state.Cursor.Col++
		if s.state.Cursor.Col > uint32(rowLen) {
			s.state.Cursor.Col = uint32(rowLen)
		}
		s.state.MaxColumn = s.state.Cursor.Col
	}
	s.pushHistory()
	s.state.Mode = state.NewInsertMode(nil)
	return nil
}

// intoEditMode implements the "change" family (cw, cc, C, ...): delete the
// resolved selection, yank what was removed, and drop into insertion at
// the deletion point with Mode.EditSelection recording what was changed
// (spec §4.6's edit-mode entry).
func (s *Store) intoEditMode(sel position.Selection) error {
	return s.enterEdit(state.Edit{Kind: state.EditEdit, Selection: sel})
}

// enterEdit is the shared core behind both ActionIntoEditMode and an Edit
// payload tagged EditEdit (spec §4.5/§4.6 converge here: a "change" is a
// selection delete immediately followed by entering Insert).
func (s *Store) enterEdit(e state.Edit) error {
	s.pushHistory()
	r, err := resolveSelection(s.state, e.Selection)
	if err != nil {
		return err
	}
	b := s.state.Buffer
	startByte, err := b.ByteOffsetOf(r.Start)
	if err != nil {
		return err
	}
	endByte, err := b.ByteOffsetOf(r.End)
	if err != nil {
		return err
	}
	removed, err := b.Remove(r)
	if err != nil {
		return err
	}
	s.highlighter.EditTree(editInput(startByte, endByte, startByte))
	s.state.Yanked = removed

	pos, err := b.Position(r.Start)
	if err != nil {
		return err
	}
	s.state.Cursor = pos
	s.state.MaxColumn = pos.Col
	s.state.Mode = state.NewEditMode(e.Selection)
	return nil
}

// yank implements vim's y{motion}: resolve sel, copy the covered text into
// State.Yanked, and leave Buffer and Cursor untouched. A Line selection
// forces a trailing newline onto the yanked text regardless of whether
// the buffer's final line already had one, so paste (pasteYank) can tell
// linewise yanks apart from characterwise ones. LineRemain ("D"-style,
// character-wise to end of line) is explicitly excluded from this rule.
func (s *Store) yank(sel position.Selection) error {
	r, err := resolveSelection(s.state, sel)
	if err != nil {
		return err
	}
	slice, err := s.state.Buffer.Slice(r)
	if err != nil {
		return err
	}
	text := slice.String()
	if sel.Kind == position.Line && !hasTrailingNewline(text) {
		text += "\n"
	}
	s.state.Yanked = text
	return nil
}

func hasTrailingNewline(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}

// repeat re-applies State.PrevEdit (the "." command), if one is recorded.
func (s *Store) repeat() error {
	if s.state.PrevEdit == nil {
		return nil
	}
	prev := *s.state.PrevEdit
	return s.applyEdit(prev.Edit, prev.Count)
}

// save writes Buffer's text to State.Path. Returns ErrNoPath if Path is
// unset (spec §9 Open Question decision: a no-op, not a fatal error).
func (s *Store) save() error {
	if s.state.Path == "" {
		return ErrNoPath
	}
	return s.writeOut(s.state.Path)
}

// writeOut writes Buffer's text to the given path via the Store's
// configured Persist function, setting State.Path as a side effect so a
// subsequent bare Save reuses it (SPEC_FULL §4 item 1's "w <path>" rule).
func (s *Store) writeOut(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if s.persist == nil {
		return nil
	}
	if err := s.persist(path, s.state.Buffer.Text()); err != nil {
		return err
	}
	s.state.Path = path
	return nil
}

// undo/redo restore a History record onto State.Buffer, State.Cursor, and
// the Highlighter's tree.
func (s *Store) undo(count int) {
	cur := history.Record{
		Buffer: history.BufferState{Text: s.state.Buffer.Text()},
		Cursor: s.state.Cursor,
		Tree:   s.highlighter.Tree(),
	}
	rec, ok := s.history.Undo(cur, count)
	if !ok {
		return
	}
	s.restore(rec)
}

func (s *Store) redo(count int) {
	cur := history.Record{
		Buffer: history.BufferState{Text: s.state.Buffer.Text()},
		Cursor: s.state.Cursor,
		Tree:   s.highlighter.Tree(),
	}
	rec, ok := s.history.Redo(cur, count)
	if !ok {
		return
	}
	s.restore(rec)
}

func (s *Store) restore(rec history.Record) {
	s.state.Buffer = buffer.NewBufferFromString(rec.Buffer.Text)
	s.state.Cursor = rec.Cursor
	s.state.MaxColumn = rec.Cursor.Col
	s.highlighter.RestoreTree(rec.Tree)
}
