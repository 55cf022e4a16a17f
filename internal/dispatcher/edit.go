package dispatcher

import (
	"strings"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/highlight"
	"github.com/dshills/keystorm/internal/engine/history"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/state"
)

// applyEdit implements spec §4.5: every EditKind mutates Buffer, then
// repositions Cursor. Structural edits push one History record before
// mutating; the exception is per-keystroke insertion while already inside
// Insert/Edit mode (EditInsertChar, EditLineBreak, EditRemoveChar as
// backspace-during-insert), which would otherwise turn every typed
// character into its own undo step. Those are only ever reached once the
// mode-entry action (EditEdit via intoInsertMode/intoAppendMode/
// intoEditMode) has already pushed the record for the whole insert run.
//
// Mirroring original_source's edit/store.rs `action()`, every dispatched
// edit unconditionally records itself as State.PrevEdit so "." can replay
// it. Per-keystroke inserts are overwritten again on the very next
// keystroke; what survives to be repeated is whichever edit was applied
// last, and intoNormalMode overwrites it once more with the synthesized
// whole-run InsertString/Edit when an Insert run ends (spec §9).
func (s *Store) applyEdit(e state.Edit, count int) error {
	if err := s.dispatchEdit(e, count); err != nil {
		return err
	}
	s.state.PrevEdit = &state.PrevEdit{Edit: e, Count: count}
	return nil
}

func (s *Store) dispatchEdit(e state.Edit, count int) error {
	switch e.Kind {
	case state.EditLineBreak:
		if err := s.insertText("\n"); err != nil {
			return err
		}
		s.stageInsert("\n")
		return nil

	case state.EditInsertChar:
		str := string(e.Char)
		if err := s.insertText(str); err != nil {
			return err
		}
		s.stageInsert(str)
		return nil

	case state.EditRemoveChar:
		return s.removeCharBeforeCursor()

	case state.EditRemoveSelection:
		s.pushHistory()
		return s.removeSelection(e.Selection)

	case state.EditAppendYank:
		s.pushHistory()
		return s.pasteYank(false)

	case state.EditInsertYank:
		s.pushHistory()
		return s.pasteYank(true)

	case state.EditInsertString:
		s.pushHistory()
		if e.Pre != nil {
			if err := s.applyMovement(*e.Pre, 1, 0); err != nil {
				return err
			}
		}
		return s.insertTextAfterCursor(e.Text)

	case state.EditEdit:
		if err := s.enterEdit(e); err != nil {
			return err
		}
		if e.Text != "" {
			if err := s.insertText(e.Text); err != nil {
				return err
			}
			s.state.Mode = state.NewNormalMode()
		}
		return nil
	}
	return nil
}

// stageInsert appends str to the active Insert mode's Staged string, the
// accumulator intoNormalMode reads to synthesize a single repeatable edit
// for the whole insert run (spec §9). A no-op outside Insert mode.
func (s *Store) stageInsert(str string) {
	if s.state.Mode.Kind == state.ModeInsert {
		s.state.Mode.Staged += str
	}
}

func (s *Store) pushHistory() {
	s.history.Push(history.Record{
		Buffer: history.BufferState{Text: s.state.Buffer.Text()},
		Cursor: s.state.Cursor,
		Tree:   s.highlighter.Tree(),
	})
}

// insertText inserts str at the cursor without pushing history (the
// caller during an Insert-mode run already pushed one record on mode
// entry) and advances the cursor past the inserted text.
func (s *Store) insertText(str string) error {
	b := s.state.Buffer
	offset, err := b.Offset(s.state.Cursor)
	if err != nil {
		return err
	}
	startByte, err := b.ByteOffsetOf(offset)
	if err != nil {
		return err
	}
	if err := b.Insert(offset, str); err != nil {
		return err
	}
	newOffset := offset + buffer.CharOffset(len([]rune(str)))
	endByte, err := b.ByteOffsetOf(newOffset)
	if err != nil {
		endByte = startByte + uint64(len(str))
	}
	s.highlighter.EditTree(editInput(startByte, startByte, endByte))

	pos, err := b.Position(newOffset)
	if err != nil {
		return err
	}
	s.state.Cursor = pos
	s.state.MaxColumn = pos.Col
	return nil
}

// insertTextAfterCursor inserts str one column past the cursor and lands
// the cursor on the last inserted rune, the same placement pasteYank uses
// for "p". This is how a synthesized EditInsertString (spec §9's
// whole-run replay of a staged insert) resumes typing on repeat: Normal
// mode always rests the cursor on the last character of the run that just
// ended, so picking up again means continuing one column past it rather
// than splicing back in before it.
func (s *Store) insertTextAfterCursor(str string) error {
	if str == "" {
		return nil
	}
	b := s.state.Buffer
	offset, err := b.Offset(s.state.Cursor)
	if err != nil {
		return err
	}
	offset++
	startByte, err := b.ByteOffsetOf(offset)
	if err != nil {
		return err
	}
	if err := b.Insert(offset, str); err != nil {
		return err
	}
	newOffset := offset + buffer.CharOffset(len([]rune(str)))
	endByte, err := b.ByteOffsetOf(newOffset)
	if err != nil {
		endByte = startByte + uint64(len(str))
	}
	s.highlighter.EditTree(editInput(startByte, startByte, endByte))

	pos, err := b.Position(newOffset - 1)
	if err != nil {
		return err
	}
	s.state.Cursor = pos
	s.state.MaxColumn = pos.Col
	return nil
}

// removeCharBeforeCursor implements backspace during insertion: deletes
// one rune to the left of the cursor and moves the cursor onto the gap.
func (s *Store) removeCharBeforeCursor() error {
	b := s.state.Buffer
	offset, err := b.Offset(s.state.Cursor)
	if err != nil {
		return err
	}
	if offset == 0 {
		return nil
	}
	startByte, err := b.ByteOffsetOf(offset - 1)
	if err != nil {
		return err
	}
	endByte, err := b.ByteOffsetOf(offset)
	if err != nil {
		return err
	}
	if _, err := b.Remove(buffer.NewRange(offset-1, offset)); err != nil {
		return err
	}
	s.highlighter.EditTree(editInput(startByte, endByte, startByte))

	pos, err := b.Position(offset - 1)
	if err != nil {
		return err
	}
	s.state.Cursor = pos
	s.state.MaxColumn = pos.Col
	return nil
}

// directionalRange resolves the Left/Right selection kinds directly as a
// char-offset range around the cursor. These kinds are the ones
// state.MeasureSelection deliberately leaves unimplemented (reserved for
// a future visual-selection mode); here they only ever mean "the next/
// previous count characters from the cursor", which is all "x" (Right)
// needs, so the dispatcher resolves them itself rather than asking
// MeasureSelection to.
func directionalRange(st state.State, sel position.Selection) (buffer.Range, bool) {
	offset, err := st.Buffer.Offset(st.Cursor)
	if err != nil {
		return buffer.Range{}, false
	}
	switch sel.Kind {
	case position.Right:
		end := offset + buffer.CharOffset(sel.Count)
		if max := st.Buffer.Len(); end > max {
			end = max
		}
		return buffer.NewRange(offset, end), true
	case position.Left:
		start := offset
		if buffer.CharOffset(sel.Count) > start {
			start = 0
		} else {
			start = offset - buffer.CharOffset(sel.Count)
		}
		return buffer.NewRange(start, offset), true
	default:
		return buffer.Range{}, false
	}
}

// resolveSelection resolves sel against st, handling the Left/Right
// directional kinds itself before falling back to state.MeasureSelection
// for everything else.
func resolveSelection(st state.State, sel position.Selection) (buffer.Range, error) {
	if r, ok := directionalRange(st, sel); ok {
		return r, nil
	}
	return state.MeasureSelection(st, sel)
}

// removeSelection resolves sel against the current State and deletes the
// resulting range, storing the removed text as the new Yanked value (vim
// semantics: delete always yanks) and landing the cursor at the range
// start.
func (s *Store) removeSelection(sel position.Selection) error {
	r, err := resolveSelection(s.state, sel)
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
	return nil
}

// pasteYank inserts State.Yanked either before (insertBefore=true, "P")
// or after (insertBefore=false, "p") the cursor. A yank ending in a
// newline is linewise (spec's yank-line convention) and is inserted on
// its own line rather than splicing into the current one.
func (s *Store) pasteYank(insertBefore bool) error {
	text := s.state.Yanked
	if text == "" {
		return nil
	}
	b := s.state.Buffer
	cur := s.state.Cursor

	if strings.HasSuffix(text, "\n") {
		row := cur.Row
		if !insertBefore {
			row++
		}
		r, err := lineInsertionPoint(b, row)
		if err != nil {
			return err
		}
		startByte, err := b.ByteOffsetOf(r)
		if err != nil {
			return err
		}
		if err := b.Insert(r, text); err != nil {
			return err
		}
		endByte, err := b.ByteOffsetOf(r + buffer.CharOffset(len([]rune(text))))
		if err != nil {
			endByte = startByte + uint64(len(text))
		}
		s.highlighter.EditTree(editInput(startByte, startByte, endByte))

		pos, err := b.Position(r)
		if err != nil {
			return err
		}
		col, err := b.CurrentLineIndentHead(pos.Row)
		if err == nil {
			pos.Col = col
		}
		s.state.Cursor = pos
		s.state.MaxColumn = pos.Col
		return nil
	}

	offset, err := b.Offset(cur)
	if err != nil {
		return err
	}
	if !insertBefore {
		offset++
	}
	startByte, err := b.ByteOffsetOf(offset)
	if err != nil {
		return err
	}
	if err := b.Insert(offset, text); err != nil {
		return err
	}
	newOffset := offset + buffer.CharOffset(len([]rune(text))) - 1
	endByte, err := b.ByteOffsetOf(offset + buffer.CharOffset(len([]rune(text))))
	if err != nil {
		endByte = startByte + uint64(len(text))
	}
	s.highlighter.EditTree(editInput(startByte, startByte, endByte))

	pos, err := b.Position(newOffset)
	if err != nil {
		return err
	}
	s.state.Cursor = pos
	s.state.MaxColumn = pos.Col
	return nil
}

// lineInsertionPoint returns the char offset of the start of row, or the
// buffer's end offset if row is past the last line (pasting after the
// final line appends a new one).
func lineInsertionPoint(b *buffer.Buffer, row uint32) (buffer.CharOffset, error) {
	if row >= b.CountLines() {
		return b.Len(), nil
	}
	return b.Offset(position.Position{Row: row, Col: 0})
}

func editInput(start, oldEnd, newEnd uint64) highlight.Edit {
	return highlight.Edit{
		StartByte:  uint32(start),
		OldEndByte: uint32(oldEnd),
		NewEndByte: uint32(newEnd),
	}
}
