package reactor

import (
	"regexp"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/search"
	"github.com/dshills/keystorm/internal/engine/state"
)

// Buffer is the derived, read-only Buffer snapshot (spec §4.3).
type Buffer struct{ Snapshot *buffer.Snapshot }

// LineCount is the buffer's current line count.
type LineCount uint32

// MaxLineDigit is the column width needed to print the largest line
// number in the gutter.
type MaxLineDigit int

// CurrentLine is the text of the row the cursor sits on.
type CurrentLine string

// CursorRow is the cursor's row, exposed separately from Cursor so
// gutter highlighting can depend on it without also depending on column.
type CursorRow uint32

// Cursor is the stored cursor position.
type Cursor position.Position

// TerminalHeight is the terminal's current row count.
type TerminalHeight uint32

// Mode is the current editor mode.
type Mode state.Mode

// RowOffset is the first visible buffer row.
type RowOffset uint32

// LineRange is the inclusive range of currently visible rows.
type LineRange struct{ First, Last uint32 }

// SearchPattern is the current search pattern string.
type SearchPattern string

// MatchPositions is every match of SearchPattern across the whole buffer.
type MatchPositions []search.Match

// MatchPositionsInView is MatchPositions restricted to LineRange.
type MatchPositionsInView []search.Match

// CursorView is the cursor position the renderer should draw: in Search
// mode this is the next match from the stored cursor (wrap allowed),
// otherwise it equals the stored cursor (spec §4.9).
type CursorView position.Position

func registerBuiltins(r *Reactor) {
	Register[Buffer](r,
		// The source must be a frozen copy, not the live *buffer.Buffer
		// pointer: ropes are immutable but Buffer swaps its rope field in
		// place on edit, so comparing the same pointer across generations
		// would always see "current vs current" and never detect a change.
		// Snapshot captures the rope value as of this call, which stays
		// exactly as it was even after later edits replace the live field.
		func(r *Reactor) any {
			if r.state.Buffer == nil {
				return (*buffer.Snapshot)(nil)
			}
			return r.state.Buffer.Snapshot()
		},
		func(src any) Buffer {
			snap, _ := src.(*buffer.Snapshot)
			return Buffer{Snapshot: snap}
		},
	)

	Register[LineCount](r,
		func(r *Reactor) any { return getValue[Buffer](r).Snapshot },
		func(src any) LineCount {
			snap, _ := src.(*buffer.Snapshot)
			if snap == nil {
				return 0
			}
			return LineCount(snap.CountLines())
		},
	)

	Register[MaxLineDigit](r,
		func(r *Reactor) any { return getValue[LineCount](r) },
		func(src any) MaxLineDigit {
			n := int(src.(LineCount))
			digits := 1
			for n >= 10 {
				n /= 10
				digits++
			}
			return MaxLineDigit(digits)
		},
	)

	Register[CursorRow](r,
		func(r *Reactor) any { return r.state.Cursor.Row },
		func(src any) CursorRow { return CursorRow(src.(uint32)) },
	)

	Register[CurrentLine](r,
		func(r *Reactor) any {
			return currentLineSource{snap: getValue[Buffer](r).Snapshot, row: getValue[CursorRow](r)}
		},
		func(src any) CurrentLine {
			s := src.(currentLineSource)
			if s.snap == nil {
				return ""
			}
			text, err := s.snap.LineText(uint32(s.row))
			if err != nil {
				return ""
			}
			return CurrentLine(text)
		},
	)

	Register[Cursor](r,
		func(r *Reactor) any { return r.state.Cursor },
		func(src any) Cursor { return Cursor(src.(position.Position)) },
	)

	Register[TerminalHeight](r,
		func(r *Reactor) any { return r.state.TermHeight },
		func(src any) TerminalHeight { return TerminalHeight(src.(uint32)) },
	)

	Register[Mode](r,
		func(r *Reactor) any { return r.state.Mode },
		func(src any) Mode { return Mode(src.(state.Mode)) },
	)

	Register[RowOffset](r,
		func(r *Reactor) any { return r.state.RowOffset },
		func(src any) RowOffset { return RowOffset(src.(uint32)) },
	)

	Register[LineRange](r,
		func(r *Reactor) any {
			return lineRangeSource{
				offset: getValue[RowOffset](r),
				height: getValue[TerminalHeight](r),
				lines:  getValue[LineCount](r),
			}
		},
		func(src any) LineRange {
			s := src.(lineRangeSource)
			textRows := uint32(0)
			if s.height >= 2 {
				textRows = uint32(s.height) - 2
			}
			first := uint32(s.offset)
			last := first
			if textRows > 0 {
				last = first + textRows - 1
			}
			if lines := uint32(s.lines); lines > 0 && last >= lines {
				last = lines - 1
			}
			return LineRange{First: first, Last: last}
		},
	)

	Register[SearchPattern](r,
		func(r *Reactor) any { return r.state.SearchPattern },
		func(src any) SearchPattern { return SearchPattern(src.(string)) },
	)

	Register[MatchPositions](r,
		func(r *Reactor) any {
			return matchSource{snap: getValue[Buffer](r).Snapshot, pattern: getValue[SearchPattern](r)}
		},
		func(src any) MatchPositions {
			s := src.(matchSource)
			if s.snap == nil || s.pattern == "" {
				return nil
			}
			re, err := regexp.Compile(string(s.pattern))
			if err != nil {
				return nil
			}
			b := buffer.NewBufferFromString(s.snap.Text())
			matches, err := search.MatchPositions(b, re)
			if err != nil {
				return nil
			}
			return MatchPositions(matches)
		},
	)

	Register[MatchPositionsInView](r,
		func(r *Reactor) any {
			return viewMatchSource{matches: getValue[MatchPositions](r), view: getValue[LineRange](r)}
		},
		func(src any) MatchPositionsInView {
			s := src.(viewMatchSource)
			return MatchPositionsInView(search.MatchPositionsInView(s.matches, s.view.First, s.view.Last))
		},
	)

	Register[CursorView](r,
		func(r *Reactor) any {
			return cursorViewSource{
				mode:    getValue[Mode](r),
				cursor:  getValue[Cursor](r),
				matches: getValue[MatchPositions](r),
			}
		},
		func(src any) CursorView {
			s := src.(cursorViewSource)
			if state.Mode(s.mode).Kind != state.ModeSearch {
				return CursorView(s.cursor)
			}
			m, ok := search.NextMatch(s.matches, position.Position(s.cursor))
			if !ok {
				return CursorView(s.cursor)
			}
			return CursorView(m.Start)
		},
	)
}

type currentLineSource struct {
	snap *buffer.Snapshot
	row  CursorRow
}

type lineRangeSource struct {
	offset RowOffset
	height TerminalHeight
	lines  LineCount
}

type matchSource struct {
	snap    *buffer.Snapshot
	pattern SearchPattern
}

type viewMatchSource struct {
	matches MatchPositions
	view    LineRange
}

type cursorViewSource struct {
	mode    Mode
	cursor  Cursor
	matches MatchPositions
}
