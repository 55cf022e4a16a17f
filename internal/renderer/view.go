package renderer

import (
	"context"
	"unicode/utf8"

	"github.com/dshills/keystorm/internal/engine/highlight"
	"github.com/dshills/keystorm/internal/engine/reactor"
	"github.com/dshills/keystorm/internal/engine/search"
	"github.com/dshills/keystorm/internal/engine/state"
)

// LineSpan is a styled run within a visible line's text, in char columns.
type LineSpan struct {
	StartCol uint32
	EndCol   uint32
	Style    Style
}

// VisibleLine is one row of the text area: its buffer row, its text, and
// the spans (syntax first, search matches layered on top) that style it.
type VisibleLine struct {
	Row        uint32
	Text       string
	Spans      []LineSpan
	CursorLine bool
}

// TextAreaProps is everything the backend needs to paint the buffer
// viewport for one frame (spec §4.3's pull interface, §6 render loop).
type TextAreaProps struct {
	FirstRow uint32
	Lines    []VisibleLine
}

// LineNumberProps is the gutter's per-frame inputs.
type LineNumberProps struct {
	FirstRow   uint32
	LastRow    uint32
	LineCount  uint32
	Width      int
	CurrentRow uint32
}

// CursorProps locates the hardware cursor (spec §4.9's CursorView: the
// stored cursor in every mode but Search, where it previews the next match).
type CursorProps struct {
	Row     uint32
	Col     uint32
	Visible bool
}

// StatusLineProps is the bottom line's per-frame inputs: mode name,
// file path, 1-based cursor position for display, and whatever the
// cmdline/search prompt is currently accumulating.
type StatusLineProps struct {
	Mode          string
	Path          string
	CursorLine    uint32
	CursorColumn  uint32
	CmdBuffer     string
	SearchPattern string
	SearchPrefix  rune // '/' or '?', zero outside Search/CmdLine mode
}

// Pull assembles every prop struct a frame needs from the Reactor's
// current generation, running the Highlighter over the visible range for
// syntax spans and blending in search match spans from the same range.
func Pull(ctx context.Context, r *reactor.Reactor, h *highlight.Highlighter, theme Theme) (TextAreaProps, LineNumberProps, CursorProps, StatusLineProps) {
	if theme == nil {
		theme = DefaultTheme()
	}

	buf := reactor.Get[reactor.Buffer](r)
	lineRange := reactor.Get[reactor.LineRange](r)
	cursorRow := reactor.Get[reactor.CursorRow](r)
	cursorView := reactor.Get[reactor.CursorView](r)
	mode := state.Mode(reactor.Get[reactor.Mode](r))
	matchesInView := reactor.Get[reactor.MatchPositionsInView](r)

	var syntax []highlight.Span
	if h != nil {
		spans, err := h.Update(ctx, r)
		if err == nil {
			syntax = spans
		}
	}

	textArea := pullTextArea(buf, lineRange, cursorRow, syntax, []search.Match(matchesInView), theme)
	lineNumbers := LineNumberProps{
		FirstRow:   lineRange.First,
		LastRow:    lineRange.Last,
		LineCount:  uint32(reactor.Get[reactor.LineCount](r)),
		Width:      int(reactor.Get[reactor.MaxLineDigit](r)),
		CurrentRow: uint32(cursorRow),
	}
	cursor := CursorProps{
		Row:     cursorView.Row,
		Col:     cursorView.Col,
		Visible: mode.Kind != state.ModeCmdLine,
	}
	status := pullStatusLine(r, mode)

	return textArea, lineNumbers, cursor, status
}

func pullTextArea(buf reactor.Buffer, lineRange reactor.LineRange, cursorRow reactor.CursorRow, syntax []highlight.Span, matches []search.Match, theme Theme) TextAreaProps {
	if buf.Snapshot == nil {
		return TextAreaProps{FirstRow: lineRange.First}
	}

	lines := make([]VisibleLine, 0, lineRange.Last-lineRange.First+1)
	for row := lineRange.First; row <= lineRange.Last; row++ {
		text, err := buf.Snapshot.LineText(row)
		if err != nil {
			break
		}
		line := VisibleLine{Row: row, Text: text, CursorLine: row == uint32(cursorRow)}
		for _, sp := range syntax {
			if sp.Anchor.Row != row {
				continue
			}
			// Syntax spans carry tree-sitter byte columns and byte lengths.
			startB := min(int(sp.Anchor.Col), len(text))
			endB := min(startB+sp.Length, len(text))
			line.Spans = append(line.Spans, LineSpan{
				StartCol: uint32(utf8.RuneCountInString(text[:startB])),
				EndCol:   uint32(utf8.RuneCountInString(text[:endB])),
				Style:    theme.Lookup(sp.Name),
			})
		}
		searchStyle := NewStyle(ColorDefault).WithBackground(ColorFromRGB(100, 100, 40))
		for _, m := range matches {
			if m.Start.Row != row {
				continue
			}
			line.Spans = append(line.Spans, LineSpan{
				StartCol: m.Start.Col,
				EndCol:   m.Start.Col + uint32(m.Len),
				Style:    searchStyle,
			})
		}
		lines = append(lines, line)
	}

	return TextAreaProps{FirstRow: lineRange.First, Lines: lines}
}

func pullStatusLine(r *reactor.Reactor, mode state.Mode) StatusLineProps {
	s := r.State()
	props := StatusLineProps{
		Mode:         mode.Kind.String(),
		Path:         s.Path,
		CursorLine:   s.Cursor.Row + 1,
		CursorColumn: s.Cursor.Col + 1,
	}
	switch mode.Kind {
	case state.ModeCmdLine:
		props.CmdBuffer = mode.CmdBuffer
	case state.ModeNormal:
		props.CmdBuffer = mode.CmdBuffer
	case state.ModeSearch:
		props.SearchPattern = s.SearchPattern
		if s.SearchDirection == state.SearchBackward {
			props.SearchPrefix = '?'
		} else {
			props.SearchPrefix = '/'
		}
	}
	return props
}
