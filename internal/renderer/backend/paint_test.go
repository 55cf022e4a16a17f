package backend

import (
	"testing"

	"github.com/dshills/keystorm/internal/renderer"
)

func TestPaintWritesTextAndGutter(t *testing.T) {
	b := NewNullBackend(20, 5)
	b.Init()

	textArea := renderer.TextAreaProps{
		FirstRow: 0,
		Lines: []renderer.VisibleLine{
			{Row: 0, Text: "hello"},
			{Row: 1, Text: "world"},
		},
	}
	gutter := renderer.LineNumberProps{FirstRow: 0, LastRow: 1, LineCount: 2, Width: 1}
	cursor := renderer.CursorProps{Row: 1, Col: 2, Visible: true}
	status := renderer.StatusLineProps{Mode: "normal", Path: "/tmp/x", CursorLine: 2, CursorColumn: 3}

	Paint(b, textArea, gutter, cursor, status)

	if got := b.GetCell(2, 0).Rune; got != 'h' {
		t.Errorf("expected 'h' at (2,0), got %q", got)
	}
	if got := b.GetCell(2, 1).Rune; got != 'w' {
		t.Errorf("expected 'w' at (2,1), got %q", got)
	}

	x, y, visible := b.CursorPosition()
	if !visible || x != 2+2 || y != 1 {
		t.Errorf("cursor = (%d, %d, %v), want (4, 1, true)", x, y, visible)
	}
}

func TestPaintFillsPastEndOfBufferWithTilde(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	textArea := renderer.TextAreaProps{
		FirstRow: 0,
		Lines:    []renderer.VisibleLine{{Row: 0, Text: "x"}},
	}
	gutter := renderer.LineNumberProps{FirstRow: 0, LastRow: 0, LineCount: 1, Width: 1}

	Paint(b, textArea, gutter, renderer.CursorProps{}, renderer.StatusLineProps{})

	if got := b.GetCell(0, 1).Rune; got != '~' {
		t.Errorf("expected '~' on the empty row below the buffer, got %q", got)
	}
}

func TestPaintCommandLineShowsSearchPrompt(t *testing.T) {
	b := NewNullBackend(20, 5)
	b.Init()

	status := renderer.StatusLineProps{SearchPrefix: '/', SearchPattern: "foo"}
	Paint(b, renderer.TextAreaProps{}, renderer.LineNumberProps{}, renderer.CursorProps{}, status)

	if got := b.GetCell(0, 4).Rune; got != '/' {
		t.Errorf("expected '/' at start of command line, got %q", got)
	}
	if got := b.GetCell(1, 4).Rune; got != 'f' {
		t.Errorf("expected 'f' after prompt, got %q", got)
	}
}
