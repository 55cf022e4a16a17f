package renderer

import (
	"context"
	"testing"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/reactor"
	"github.com/dshills/keystorm/internal/engine/state"
)

func newTestReactor(text string) *reactor.Reactor {
	r := reactor.New()
	s := state.New()
	s.Buffer = buffer.NewBufferFromString(text)
	s.TermHeight = 10
	s.TermWidth = 40
	s.Path = "/tmp/example.go"
	s.Cursor = position.Position{Row: 1, Col: 2}
	r.LoadState(s)
	return r
}

func TestPullTextAreaReturnsVisibleLines(t *testing.T) {
	r := newTestReactor("package main\n\nfunc main() {}\n")

	textArea, gutter, cursor, status := Pull(context.Background(), r, nil, nil)

	if len(textArea.Lines) == 0 {
		t.Fatal("expected at least one visible line")
	}
	if textArea.Lines[0].Row != textArea.FirstRow {
		t.Errorf("first visible line row = %d, want %d", textArea.Lines[0].Row, textArea.FirstRow)
	}
	if gutter.LineCount == 0 {
		t.Error("expected a non-zero line count")
	}
	if cursor.Row != 1 || cursor.Col != 2 {
		t.Errorf("cursor = (%d, %d), want (1, 2)", cursor.Row, cursor.Col)
	}
	if status.Mode != "normal" {
		t.Errorf("status.Mode = %q, want %q", status.Mode, "normal")
	}
	if status.Path != "/tmp/example.go" {
		t.Errorf("status.Path = %q, want %q", status.Path, "/tmp/example.go")
	}
	if status.CursorLine != 2 || status.CursorColumn != 3 {
		t.Errorf("status cursor = (%d, %d), want (2, 3)", status.CursorLine, status.CursorColumn)
	}
}

func TestPullSearchModeSetsStatusPrefix(t *testing.T) {
	r := newTestReactor("hello world\nhello again\n")
	s := r.State()
	s.Mode = state.NewSearchMode()
	s.SearchPattern = "hello"
	s.SearchDirection = state.SearchBackward
	r.LoadState(s)

	_, _, _, status := Pull(context.Background(), r, nil, nil)

	if status.SearchPrefix != '?' {
		t.Errorf("SearchPrefix = %q, want '?'", status.SearchPrefix)
	}
	if status.SearchPattern != "hello" {
		t.Errorf("SearchPattern = %q, want %q", status.SearchPattern, "hello")
	}
}

func TestPullNilHighlighterProducesNoSyntaxSpans(t *testing.T) {
	r := newTestReactor("x := 1\n")
	textArea, _, _, _ := Pull(context.Background(), r, nil, nil)

	for _, line := range textArea.Lines {
		if len(line.Spans) != 0 {
			t.Errorf("line %d: expected no spans with a nil highlighter, got %d", line.Row, len(line.Spans))
		}
	}
}
