package state

import (
	"testing"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
)

func newStateWithText(text string) State {
	s := New()
	s.Buffer = buffer.NewBufferFromString(text)
	return s
}

func TestMeasureSelectionForwardWord(t *testing.T) {
	s := newStateWithText("foo bar baz\n")
	s.Cursor = position.Position{Row: 0, Col: 0}

	r, err := MeasureSelection(s, position.NewSelection(position.ForwardWord, 1))
	if err != nil {
		t.Fatalf("MeasureSelection: %v", err)
	}
	if r.Start != 0 || r.End != 4 {
		t.Errorf("range = %+v, want [0,4)", r)
	}
}

func TestMeasureSelectionLine(t *testing.T) {
	s := newStateWithText("aaa\nbbb\nccc\n")
	s.Cursor = position.Position{Row: 0, Col: 1}

	r, err := MeasureSelection(s, position.NewSelection(position.Line, 2))
	if err != nil {
		t.Fatalf("MeasureSelection: %v", err)
	}
	// rows 0-1 inclusive of terminators: "aaa\nbbb\n" = 8 chars
	if r.Start != 0 || r.End != 8 {
		t.Errorf("range = %+v, want [0,8)", r)
	}
}

func TestMeasureSelectionLineRemain(t *testing.T) {
	s := newStateWithText("hello world\n")
	s.Cursor = position.Position{Row: 0, Col: 6}

	r, err := MeasureSelection(s, position.NewSelection(position.LineRemain, 1))
	if err != nil {
		t.Fatalf("MeasureSelection: %v", err)
	}
	if r.Start != 6 || r.End != 11 {
		t.Errorf("range = %+v, want [6,11)", r)
	}
}

func TestMeasureSelectionWord(t *testing.T) {
	s := newStateWithText("foo bar baz\n")
	s.Cursor = position.Position{Row: 0, Col: 5} // inside "bar"

	r, err := MeasureSelection(s, position.NewSelection(position.Word, 1))
	if err != nil {
		t.Fatalf("MeasureSelection: %v", err)
	}
	if r.Start != 4 || r.End != 7 {
		t.Errorf("range = %+v, want [4,7) (bar)", r)
	}
}

func TestMeasureSelectionDirectionalUnimplemented(t *testing.T) {
	s := newStateWithText("abc\n")
	_, err := MeasureSelection(s, position.NewSelection(position.Left, 1))
	if err != position.ErrUnimplemented {
		t.Errorf("err = %v, want ErrUnimplemented", err)
	}
}
