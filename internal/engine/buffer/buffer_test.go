package buffer

import (
	"errors"
	"testing"

	"github.com/dshills/keystorm/internal/engine/position"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.CountLines() != 1 {
		t.Errorf("expected 1 line, got %d", b.CountLines())
	}
}

func TestCountLinesTrailingNewline(t *testing.T) {
	cases := []struct {
		text string
		want uint32
	}{
		{"\n", 1},
		{"abc", 1},
		{"abc\ndef", 2},
		{"abc\ndef\n", 2},
		{"", 1},
	}
	for _, c := range cases {
		b := NewBufferFromString(c.text)
		if got := b.CountLines(); got != c.want {
			t.Errorf("CountLines(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestRowLenExcludesTerminator(t *testing.T) {
	b := NewBufferFromString("foo\nbarbaz\n")
	if rl, err := b.RowLen(0); err != nil || rl != 3 {
		t.Errorf("RowLen(0) = %d, %v, want 3, nil", rl, err)
	}
	if rl, err := b.RowLen(1); err != nil || rl != 6 {
		t.Errorf("RowLen(1) = %d, %v, want 6, nil", rl, err)
	}
	if _, err := b.RowLen(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("RowLen(2) err = %v, want ErrOutOfRange", err)
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	b := NewBufferFromString("foo\nbarbaz\nqux")
	for offset := CharOffset(0); offset <= b.Len(); offset++ {
		pos, err := b.Position(offset)
		if err != nil {
			t.Fatalf("Position(%d): %v", offset, err)
		}
		got, err := b.Offset(pos)
		if err != nil {
			t.Fatalf("Offset(%v): %v", pos, err)
		}
		if got != offset {
			t.Errorf("round trip offset %d -> %v -> %d", offset, pos, got)
		}
	}
}

func TestOffsetOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc\n")
	if _, err := b.Offset(position.Position{Row: 5, Col: 0}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for row out of bounds, got %v", err)
	}
	if _, err := b.Offset(position.Position{Row: 0, Col: 99}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for col out of bounds, got %v", err)
	}
}

func TestInsertRemoveUnicode(t *testing.T) {
	b := NewBufferFromString("héllo\n")

	if err := b.Insert(1, "ü"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := b.Text(); got != "hüéllo\n" {
		t.Fatalf("got %q", got)
	}

	removed, err := b.Remove(Range{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed != "üé" {
		t.Errorf("removed = %q, want %q", removed, "üé")
	}
	if got := b.Text(); got != "hllo\n" {
		t.Errorf("got %q", got)
	}
}

func TestSlice(t *testing.T) {
	b := NewBufferFromString("hello world\n")
	s, err := b.Slice(Range{Start: 6, End: 11})
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if s.String() != "world" {
		t.Errorf("slice = %q, want %q", s.String(), "world")
	}
}

func TestCountForwardWord(t *testing.T) {
	b := NewBufferFromString("foo bar.baz\n")
	n, err := b.CountForwardWord(0)
	if err != nil {
		t.Fatalf("CountForwardWord: %v", err)
	}
	if n != 4 { // "foo " -> stop at "bar"
		t.Errorf("CountForwardWord(0) = %d, want 4", n)
	}

	n, err = b.CountForwardWord(4) // at "bar"
	if err != nil {
		t.Fatalf("CountForwardWord: %v", err)
	}
	if n != 3 { // "bar" -> stop at "."
		t.Errorf("CountForwardWord(4) = %d, want 3", n)
	}
}

func TestCountBackWord(t *testing.T) {
	b := NewBufferFromString("foo bar baz\n")
	n, err := b.CountBackWord(11)
	if err != nil {
		t.Fatalf("CountBackWord: %v", err)
	}
	if n != 3 { // back over "baz"
		t.Errorf("CountBackWord(11) = %d, want 3", n)
	}
}

func TestCurrentLineIndentHead(t *testing.T) {
	b := NewBufferFromString("   indented\nflush\n")
	col, err := b.CurrentLineIndentHead(0)
	if err != nil {
		t.Fatalf("CurrentLineIndentHead: %v", err)
	}
	if col != 3 {
		t.Errorf("CurrentLineIndentHead(0) = %d, want 3", col)
	}
	col, err = b.CurrentLineIndentHead(1)
	if err != nil {
		t.Fatalf("CurrentLineIndentHead: %v", err)
	}
	if col != 0 {
		t.Errorf("CurrentLineIndentHead(1) = %d, want 0", col)
	}
}

func TestSnapshotIndependentOfMutation(t *testing.T) {
	b := NewBufferFromString("abc\n")
	snap := b.Snapshot()

	if err := b.Insert(0, "xyz"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if snap.Text() != "abc\n" {
		t.Errorf("snapshot mutated: got %q", snap.Text())
	}
	if b.Text() != "xyzabc\n" {
		t.Errorf("buffer not mutated: got %q", b.Text())
	}
}
