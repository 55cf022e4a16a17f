package state

import (
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/position"
)

// SearchDirection records which way a navigation action should search.
type SearchDirection uint8

const (
	SearchForward SearchDirection = iota
	SearchBackward
)

// State is the document+cursor+mode+yank+search aggregate the Store owns
// exclusively (spec §3). It is intentionally a flat value-ish struct: the
// Buffer pointer is the one piece of reference semantics, since its rope is
// immutable-by-value and mutation always goes through Buffer's own methods.
type State struct {
	Path       string
	RowOffset  uint32
	Cursor     position.Position
	MaxColumn  uint32
	Mode       Mode
	Yanked     string
	TermWidth  uint32
	TermHeight uint32
	Buffer     *buffer.Buffer

	PrevEdit *PrevEdit

	SearchPattern   string
	SearchDirection SearchDirection
}

// New returns the initial State: an empty one-line buffer, cursor at
// origin, Normal mode, per spec §8's "initial `\n` buffer" premise.
func New() State {
	return State{
		Mode:   NewNormalMode(),
		Buffer: buffer.NewBufferFromString("\n"),
	}
}

// Clone returns a State with its own independent Buffer value (ropes are
// immutable so the clone shares no mutable state with the original once
// either buffer is edited through a copy-on-write Insert/Remove). Used by
// the Reactor to hold a frame-local snapshot and by History to save a
// pristine copy before a structural edit.
func (s State) Clone() State {
	c := s
	if s.Buffer != nil {
		snap := s.Buffer.Snapshot()
		c.Buffer = buffer.NewBufferFromString(snap.Text(), buffer.WithLineEnding(s.Buffer.LineEnding()), buffer.WithTabWidth(s.Buffer.TabWidth()))
	}
	return c
}

// TextAreaRows is the number of terminal rows available for buffer text,
// i.e. total rows minus the status and command lines (spec glossary).
func (s State) TextAreaRows() uint32 {
	if s.TermHeight < 2 {
		return 0
	}
	return s.TermHeight - 2
}
