package dispatcher

import (
	"sync"

	"github.com/dshills/keystorm/internal/engine/highlight"
	"github.com/dshills/keystorm/internal/engine/history"
	"github.com/dshills/keystorm/internal/engine/reactor"
	"github.com/dshills/keystorm/internal/engine/state"
)

// Persist writes text to path, the single seam Save/WriteOut call through
// (spec §6 "Persisted state"). The concrete implementation (plain file
// write, or the filestore package's sidecar-aware write) is supplied by
// the caller so this package stays free of I/O policy.
type Persist func(path, text string) error

// Store is the single owner of State, History, and the Highlighter (spec
// §5). It consumes one Action at a time; there is no internal concurrency,
// but the mutex guards Snapshot/GetState being called from a different
// goroutine than the event loop.
type Store struct {
	mu sync.Mutex

	state       state.State
	history     *history.History
	highlighter *highlight.Highlighter
	reactor     *reactor.Reactor

	persist Persist
}

// Option configures a Store at construction.
type Option func(*Store)

// WithPersist sets how Save/WriteOut write text to disk. Without it,
// WriteOut (and Save with a path set) writes nothing, leaves State.Path
// unchanged and returns nil.
func WithPersist(p Persist) Option {
	return func(s *Store) { s.persist = p }
}

// WithHighlighter attaches a pre-configured Highlighter (e.g. with a
// grammar/query already wired via highlight.WithLanguage).
func WithHighlighter(h *highlight.Highlighter) Option {
	return func(s *Store) { s.highlighter = h }
}

// New returns a Store initialized with the given State (see state.New for
// the spec §8 "initial \n buffer" default).
func New(initial state.State, opts ...Option) *Store {
	s := &Store{
		state:       initial,
		history:     history.New(),
		highlighter: highlight.New(),
		reactor:     reactor.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reactor.LoadState(s.state)
	return s
}

// Reactor returns the Store's Reactor, the renderer's sole read path into
// derived state (spec §4.3).
func (s *Store) Reactor() *reactor.Reactor {
	return s.reactor
}

// Highlighter returns the Store's Highlighter.
func (s *Store) Highlighter() *highlight.Highlighter {
	return s.highlighter
}

// Snapshot returns a copy of the current State. This is the synchronous
// convenience SPEC_FULL adds over GetState's reply-channel form (see
// SPEC_FULL §4 item 3); Dispatch(Action{Kind: ActionGetState}) with a
// caller-supplied channel remains the lower-level primitive spec §4.6
// names directly.
func (s *Store) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resize updates the terminal dimensions State carries for viewport and
// status-line geometry (spec §5 "external resize events"), then reloads
// the Reactor so derived frames reflect the new size. Resize is not an
// Action: it originates from the backend's own resize notifications, not
// from the keystroke/cmdline grammar, and carries no undo/history weight.
func (s *Store) Resize(width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TermWidth = width
	s.state.TermHeight = height
	s.reactor.LoadState(s.state)
}

// Dispatch applies a single Action to State, then runs the post-dispatch
// coercion pass (spec §4.7) and reloads the Reactor with the resulting
// State. Actions observe strict FIFO order from whatever channel feeds
// the caller's event loop (spec §5); Dispatch itself performs no
// suspension, so callers must not call it concurrently from two
// goroutines without external synchronization (the mutex here only
// protects Snapshot/GetState readers from racing a single dispatching
// goroutine).
func (s *Store) Dispatch(a state.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.dispatch(a)
	s.coerce()
	s.reactor.LoadState(s.state)
	return err
}

func (s *Store) dispatch(a state.Action) error {
	count := a.Count
	if count <= 0 {
		count = 1
	}

	if a.Movement != nil {
		return s.applyMovement(*a.Movement, count, a.Target)
	}
	if a.Edit != nil {
		return s.applyEdit(*a.Edit, count)
	}

	switch a.Kind {
	case state.ActionIntoNormalMode:
		return s.intoNormalMode()
	case state.ActionIntoInsertMode:
		return s.intoInsertMode(nil)
	case state.ActionIntoAppendMode:
		return s.intoAppendMode()
	case state.ActionIntoEditMode:
		if a.Selection == nil {
			return ErrNoSelection
		}
		return s.intoEditMode(*a.Selection)
	case state.ActionIntoCmdLineMode:
		s.state.Mode = state.NewCmdLineMode()
		return nil
	case state.ActionIntoSearchMode:
		s.state.SearchPattern = ""
		if a.Char == '?' {
			s.state.SearchDirection = state.SearchBackward
		} else {
			s.state.SearchDirection = state.SearchForward
		}
		s.state.Mode = state.NewSearchMode()
		return nil
	case state.ActionSetYank:
		s.state.Yanked = a.Text
		return nil
	case state.ActionPushCmd:
		s.pushCmd(a.Char)
		return nil
	case state.ActionPushCmdStr:
		s.pushCmdStr(a.Text)
		return nil
	case state.ActionPopCmd:
		s.popCmd()
		return nil
	case state.ActionClearCmd:
		s.clearCmd()
		return nil
	case state.ActionYank:
		if a.Selection == nil {
			return ErrNoSelection
		}
		return s.yank(*a.Selection)
	case state.ActionRepeat:
		return s.repeat()
	case state.ActionSave:
		return s.save()
	case state.ActionWriteOut:
		return s.writeOut(a.Text)
	case state.ActionQuit:
		return ErrQuit
	case state.ActionGetState:
		if a.Reply != nil {
			a.Reply <- s.state
		}
		return nil
	case state.ActionUndo:
		s.undo(count)
		return nil
	case state.ActionRedo:
		s.redo(count)
		return nil
	case state.ActionPushSearch:
		s.state.SearchPattern += string(a.Char)
		return nil
	case state.ActionPopSearch:
		if n := len(s.state.SearchPattern); n > 0 {
			s.state.SearchPattern = s.state.SearchPattern[:n-1]
		}
		return nil
	case state.ActionClearSearch:
		s.state.SearchPattern = ""
		return nil
	default:
		return nil
	}
}

func (s *Store) pushCmd(c rune) {
	m := &s.state.Mode
	switch m.Kind {
	case state.ModeNormal, state.ModeCmdLine:
		m.CmdBuffer += string(c)
	}
}

func (s *Store) pushCmdStr(str string) {
	m := &s.state.Mode
	switch m.Kind {
	case state.ModeNormal, state.ModeCmdLine:
		m.CmdBuffer += str
	}
}

func (s *Store) popCmd() {
	m := &s.state.Mode
	switch m.Kind {
	case state.ModeNormal, state.ModeCmdLine:
		if n := len(m.CmdBuffer); n > 0 {
			m.CmdBuffer = m.CmdBuffer[:n-1]
		}
	}
}

func (s *Store) clearCmd() {
	m := &s.state.Mode
	switch m.Kind {
	case state.ModeNormal, state.ModeCmdLine:
		m.CmdBuffer = ""
	}
}
