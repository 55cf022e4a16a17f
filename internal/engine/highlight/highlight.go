package highlight

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/reactor"
)

// Edit is the byte-range edit descriptor of a buffer mutation, with offsets
// taken from the text as it was before the mutation (spec §4.5 step 3, §4.8, §9's back-reference note). Row
// and column points are intentionally left zero: the spec explicitly
// chooses to let the re-parse work from Buffer's own bytes rather than
// carry tree-sitter Point bookkeeping through the Store.
type Edit struct {
	StartByte  uint32
	OldEndByte uint32
	NewEndByte uint32
}

// Span is one anchored highlight capture within the visible range,
// spec §4.8's "(anchor_point, styled_string)" pair expressed so the
// renderer resolves Name to a concrete style (see internal/renderer/style).
type Span struct {
	Anchor position.Position
	Length int
	Name   string // tree-sitter capture name, e.g. "keyword", "string", "comment"
}

// Highlighter owns an incrementally maintained parse tree (spec §4.8).
// A zero-value Highlighter with no Language set degrades to producing no
// spans from Update, mirroring search's "invalid pattern -> empty list"
// posture (spec §7 RegexError).
type Highlighter struct {
	mu sync.Mutex

	parser   *sitter.Parser
	language *sitter.Language
	query    *sitter.Query
	tree     *sitter.Tree

	pendingEdits []Edit
}

// Option configures a Highlighter at construction.
type Option func(*Highlighter)

// WithLanguage sets the tree-sitter grammar. Without one, Update never
// produces spans (spec §1: concrete grammar files are an external
// concern; the core only maintains the mechanism).
func WithLanguage(lang *sitter.Language) Option {
	return func(h *Highlighter) { h.language = lang }
}

// WithQuery sets the capture query run against the parse tree to produce
// spans. Required alongside WithLanguage for Update to return anything.
func WithQuery(q *sitter.Query) Option {
	return func(h *Highlighter) { h.query = q }
}

// New returns a Highlighter ready to track edits. Pass WithLanguage (and
// WithQuery) to get actual spans from Update; without a language edits
// are still tracked (for History round-trips) but produce nothing.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{parser: sitter.NewParser()}
	for _, opt := range opts {
		opt(h)
	}
	if h.language != nil {
		h.parser.SetLanguage(h.language)
	}
	return h
}

// EditTree records a byte-range edit to replay against the held tree on
// the next re-parse. The offsets are those of the text before the
// corresponding Buffer mutation: the dispatcher computes them first,
// mutates the Buffer, then calls EditTree (spec §9's back-reference note).
func (h *Highlighter) EditTree(e Edit) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingEdits = append(h.pendingEdits, e)
	if h.tree != nil {
		h.tree.Edit(sitter.EditInput{
			StartIndex:  e.StartByte,
			OldEndIndex: e.OldEndByte,
			NewEndIndex: e.NewEndByte,
		})
	}
}

// Tree returns the currently held parse tree, or nil if none has been
// parsed yet. Used by History to snapshot state before an edit.
func (h *Highlighter) Tree() *sitter.Tree {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree
}

// SetTree restores a previously snapshotted tree, used by Undo/Redo.
func (h *Highlighter) SetTree(t *sitter.Tree) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree = t
	h.pendingEdits = h.pendingEdits[:0]
}

// Update re-parses the tree against the current buffer (reusing the
// unaffected subtrees via the edits recorded since the last call), then
// runs the capture query across the visible LineRange, pruning matches
// that fall outside it. Returns ErrNoLanguage (not a fatal condition) if
// no grammar is configured.
func (h *Highlighter) Update(ctx context.Context, r *reactor.Reactor) ([]Span, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.language == nil {
		return nil, ErrNoLanguage
	}

	snap := reactor.Get[reactor.Buffer](r).Snapshot
	if snap == nil {
		return nil, nil
	}
	source := []byte(snap.Text())

	tree, err := h.parser.ParseCtx(ctx, h.tree, source)
	if err != nil {
		return nil, err
	}
	h.tree = tree
	h.pendingEdits = h.pendingEdits[:0]

	if h.query == nil {
		return nil, nil
	}

	view := reactor.Get[reactor.LineRange](r)

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	var spans []Span
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			start := c.Node.StartPoint()
			if start.Row < view.First || start.Row > view.Last {
				continue
			}
			end := c.Node.EndByte()
			begin := c.Node.StartByte()
			length := int(end - begin)
			name := h.query.CaptureNameForId(c.Index)
			spans = append(spans, Span{
				Anchor: position.Position{Row: start.Row, Col: start.Column},
				Length: length,
				Name:   name,
			})
		}
	}
	return spans, nil
}

// RestoreTree accepts whatever Tree previously returned (typically boxed
// in a history.Record as `any`) and restores it if it really is a
// *sitter.Tree, otherwise it is a no-op. This lets callers like the
// dispatcher's undo/redo carry trees through history without importing
// the tree-sitter package themselves.
func (h *Highlighter) RestoreTree(t any) {
	tree, _ := t.(*sitter.Tree)
	h.SetTree(tree)
}

// Close releases the parser's native resources.
func (h *Highlighter) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.parser != nil {
		h.parser.Close()
	}
	if h.tree != nil {
		h.tree.Close()
	}
}
