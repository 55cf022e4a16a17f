package history

import "github.com/dshills/keystorm/internal/engine/position"

// Record is a snapshot pushed onto the undo/redo stacks: the buffer state,
// the cursor position, and the Highlighter's parse tree at that point.
// Tree is opaque (any) so this package does not depend on the concrete
// parse-tree type the highlight package owns.
type Record struct {
	Buffer BufferState
	Cursor position.Position
	Tree   any
}

// BufferState is the minimal buffer snapshot a Record needs to restore:
// the full text. The dispatcher rebuilds a buffer.Buffer from it on undo.
type BufferState struct {
	Text string
}

// History holds the back (undoable) and forward (redoable) stacks. Push
// clears forward, per spec §3.
type History struct {
	back    []Record
	forward []Record
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Push records cur onto the back stack and clears the forward stack.
func (h *History) Push(cur Record) {
	h.back = append(h.back, cur)
	h.forward = h.forward[:0]
}

// Undo pops up to count records from back, returning the final one. current
// is the caller's live state immediately before the undo, saved onto
// forward first so Redo can walk back through every intermediate step.
// Returns ok=false if back was already empty (a no-op per spec §4.6).
func (h *History) Undo(current Record, count int) (Record, bool) {
	return h.step(current, count, &h.back, &h.forward)
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Record, count int) (Record, bool) {
	return h.step(current, count, &h.forward, &h.back)
}

func (h *History) step(current Record, count int, from, to *[]Record) (Record, bool) {
	if len(*from) == 0 {
		return Record{}, false
	}
	*to = append(*to, current)

	var result Record
	ok := false
	for i := 0; i < count; i++ {
		n := len(*from)
		if n == 0 {
			break
		}
		rec := (*from)[n-1]
		*from = (*from)[:n-1]
		if i < count-1 {
			*to = append(*to, rec)
		}
		result = rec
		ok = true
	}
	return result, ok
}

// BackLen returns the number of undoable records.
func (h *History) BackLen() int { return len(h.back) }

// ForwardLen returns the number of redoable records.
func (h *History) ForwardLen() int { return len(h.forward) }
