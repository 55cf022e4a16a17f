package state

import "github.com/dshills/keystorm/internal/engine/position"

// MovementKind enumerates the cursor-changing operations (spec §4.4).
type MovementKind uint8

const (
	MoveLeft MovementKind = iota
	MoveDown
	MoveUp
	MoveRight
	MoveLineHead
	MoveLineTail
	MoveIndentHead
	MoveForwardWord
	MoveBackWord
	MoveLine       // jump to row N, N (1-based) carried in Action.Count
	MoveTail       // last row
	MoveScreenUp
	MoveScreenDown
	MoveTo         // jump to an absolute character offset
	MoveAsSeenOnView
	MoveNextMatch
	MovePrevMatch
)

func (m MovementKind) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveDown:
		return "down"
	case MoveUp:
		return "up"
	case MoveRight:
		return "right"
	case MoveLineHead:
		return "line-head"
	case MoveLineTail:
		return "line-tail"
	case MoveIndentHead:
		return "indent-head"
	case MoveForwardWord:
		return "forward-word"
	case MoveBackWord:
		return "back-word"
	case MoveLine:
		return "line"
	case MoveTail:
		return "tail"
	case MoveScreenUp:
		return "screen-up"
	case MoveScreenDown:
		return "screen-down"
	case MoveTo:
		return "move-to"
	case MoveAsSeenOnView:
		return "as-seen-on-view"
	case MoveNextMatch:
		return "next-match"
	case MovePrevMatch:
		return "prev-match"
	default:
		return "unknown"
	}
}

// EditKind enumerates the structural buffer mutations (spec §4.5).
type EditKind uint8

const (
	EditLineBreak EditKind = iota
	EditInsertChar
	EditRemoveChar
	EditRemoveSelection
	EditAppendYank
	EditInsertYank
	EditInsertString
	EditEdit
)

func (e EditKind) String() string {
	switch e {
	case EditLineBreak:
		return "line-break"
	case EditInsertChar:
		return "insert-char"
	case EditRemoveChar:
		return "remove-char"
	case EditRemoveSelection:
		return "remove-selection"
	case EditAppendYank:
		return "append-yank"
	case EditInsertYank:
		return "insert-yank"
	case EditInsertString:
		return "insert-string"
	case EditEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Edit is a fully-parameterized EditKind ready for dispatch: the fields
// relevant to Kind are populated, the rest left zero.
type Edit struct {
	Kind EditKind

	Char      rune               // EditInsertChar
	Selection position.Selection // EditRemoveSelection, EditEdit
	Pre       *MovementKind      // EditInsertString's optional_pre_motion
	Text      string             // EditInsertString, EditEdit
}

// PrevEdit captures the last structural edit for the dot-repeat Action,
// per spec §3's State.prev_edit field.
type PrevEdit struct {
	Edit  Edit
	Count int
}

// ActionKind enumerates the non-movement, non-edit Actions (spec §4.6).
type ActionKind uint8

const (
	ActionIntoNormalMode ActionKind = iota
	ActionIntoInsertMode
	ActionIntoAppendMode
	ActionIntoEditMode
	ActionIntoCmdLineMode
	ActionIntoSearchMode
	ActionSetYank
	ActionPushCmd
	ActionPushCmdStr
	ActionPopCmd
	ActionClearCmd
	ActionYank
	ActionRepeat
	ActionSave
	ActionWriteOut
	ActionQuit
	ActionGetState
	ActionUndo
	ActionRedo
	ActionPushSearch
	ActionPopSearch
	ActionClearSearch
)

func (a ActionKind) String() string {
	switch a {
	case ActionIntoNormalMode:
		return "into-normal-mode"
	case ActionIntoInsertMode:
		return "into-insert-mode"
	case ActionIntoAppendMode:
		return "into-append-mode"
	case ActionIntoEditMode:
		return "into-edit-mode"
	case ActionIntoCmdLineMode:
		return "into-cmdline-mode"
	case ActionIntoSearchMode:
		return "into-search-mode"
	case ActionSetYank:
		return "set-yank"
	case ActionPushCmd:
		return "push-cmd"
	case ActionPushCmdStr:
		return "push-cmd-str"
	case ActionPopCmd:
		return "pop-cmd"
	case ActionClearCmd:
		return "clear-cmd"
	case ActionYank:
		return "yank"
	case ActionRepeat:
		return "repeat"
	case ActionSave:
		return "save"
	case ActionWriteOut:
		return "write-out"
	case ActionQuit:
		return "quit"
	case ActionGetState:
		return "get-state"
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	case ActionPushSearch:
		return "push-search"
	case ActionPopSearch:
		return "pop-search"
	case ActionClearSearch:
		return "clear-search"
	default:
		return "unknown"
	}
}

// Action is a fully-parameterized ActionKind as it arrives on the Store's
// input channel.
type Action struct {
	Kind ActionKind

	Movement  *MovementKind
	Edit      *Edit
	Selection *position.Selection
	Text      string // SetYank(s), PushCmdStr(s), WriteOut(path)
	Char      rune   // PushCmd(c), PushSearch(c)
	Count     int    // repetition count
	Target    uint64 // MoveTo(offset)'s character offset; MoveLine reads its 1-based row from Count
	Reply     chan<- State // GetState(reply)
}
