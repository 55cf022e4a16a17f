package state

import "github.com/dshills/keystorm/internal/engine/position"

// ModeKind discriminates the tagged Mode variant.
type ModeKind uint8

const (
	ModeNormal ModeKind = iota
	ModeInsert
	ModeCmdLine
	ModeSearch
)

func (m ModeKind) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeCmdLine:
		return "cmdline"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// InsertKind discriminates Mode::Insert's payload: either a plain insert
// that started with an optional prefix motion, or an edit that replaces a selection (e.g. 'c' consumes a motion first).
type InsertKind uint8

const (
	// InsertKindPlain is Insert(optional_prefix_motion).
	InsertKindPlain InsertKind = iota
	// InsertKindEdit is Edit(selection): the selection was already removed
	// before entering Insert, and staged text replaces it on leave.
	InsertKindEdit
)

func (k InsertKind) String() string {
	if k == InsertKindEdit {
		return "edit"
	}
	return "plain"
}

// Mode is the tagged variant Normal(cmd_buffer) | Insert(InsertKind,
// staged_string) | CmdLine(cmd_buffer) | Search. Only the fields relevant
// to Kind are meaningful; the others are zero.
type Mode struct {
	Kind ModeKind

	// CmdBuffer holds the accumulated keystrokes for Normal and CmdLine.
	CmdBuffer string

	// Insert is only meaningful when Kind == ModeInsert.
	Insert InsertKind
	// PrefixMotion is set when Insert == InsertKindPlain and the insert
	// was entered via a motion-consuming command (e.g. IntoAppendMode's
	// implicit Right step is applied separately; this field records a
	// motion performed before entering, for InsertString(Some(m), s)).
	PrefixMotion *MovementKind
	// EditSelection is set when Insert == InsertKindEdit: the selection
	// that was resolved and removed to enter this edit.
	EditSelection *position.Selection
	// Staged accumulates insert-mode keystrokes so leaving Insert can
	// synthesize a single InsertString/Edit EditKind for prev_edit.
	Staged string
}

// NewNormalMode returns an empty Normal mode.
func NewNormalMode() Mode { return Mode{Kind: ModeNormal} }

// NewInsertMode returns an Insert mode with the given prefix motion
// (nil if none) and an empty staged string.
func NewInsertMode(prefix *MovementKind) Mode {
	return Mode{Kind: ModeInsert, Insert: InsertKindPlain, PrefixMotion: prefix}
}

// NewEditMode returns an Insert mode started by removing sel.
func NewEditMode(sel position.Selection) Mode {
	return Mode{Kind: ModeInsert, Insert: InsertKindEdit, EditSelection: &sel}
}

// NewCmdLineMode returns an empty CmdLine mode.
func NewCmdLineMode() Mode { return Mode{Kind: ModeCmdLine} }

// NewSearchMode returns Search mode.
func NewSearchMode() Mode { return Mode{Kind: ModeSearch} }
