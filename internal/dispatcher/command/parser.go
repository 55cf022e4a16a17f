package command

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/state"
	"github.com/dshills/keystorm/internal/input/key"
)

// Parser accumulates the keystrokes of a not-yet-complete normal-mode
// command (an optional count prefix, a pending operator, a pending "g").
// It carries no knowledge of Buffer or Cursor; every decision that needs
// them is left to the Store once the Action is dispatched.
type Parser struct {
	count    string
	operator rune
	pendingG bool
}

// New returns a Parser with no pending keystrokes.
func New() *Parser {
	return &Parser{}
}

// Reset discards any partially entered command, used when a mode switch
// (e.g. Escape) should not leave stale state for the next command.
func (p *Parser) Reset() {
	p.count = ""
	p.operator = 0
	p.pendingG = false
}

// Translate routes ev to the handler for mode's kind and returns the
// Actions it produces, in order.
func (p *Parser) Translate(ev key.Event, mode state.Mode) ([]state.Action, error) {
	switch mode.Kind {
	case state.ModeInsert:
		return p.Insert(ev)
	case state.ModeCmdLine:
		return p.CmdLine(ev, mode.CmdBuffer)
	case state.ModeSearch:
		return p.Search(ev)
	default:
		return p.Normal(ev)
	}
}

func (p *Parser) takeCount() int {
	if p.count == "" {
		return 1
	}
	n, err := strconv.Atoi(p.count)
	p.count = ""
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func movement(kind state.MovementKind, count int) []state.Action {
	k := kind
	return []state.Action{{Movement: &k, Count: count}}
}

func editAction(e state.Edit, count int) []state.Action {
	return []state.Action{{Edit: &e, Count: count}}
}

func kindOf(kind state.ActionKind, count int) []state.Action {
	return []state.Action{{Kind: kind, Count: count}}
}

// Normal translates one keystroke of normal-mode input (spec §4.6). A
// count prefix (digits, leading zero excluded) accumulates across calls
// and is consumed by the motion, operator, or shorthand that follows it;
// an operator ('d', 'c', 'y') also accumulates until either its own
// letter (the "whole line" doubled form: dd, cc, yy) or a motion letter
// recognized by position.KindFromLetter completes it. A count typed
// between the operator and its motion (vim's "d2w") is not supported;
// the count must precede the operator.
func (p *Parser) Normal(ev key.Event) ([]state.Action, error) {
	if ev.Key == key.KeyRune && unicode.IsDigit(ev.Rune) {
		if ev.Rune != '0' || p.count != "" {
			p.count += string(ev.Rune)
			return nil, nil
		}
	}

	if ev.Key == key.KeyEscape {
		p.Reset()
		return kindOf(state.ActionIntoNormalMode, 1), nil
	}

	if p.pendingG {
		p.pendingG = false
		if ev.Key == key.KeyRune && ev.Rune == 'g' {
			return movement(state.MoveLine, p.takeCount()), nil
		}
		p.count = ""
		return nil, ErrParse
	}

	if p.operator != 0 {
		return p.completeOperator(ev)
	}

	switch ev.Key {
	case key.KeyLeft:
		return movement(state.MoveLeft, p.takeCount()), nil
	case key.KeyRight:
		return movement(state.MoveRight, p.takeCount()), nil
	case key.KeyUp:
		return movement(state.MoveUp, p.takeCount()), nil
	case key.KeyDown:
		return movement(state.MoveDown, p.takeCount()), nil
	}

	if ev.Key != key.KeyRune {
		p.count = ""
		return nil, ErrParse
	}

	switch ev.Rune {
	case 'h':
		return movement(state.MoveLeft, p.takeCount()), nil
	case 'j':
		return movement(state.MoveDown, p.takeCount()), nil
	case 'k':
		return movement(state.MoveUp, p.takeCount()), nil
	case 'l':
		return movement(state.MoveRight, p.takeCount()), nil
	case 'w':
		return movement(state.MoveForwardWord, p.takeCount()), nil
	case 'b':
		if ev.Modifiers.HasCtrl() {
			return movement(state.MoveScreenUp, p.takeCount()), nil
		}
		return movement(state.MoveBackWord, p.takeCount()), nil
	case '0':
		p.count = ""
		return movement(state.MoveLineHead, 1), nil
	case '^':
		p.count = ""
		return movement(state.MoveIndentHead, 1), nil
	case '$':
		p.count = ""
		return movement(state.MoveLineTail, 1), nil
	case 'g':
		p.pendingG = true
		return nil, nil
	case 'G':
		if p.count == "" {
			return movement(state.MoveTail, 1), nil
		}
		return movement(state.MoveLine, p.takeCount()), nil
	case 'n':
		return movement(state.MoveNextMatch, p.takeCount()), nil
	case 'N':
		return movement(state.MovePrevMatch, p.takeCount()), nil
	case 'f':
		if ev.Modifiers.HasCtrl() {
			return movement(state.MoveScreenDown, p.takeCount()), nil
		}
	}

	switch ev.Rune {
	case 'x':
		count := p.takeCount()
		sel := position.NewSelection(position.Right, uint32(count))
		return editAction(state.Edit{Kind: state.EditRemoveSelection, Selection: sel}, 1), nil
	case 'd', 'c', 'y':
		p.operator = ev.Rune
		return nil, nil
	case 'D':
		count := p.takeCount()
		sel := position.NewSelection(position.LineRemain, uint32(count))
		return editAction(state.Edit{Kind: state.EditRemoveSelection, Selection: sel}, 1), nil
	case 'C':
		count := p.takeCount()
		sel := position.NewSelection(position.LineRemain, uint32(count))
		return []state.Action{{Kind: state.ActionIntoEditMode, Selection: &sel}}, nil
	case 'Y':
		count := p.takeCount()
		sel := position.NewSelection(position.LineRemain, uint32(count))
		return []state.Action{{Kind: state.ActionYank, Selection: &sel}}, nil
	case 'p':
		return editAction(state.Edit{Kind: state.EditAppendYank}, 1), nil
	case 'P':
		return editAction(state.Edit{Kind: state.EditInsertYank}, 1), nil
	case '.':
		return kindOf(state.ActionRepeat, 1), nil
	case 'u':
		return kindOf(state.ActionUndo, p.takeCount()), nil
	case 'r':
		if ev.Modifiers.HasCtrl() {
			return kindOf(state.ActionRedo, p.takeCount()), nil
		}
	case 'i':
		p.count = ""
		return kindOf(state.ActionIntoInsertMode, 1), nil
	case 'a':
		p.count = ""
		return kindOf(state.ActionIntoAppendMode, 1), nil
	case ':':
		p.count = ""
		return kindOf(state.ActionIntoCmdLineMode, 1), nil
	case '/':
		p.count = ""
		return []state.Action{{Kind: state.ActionIntoSearchMode, Char: '/'}}, nil
	case '?':
		p.count = ""
		return []state.Action{{Kind: state.ActionIntoSearchMode, Char: '?'}}, nil
	}

	p.count = ""
	return nil, ErrParse
}

// completeOperator consumes the keystroke following a pending d/c/y
// operator: the operator's own letter again selects the whole line
// (count lines); any letter position.KindFromLetter recognizes selects
// that motion's range instead.
func (p *Parser) completeOperator(ev key.Event) ([]state.Action, error) {
	op := p.operator
	p.operator = 0
	count := p.takeCount()

	if ev.Key != key.KeyRune {
		return nil, ErrParse
	}

	var sel position.Selection
	switch {
	case ev.Rune == op:
		sel = position.NewSelection(position.Line, uint32(count))
	default:
		kind, ok := position.KindFromLetter(ev.Rune)
		if !ok {
			return nil, ErrParse
		}
		sel = position.NewSelection(kind, uint32(count))
	}

	switch op {
	case 'd':
		return editAction(state.Edit{Kind: state.EditRemoveSelection, Selection: sel}, 1), nil
	case 'c':
		return []state.Action{{Kind: state.ActionIntoEditMode, Selection: &sel}}, nil
	case 'y':
		return []state.Action{{Kind: state.ActionYank, Selection: &sel}}, nil
	}
	return nil, ErrParse
}

// Insert translates one keystroke while in Insert/Edit mode (spec §4.6).
func (p *Parser) Insert(ev key.Event) ([]state.Action, error) {
	switch ev.Key {
	case key.KeyEscape:
		p.Reset()
		return kindOf(state.ActionIntoNormalMode, 1), nil
	case key.KeyEnter:
		return editAction(state.Edit{Kind: state.EditLineBreak}, 1), nil
	case key.KeyBackspace:
		return editAction(state.Edit{Kind: state.EditRemoveChar}, 1), nil
	case key.KeyTab:
		return editAction(state.Edit{Kind: state.EditInsertChar, Char: '\t'}, 1), nil
	case key.KeyRune:
		return editAction(state.Edit{Kind: state.EditInsertChar, Char: ev.Rune}, 1), nil
	}
	return nil, nil
}

// CmdLine translates one keystroke in command-line mode. buf is the
// CmdBuffer accumulated so far (not including the leading ':' that
// triggered entry). On Enter the buffer is parsed against the small
// "w", "w <path>", "q" grammar (spec §6, SPEC_FULL §4 item 1); anything
// else yields ErrParse and the caller's ActionClearCmd/IntoNormalMode are
// still returned so the command line itself is left in a clean state.
func (p *Parser) CmdLine(ev key.Event, buf string) ([]state.Action, error) {
	switch ev.Key {
	case key.KeyEscape:
		p.Reset()
		return []state.Action{
			{Kind: state.ActionClearCmd},
			{Kind: state.ActionIntoNormalMode},
		}, nil
	case key.KeyBackspace:
		return kindOf(state.ActionPopCmd, 1), nil
	case key.KeyEnter:
		p.Reset()
		action, err := parseCmdLine(buf)
		tail := []state.Action{
			{Kind: state.ActionClearCmd},
			{Kind: state.ActionIntoNormalMode},
		}
		if err != nil {
			return tail, err
		}
		return append([]state.Action{action}, tail...), nil
	case key.KeyRune:
		return []state.Action{{Kind: state.ActionPushCmd, Char: ev.Rune}}, nil
	}
	return nil, nil
}

func parseCmdLine(buf string) (state.Action, error) {
	fields := strings.Fields(buf)
	if len(fields) == 0 {
		return state.Action{}, ErrParse
	}
	switch fields[0] {
	case "q":
		return state.Action{Kind: state.ActionQuit}, nil
	case "w":
		if len(fields) == 1 {
			return state.Action{Kind: state.ActionSave}, nil
		}
		return state.Action{Kind: state.ActionWriteOut, Text: fields[1]}, nil
	}
	return state.Action{}, ErrParse
}

// Search translates one keystroke in search mode. Enter always advances
// the cursor to the next match from the current position; reverse
// ("?") searches still scan forward once the pattern text is entered,
// a documented simplification over vim's direction-aware first jump.
func (p *Parser) Search(ev key.Event) ([]state.Action, error) {
	switch ev.Key {
	case key.KeyEscape:
		p.Reset()
		return []state.Action{
			{Kind: state.ActionClearSearch},
			{Kind: state.ActionIntoNormalMode},
		}, nil
	case key.KeyBackspace:
		return kindOf(state.ActionPopSearch, 1), nil
	case key.KeyEnter:
		p.Reset()
		k := state.MoveNextMatch
		return []state.Action{
			{Kind: state.ActionIntoNormalMode},
			{Movement: &k, Count: 1},
		}, nil
	case key.KeyRune:
		return []state.Action{{Kind: state.ActionPushSearch, Char: ev.Rune}}, nil
	}
	return nil, nil
}
