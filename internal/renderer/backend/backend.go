// Package backend abstracts the terminal surface a Renderer frame paints
// onto (spec §4.3, §6): a Backend turns SetCell/Fill/Show calls into
// actual terminal output and PollEvent into the keystrokes and resizes
// the event loop reacts to. Terminal is the tcell-backed implementation;
// NullBackend is an in-memory double for tests.
package backend

import (
	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/renderer"
)

// CursorStyle controls how the hardware cursor is drawn.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
	CursorHidden
)

// EventType identifies the kind of terminal event PollEvent returned.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
)

// MouseButton identifies which mouse button or wheel direction an
// EventMouse carries.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// Event is a terminal event. Only the fields matching Type are
// meaningful; a key event carries its key.Event directly so callers
// feed PollEvent straight into the dispatcher's keystroke handling
// (internal/input/key, internal/dispatcher/command) without a second
// translation layer.
type Event struct {
	Type EventType

	Key key.Event

	MouseX, MouseY int
	MouseButton    MouseButton

	Width, Height int

	Focused bool

	PasteText string
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display
// surfaces; Renderer's Pull never depends on this package, only the
// event loop that paints a Renderer.Frame does.
type Backend interface {
	// Init initializes the backend for use. Must be called before any
	// other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// OnResize registers a callback for terminal resize events.
	OnResize(callback func(width, height int))

	// SetCell sets a single cell at the given position. Positions
	// outside the terminal are silently ignored.
	SetCell(x, y int, cell renderer.Cell)

	// GetCell returns the cell at the given position, or an empty cell
	// for positions outside the terminal.
	GetCell(x, y int) renderer.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect renderer.ScreenRect, cell renderer.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// PollEvent waits for and returns the next terminal event. This is
	// a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// HasTrueColor returns true if the backend supports 24-bit color.
	HasTrueColor() bool

	// Beep produces an audible or visual bell.
	Beep()

	// EnableMouse enables mouse event reporting.
	EnableMouse()

	// DisableMouse disables mouse event reporting.
	DisableMouse()

	// EnablePaste enables bracketed paste mode.
	EnablePaste()

	// DisablePaste disables bracketed paste mode.
	DisablePaste()

	// Suspend suspends the terminal (for shell escape, :sh).
	Suspend() error

	// Resume resumes from suspension.
	Resume() error
}

// NullBackend is an in-memory Backend for tests: no terminal escape
// codes are emitted, cells live in a plain grid, and PollEvent reads
// from a buffered channel that PostEvent (or a test) writes to.
type NullBackend struct {
	width, height int
	cells         [][]renderer.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	resizeHandler func(width, height int)
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.cells = make([][]renderer.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]renderer.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = renderer.EmptyCell()
		}
	}
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) OnResize(callback func(width, height int)) {
	b.resizeHandler = callback
}

func (b *NullBackend) SetCell(x, y int, cell renderer.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) renderer.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return renderer.EmptyCell()
}

func (b *NullBackend) Fill(rect renderer.ScreenRect, cell renderer.Cell) {
	for y := rect.Top; y < rect.Bottom && y < b.height; y++ {
		for x := rect.Left; x < rect.Right && x < b.width; x++ {
			if x >= 0 && y >= 0 {
				b.cells[y][x] = cell
			}
		}
	}
}

func (b *NullBackend) Clear() {
	empty := renderer.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing).
	}
}

func (b *NullBackend) HasTrueColor() bool { return true }
func (b *NullBackend) Beep()              {}
func (b *NullBackend) EnableMouse()       {}
func (b *NullBackend) DisableMouse()      {}
func (b *NullBackend) EnablePaste()       {}
func (b *NullBackend) DisablePaste()      {}
func (b *NullBackend) Suspend() error     { return nil }
func (b *NullBackend) Resume() error      { return nil }

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	return b.cursorStyle
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.cells = make([][]renderer.Cell, height)
	for i := range b.cells {
		b.cells[i] = make([]renderer.Cell, width)
		for j := range b.cells[i] {
			b.cells[i][j] = renderer.EmptyCell()
		}
	}
	if b.resizeHandler != nil {
		b.resizeHandler(width, height)
	}
}
