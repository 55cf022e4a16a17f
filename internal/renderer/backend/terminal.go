package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	inputkey "github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/renderer"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen        tcell.Screen
	resizeHandler func(width, height int)
	mu            sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableMouse()
	t.screen.EnablePaste()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

func (t *Terminal) SetCell(x, y int, cell renderer.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	t.screen.SetContent(x, y, cell.Rune, nil, style)
}

func (t *Terminal) GetCell(x, y int) renderer.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return renderer.Cell{
		Rune:  mainc,
		Width: renderer.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Fill(rect renderer.ScreenRect, cell renderer.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()

	for y := rect.Top; y < rect.Bottom && y < height; y++ {
		for x := rect.Left; x < rect.Right && x < width; x++ {
			if x >= 0 && y >= 0 {
				t.screen.SetContent(x, y, cell.Rune, nil, style)
			}
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case CursorBlock:
		tcellStyle = tcell.CursorStyleSteadyBlock
	case CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	case CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	case CursorHidden:
		t.screen.HideCursor()
		return
	}
	t.screen.SetCursorStyle(tcellStyle)
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	return convertEvent(ev, t)
}

func (t *Terminal) PostEvent(event Event) {
	if event.Type == EventKey {
		tk, r := convertToTcellKey(event.Key)
		tcellEv := tcell.NewEventKey(tk, r, convertToTcellMod(event.Key.Modifiers))
		_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
	}
}

func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors() > 256
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse()
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
}

func (t *Terminal) EnablePaste() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnablePaste()
}

func (t *Terminal) DisablePaste() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisablePaste()
}

func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Suspend()
}

func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Resume()
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s renderer.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		r, g, b := s.Foreground.RGB()
		style = style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	if !s.Background.IsDefault() {
		r, g, b := s.Background.RGB()
		style = style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	if s.Attributes.Has(renderer.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(renderer.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(renderer.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(renderer.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(renderer.AttrBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(renderer.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(renderer.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) renderer.Style {
	fg, bg, attrs := ts.Decompose()

	s := renderer.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
		Attributes: renderer.AttrNone,
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= renderer.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= renderer.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= renderer.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= renderer.AttrUnderline
	}
	if attrs&tcell.AttrBlink != 0 {
		s.Attributes |= renderer.AttrBlink
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= renderer.AttrReverse
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		s.Attributes |= renderer.AttrStrikethrough
	}

	return s
}

// convertTcellColor converts tcell.Color to our Color. Palette colors
// are resolved to their RGB triple since renderer.Color is truecolor-only.
func convertTcellColor(tc tcell.Color) renderer.Color {
	if tc == tcell.ColorDefault {
		return renderer.ColorDefault
	}
	r, g, b := tc.RGB()
	return renderer.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts a tcell event to our Event type.
func convertEvent(ev tcell.Event, t *Terminal) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKeyEvent(e),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		if t.resizeHandler != nil {
			t.resizeHandler(w, h)
		}
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventPaste:
		return Event{
			Type:    EventPaste,
			Focused: e.Start(), // repurpose Focused to indicate start vs end
		}

	case *tcell.EventFocus:
		return Event{
			Type:    EventFocus,
			Focused: e.Focused,
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKeyEvent converts a tcell key event to a key.Event, folding
// tcell's dedicated KeyCtrlA..KeyCtrlZ constants back into a plain rune
// plus ModCtrl so downstream code only ever matches on key.ModCtrl.
func convertKeyEvent(e *tcell.EventKey) inputkey.Event {
	mod := convertMod(e.Modifiers())

	if r, ok := ctrlLetterFromTcellKey(e.Key()); ok {
		return inputkey.NewRuneEvent(r, mod.With(inputkey.ModCtrl))
	}

	if e.Key() == tcell.KeyRune {
		return inputkey.NewRuneEvent(e.Rune(), mod)
	}

	if k, ok := specialKeyFromTcellKey(e.Key()); ok {
		return inputkey.NewSpecialEvent(k, mod)
	}

	return inputkey.NewSpecialEvent(inputkey.KeyNone, mod)
}

// ctrlLetterFromTcellKey maps tcell's KeyCtrlA..KeyCtrlZ to the letter
// they represent. tcell has no KeyCtrl constant for every letter
// (e.g. Ctrl-H aliases Backspace), so this only covers the ones tcell
// keeps distinct from other special keys.
func ctrlLetterFromTcellKey(k tcell.Key) (rune, bool) {
	switch k {
	case tcell.KeyCtrlA:
		return 'a', true
	case tcell.KeyCtrlB:
		return 'b', true
	case tcell.KeyCtrlC:
		return 'c', true
	case tcell.KeyCtrlD:
		return 'd', true
	case tcell.KeyCtrlE:
		return 'e', true
	case tcell.KeyCtrlF:
		return 'f', true
	case tcell.KeyCtrlG:
		return 'g', true
	case tcell.KeyCtrlK:
		return 'k', true
	case tcell.KeyCtrlL:
		return 'l', true
	case tcell.KeyCtrlN:
		return 'n', true
	case tcell.KeyCtrlO:
		return 'o', true
	case tcell.KeyCtrlP:
		return 'p', true
	case tcell.KeyCtrlQ:
		return 'q', true
	case tcell.KeyCtrlR:
		return 'r', true
	case tcell.KeyCtrlS:
		return 's', true
	case tcell.KeyCtrlT:
		return 't', true
	case tcell.KeyCtrlU:
		return 'u', true
	case tcell.KeyCtrlV:
		return 'v', true
	case tcell.KeyCtrlW:
		return 'w', true
	case tcell.KeyCtrlX:
		return 'x', true
	case tcell.KeyCtrlY:
		return 'y', true
	case tcell.KeyCtrlZ:
		return 'z', true
	default:
		return 0, false
	}
}

// specialKeyFromTcellKey maps tcell's non-rune keys to key.Key.
func specialKeyFromTcellKey(k tcell.Key) (inputkey.Key, bool) {
	switch k {
	case tcell.KeyEscape:
		return inputkey.KeyEscape, true
	case tcell.KeyEnter, tcell.KeyCtrlM:
		return inputkey.KeyEnter, true
	case tcell.KeyTab, tcell.KeyCtrlI:
		return inputkey.KeyTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyCtrlH:
		return inputkey.KeyBackspace, true
	case tcell.KeyDelete:
		return inputkey.KeyDelete, true
	case tcell.KeyInsert:
		return inputkey.KeyInsert, true
	case tcell.KeyHome:
		return inputkey.KeyHome, true
	case tcell.KeyEnd:
		return inputkey.KeyEnd, true
	case tcell.KeyPgUp:
		return inputkey.KeyPageUp, true
	case tcell.KeyPgDn:
		return inputkey.KeyPageDown, true
	case tcell.KeyUp:
		return inputkey.KeyUp, true
	case tcell.KeyDown:
		return inputkey.KeyDown, true
	case tcell.KeyLeft:
		return inputkey.KeyLeft, true
	case tcell.KeyRight:
		return inputkey.KeyRight, true
	case tcell.KeyF1:
		return inputkey.KeyF1, true
	case tcell.KeyF2:
		return inputkey.KeyF2, true
	case tcell.KeyF3:
		return inputkey.KeyF3, true
	case tcell.KeyF4:
		return inputkey.KeyF4, true
	case tcell.KeyF5:
		return inputkey.KeyF5, true
	case tcell.KeyF6:
		return inputkey.KeyF6, true
	case tcell.KeyF7:
		return inputkey.KeyF7, true
	case tcell.KeyF8:
		return inputkey.KeyF8, true
	case tcell.KeyF9:
		return inputkey.KeyF9, true
	case tcell.KeyF10:
		return inputkey.KeyF10, true
	case tcell.KeyF11:
		return inputkey.KeyF11, true
	case tcell.KeyF12:
		return inputkey.KeyF12, true
	case tcell.KeyCtrlSpace:
		return inputkey.KeySpace, true
	default:
		return inputkey.KeyNone, false
	}
}

// convertToTcellKey converts a key.Event back to a tcell key and rune,
// for PostEvent's synthetic-event support.
func convertToTcellKey(e inputkey.Event) (tcell.Key, rune) {
	if e.Key == inputkey.KeyRune && e.Modifiers.HasCtrl() {
		if k, ok := tcellCtrlKeyFromLetter(e.Rune); ok {
			return k, 0
		}
	}
	if e.Key == inputkey.KeyRune {
		return tcell.KeyRune, e.Rune
	}

	switch e.Key {
	case inputkey.KeyEscape:
		return tcell.KeyEscape, 0
	case inputkey.KeyEnter:
		return tcell.KeyEnter, 0
	case inputkey.KeyTab:
		return tcell.KeyTab, 0
	case inputkey.KeyBackspace:
		return tcell.KeyBackspace2, 0
	case inputkey.KeyDelete:
		return tcell.KeyDelete, 0
	case inputkey.KeyInsert:
		return tcell.KeyInsert, 0
	case inputkey.KeyHome:
		return tcell.KeyHome, 0
	case inputkey.KeyEnd:
		return tcell.KeyEnd, 0
	case inputkey.KeyPageUp:
		return tcell.KeyPgUp, 0
	case inputkey.KeyPageDown:
		return tcell.KeyPgDn, 0
	case inputkey.KeyUp:
		return tcell.KeyUp, 0
	case inputkey.KeyDown:
		return tcell.KeyDown, 0
	case inputkey.KeyLeft:
		return tcell.KeyLeft, 0
	case inputkey.KeyRight:
		return tcell.KeyRight, 0
	case inputkey.KeyF1:
		return tcell.KeyF1, 0
	case inputkey.KeyF2:
		return tcell.KeyF2, 0
	case inputkey.KeyF3:
		return tcell.KeyF3, 0
	case inputkey.KeyF4:
		return tcell.KeyF4, 0
	case inputkey.KeyF5:
		return tcell.KeyF5, 0
	case inputkey.KeyF6:
		return tcell.KeyF6, 0
	case inputkey.KeyF7:
		return tcell.KeyF7, 0
	case inputkey.KeyF8:
		return tcell.KeyF8, 0
	case inputkey.KeyF9:
		return tcell.KeyF9, 0
	case inputkey.KeyF10:
		return tcell.KeyF10, 0
	case inputkey.KeyF11:
		return tcell.KeyF11, 0
	case inputkey.KeyF12:
		return tcell.KeyF12, 0
	default:
		return tcell.KeyRune, e.Rune
	}
}

func tcellCtrlKeyFromLetter(r rune) (tcell.Key, bool) {
	switch r {
	case 'a':
		return tcell.KeyCtrlA, true
	case 'b':
		return tcell.KeyCtrlB, true
	case 'c':
		return tcell.KeyCtrlC, true
	case 'd':
		return tcell.KeyCtrlD, true
	case 'e':
		return tcell.KeyCtrlE, true
	case 'f':
		return tcell.KeyCtrlF, true
	case 'g':
		return tcell.KeyCtrlG, true
	case 'k':
		return tcell.KeyCtrlK, true
	case 'l':
		return tcell.KeyCtrlL, true
	case 'n':
		return tcell.KeyCtrlN, true
	case 'o':
		return tcell.KeyCtrlO, true
	case 'p':
		return tcell.KeyCtrlP, true
	case 'q':
		return tcell.KeyCtrlQ, true
	case 'r':
		return tcell.KeyCtrlR, true
	case 's':
		return tcell.KeyCtrlS, true
	case 't':
		return tcell.KeyCtrlT, true
	case 'u':
		return tcell.KeyCtrlU, true
	case 'v':
		return tcell.KeyCtrlV, true
	case 'w':
		return tcell.KeyCtrlW, true
	case 'x':
		return tcell.KeyCtrlX, true
	case 'y':
		return tcell.KeyCtrlY, true
	case 'z':
		return tcell.KeyCtrlZ, true
	default:
		return tcell.KeyRune, false
	}
}

// convertMod converts a tcell modifier mask to key.Modifier.
func convertMod(m tcell.ModMask) inputkey.Modifier {
	var result inputkey.Modifier
	if m&tcell.ModShift != 0 {
		result |= inputkey.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= inputkey.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= inputkey.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= inputkey.ModMeta
	}
	return result
}

// convertToTcellMod converts a key.Modifier to a tcell modifier mask.
func convertToTcellMod(m inputkey.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.HasShift() {
		result |= tcell.ModShift
	}
	if m.HasCtrl() {
		result |= tcell.ModCtrl
	}
	if m.HasAlt() {
		result |= tcell.ModAlt
	}
	if m.HasMeta() {
		result |= tcell.ModMeta
	}
	return result
}

// convertMouseButton converts a tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	default:
		return MouseNone
	}
}
