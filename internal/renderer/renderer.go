package renderer

import (
	"context"

	"github.com/dshills/keystorm/internal/engine/highlight"
	"github.com/dshills/keystorm/internal/engine/reactor"
)

// Renderer is the facade the event loop calls once per frame. It owns no
// screen state itself; it just pulls this frame's props from the Reactor
// and Highlighter (spec §4.3) for a backend to paint.
type Renderer struct {
	reactor     *reactor.Reactor
	highlighter *highlight.Highlighter
	theme       Theme
}

// New creates a Renderer over an already-wired Reactor and Highlighter.
// A nil highlighter is valid: Pull then produces text-area frames with no
// syntax spans, same as an unconfigured Highlighter would.
func New(r *reactor.Reactor, h *highlight.Highlighter, theme Theme) *Renderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Renderer{reactor: r, highlighter: h, theme: theme}
}

// Frame pulls this generation's render props.
func (rd *Renderer) Frame(ctx context.Context) (TextAreaProps, LineNumberProps, CursorProps, StatusLineProps) {
	return Pull(ctx, rd.reactor, rd.highlighter, rd.theme)
}

// SetTheme replaces the active theme for subsequent frames.
func (rd *Renderer) SetTheme(theme Theme) {
	if theme == nil {
		theme = DefaultTheme()
	}
	rd.theme = theme
}
