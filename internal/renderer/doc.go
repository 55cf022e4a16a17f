// Package renderer is the pull side of the display layer (spec §4.3,
// §6): it turns one Reactor generation into TextAreaProps,
// LineNumberProps, CursorProps, and StatusLineProps, with no knowledge
// of any particular terminal backend. internal/renderer/backend adapts
// those props to tcell; internal/renderer/style layers selection and
// search spans for a backend that wants generic priority-ordered
// blending rather than this package's direct merge.
//
// Usage:
//
//	rd := renderer.New(reactor, highlighter, renderer.DefaultTheme())
//	textArea, gutter, cursor, status := rd.Frame(ctx)
package renderer
