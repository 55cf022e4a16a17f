package renderer

// Theme maps a tree-sitter capture name (spec §4.8's highlight.Span.Name,
// e.g. "keyword", "string", "comment") to the Style the text area paints
// it with. Unknown names fall back to DefaultStyle via Lookup.
type Theme map[string]Style

// Lookup returns the style for name, or DefaultStyle if the theme has no
// entry for it.
func (t Theme) Lookup(name string) Style {
	if s, ok := t[name]; ok {
		return s
	}
	return DefaultStyle()
}

// DefaultTheme is a small built-in palette covering the capture names
// common tree-sitter highlight queries emit.
func DefaultTheme() Theme {
	return Theme{
		"keyword":        NewStyle(ColorMagenta).Bold(),
		"keyword.return": NewStyle(ColorMagenta).Bold(),
		"function":       NewStyle(ColorBlue),
		"function.call":  NewStyle(ColorBlue),
		"string":         NewStyle(ColorGreen),
		"number":         NewStyle(ColorCyan),
		"comment":        NewStyle(ColorGray).Italic(),
		"type":           NewStyle(ColorYellow),
		"type.builtin":   NewStyle(ColorYellow),
		"variable":       DefaultStyle(),
		"constant":       NewStyle(ColorCyan),
		"property":       NewStyle(ColorBlue),
		"operator":       DefaultStyle(),
		"punctuation":    DefaultStyle(),
		"error":          NewStyle(ColorRed).Bold(),
	}
}
