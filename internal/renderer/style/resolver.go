// Package style resolves the visual style of a cell by combining the
// syntax, search, selection, and cursor layers a TextAreaProps render
// pass can produce for any one column (spec §4.3's pull interface).
package style

import (
	"github.com/dshills/keystorm/internal/renderer"
)

// Layer represents a style layer with priority. Layers are applied
// lowest first, so LayerCursor always wins ties.
type Layer uint8

const (
	LayerBase Layer = iota
	LayerSyntax
	LayerSearch
	LayerSelection
	LayerCursor

	LayerCount
)

// String returns the string representation of the layer.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerSyntax:
		return "syntax"
	case LayerSearch:
		return "search"
	case LayerSelection:
		return "selection"
	case LayerCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// Span represents a styled span at a specific layer.
type Span struct {
	StartCol uint32
	EndCol   uint32
	Style    renderer.Style
	Layer    Layer
	Merge    MergeMode
}

// MergeMode determines how a span merges onto lower layers.
type MergeMode uint8

const (
	// MergeReplace replaces all lower layer styles.
	MergeReplace MergeMode = iota

	// MergeOverlay overlays onto lower layers, keeping the base color
	// for whichever of foreground/background the overlay leaves default.
	MergeOverlay

	// MergeBlend overlays a background color by blending it with the
	// layer below rather than replacing it outright (e.g. a search
	// match glowing through a syntax color instead of erasing it).
	MergeBlend

	// MergeAttributes only adds attributes, preserves colors.
	MergeAttributes
)

// Resolver resolves styles by combining multiple layers.
type Resolver struct {
	baseStyle    renderer.Style
	layerEnabled [LayerCount]bool
}

// NewResolver creates a new style resolver with every layer enabled.
func NewResolver() *Resolver {
	r := &Resolver{baseStyle: renderer.DefaultStyle()}
	for i := 0; i < int(LayerCount); i++ {
		r.layerEnabled[i] = true
	}
	return r
}

// SetBaseStyle sets the base style.
func (r *Resolver) SetBaseStyle(style renderer.Style) {
	r.baseStyle = style
}

// SetLayerEnabled enables or disables a layer.
func (r *Resolver) SetLayerEnabled(layer Layer, enabled bool) {
	if layer < LayerCount {
		r.layerEnabled[layer] = enabled
	}
}

// IsLayerEnabled returns true if a layer is enabled.
func (r *Resolver) IsLayerEnabled(layer Layer) bool {
	if layer >= LayerCount {
		return false
	}
	return r.layerEnabled[layer]
}

// Resolve combines styles from multiple spans at a specific column.
func (r *Resolver) Resolve(col uint32, spans []Span) renderer.Style {
	result := r.baseStyle

	for layer := LayerBase; layer < LayerCount; layer++ {
		if !r.layerEnabled[layer] {
			continue
		}
		for _, span := range spans {
			if span.Layer != layer {
				continue
			}
			if col < span.StartCol || col >= span.EndCol {
				continue
			}
			result = r.mergeStyle(result, span.Style, span.Merge)
		}
	}

	return result
}

// ResolveCell resolves the style for a cell and returns an updated cell.
func (r *Resolver) ResolveCell(cell renderer.Cell, col uint32, spans []Span) renderer.Cell {
	cell.Style = r.Resolve(col, spans)
	return cell
}

// ResolveLine resolves styles for an entire line of cells.
func (r *Resolver) ResolveLine(cells []renderer.Cell, spans []Span) []renderer.Cell {
	if len(spans) == 0 {
		return cells
	}

	result := make([]renderer.Cell, len(cells))
	copy(result, cells)
	for i := range result {
		result[i].Style = r.Resolve(uint32(i), spans)
	}
	return result
}

func (r *Resolver) mergeStyle(base, overlay renderer.Style, mode MergeMode) renderer.Style {
	switch mode {
	case MergeReplace:
		return overlay

	case MergeOverlay:
		result := base
		if !overlay.Foreground.IsDefault() {
			result.Foreground = overlay.Foreground
		}
		if !overlay.Background.IsDefault() {
			result.Background = overlay.Background
		}
		result.Attributes |= overlay.Attributes
		return result

	case MergeBlend:
		result := base
		if !overlay.Background.IsDefault() {
			if result.Background.IsDefault() {
				result.Background = overlay.Background
			} else {
				result.Background = result.Background.Blend(overlay.Background, 0.5)
			}
		}
		if !overlay.Foreground.IsDefault() {
			result.Foreground = overlay.Foreground
		}
		result.Attributes |= overlay.Attributes
		return result

	case MergeAttributes:
		result := base
		result.Attributes |= overlay.Attributes
		return result

	default:
		return overlay
	}
}

// SpanBuilder helps build spans for a line.
type SpanBuilder struct {
	spans []Span
}

// NewSpanBuilder creates a new span builder.
func NewSpanBuilder() *SpanBuilder {
	return &SpanBuilder{spans: make([]Span, 0, 8)}
}

// Add adds a span with the default (overlay) merge mode.
func (b *SpanBuilder) Add(startCol, endCol uint32, style renderer.Style, layer Layer) *SpanBuilder {
	return b.AddWithMerge(startCol, endCol, style, layer, MergeOverlay)
}

// AddWithMerge adds a span with a specific merge mode.
func (b *SpanBuilder) AddWithMerge(startCol, endCol uint32, style renderer.Style, layer Layer, merge MergeMode) *SpanBuilder {
	b.spans = append(b.spans, Span{
		StartCol: startCol,
		EndCol:   endCol,
		Style:    style,
		Layer:    layer,
		Merge:    merge,
	})
	return b
}

// AddSyntax adds a syntax highlighting span.
func (b *SpanBuilder) AddSyntax(startCol, endCol uint32, style renderer.Style) *SpanBuilder {
	return b.Add(startCol, endCol, style, LayerSyntax)
}

// AddSelection adds a selection span.
func (b *SpanBuilder) AddSelection(startCol, endCol uint32, style renderer.Style) *SpanBuilder {
	return b.Add(startCol, endCol, style, LayerSelection)
}

// AddSearch adds a search highlight span, blended over whatever
// syntax color already occupies the cell.
func (b *SpanBuilder) AddSearch(startCol, endCol uint32, style renderer.Style) *SpanBuilder {
	return b.AddWithMerge(startCol, endCol, style, LayerSearch, MergeBlend)
}

// AddCursor adds the cursor cell's reverse-video span.
func (b *SpanBuilder) AddCursor(startCol, endCol uint32, style renderer.Style) *SpanBuilder {
	return b.Add(startCol, endCol, style, LayerCursor)
}

// Build returns the built spans.
func (b *SpanBuilder) Build() []Span {
	return b.spans
}

// Clear clears all spans.
func (b *SpanBuilder) Clear() {
	b.spans = b.spans[:0]
}

// LineResolver resolves styles for a single line with caching.
type LineResolver struct {
	resolver *Resolver
	spans    []Span
	line     uint32
}

// NewLineResolver creates a line resolver for a specific line.
func NewLineResolver(resolver *Resolver, line uint32) *LineResolver {
	return &LineResolver{resolver: resolver, spans: make([]Span, 0, 8), line: line}
}

// AddSpan adds a span for this line.
func (lr *LineResolver) AddSpan(span Span) {
	lr.spans = append(lr.spans, span)
}

// AddSpans adds multiple spans for this line.
func (lr *LineResolver) AddSpans(spans []Span) {
	lr.spans = append(lr.spans, spans...)
}

// Resolve resolves the style at a column.
func (lr *LineResolver) Resolve(col uint32) renderer.Style {
	return lr.resolver.Resolve(col, lr.spans)
}

// ResolveCell resolves and updates a cell's style.
func (lr *LineResolver) ResolveCell(cell renderer.Cell, col uint32) renderer.Cell {
	cell.Style = lr.Resolve(col)
	return cell
}

// ResolveCells resolves styles for a slice of cells.
func (lr *LineResolver) ResolveCells(cells []renderer.Cell) []renderer.Cell {
	return lr.resolver.ResolveLine(cells, lr.spans)
}

// Clear clears the spans.
func (lr *LineResolver) Clear() {
	lr.spans = lr.spans[:0]
}

// Line returns the line number.
func (lr *LineResolver) Line() uint32 {
	return lr.line
}

// DefaultStyles returns commonly used style presets (spec §4.3's
// selection/search rendering, visible regardless of what a syntax
// theme supplies).
type DefaultStyles struct {
	Selection    renderer.Style
	SearchMatch  renderer.Style
	CurrentMatch renderer.Style
	CursorLine   renderer.Style
}

// NewDefaultStyles creates default style presets.
func NewDefaultStyles() DefaultStyles {
	return DefaultStyles{
		Selection: renderer.NewStyle(renderer.ColorDefault).
			WithBackground(renderer.ColorFromRGB(60, 90, 130)),

		SearchMatch: renderer.NewStyle(renderer.ColorDefault).
			WithBackground(renderer.ColorFromRGB(100, 100, 50)),

		CurrentMatch: renderer.NewStyle(renderer.ColorDefault).
			WithBackground(renderer.ColorFromRGB(150, 120, 50)),

		CursorLine: renderer.NewStyle(renderer.ColorDefault).
			WithBackground(renderer.ColorFromRGB(40, 40, 45)),
	}
}
