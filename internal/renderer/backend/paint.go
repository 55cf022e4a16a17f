package backend

import (
	"fmt"

	"github.com/dshills/keystorm/internal/renderer"
)

// Paint draws one Renderer.Frame's props onto b and flushes them to the
// screen. The bottom two rows are reserved the way state.TextAreaRows
// reserves them: the second-to-last row is the status line (mode, path,
// cursor position), the last is the command/search line (spec §4.9's
// CmdBuffer, or the search prompt while in Search mode).
func Paint(b Backend, textArea renderer.TextAreaProps, gutter renderer.LineNumberProps, cursor renderer.CursorProps, status renderer.StatusLineProps) {
	width, height := b.Size()
	if height < 1 || width < 1 {
		return
	}

	gutterWidth := 0
	if gutter.Width > 0 {
		gutterWidth = gutter.Width + 1 // digits plus a separator column
	}

	b.Clear()

	textRows := height
	if height >= 2 {
		textRows = height - 2
	}

	shown := 0
	for i, line := range textArea.Lines {
		if i >= textRows {
			break
		}
		if gutterWidth > 0 {
			paintGutter(b, line.Row, i, gutterWidth)
		}
		paintTextLine(b, line, i, gutterWidth, width)
		shown++
	}
	for i := shown; i < textRows; i++ {
		if gutterWidth > 0 {
			paintEmptyGutterRow(b, i, gutterWidth)
		}
		paintTextLine(b, renderer.VisibleLine{}, i, gutterWidth, width)
	}

	if height >= 2 {
		paintStatusLine(b, status, height-2, width)
		paintCommandLine(b, status, height-1, width)
	}

	if cursor.Visible && cursor.Row >= textArea.FirstRow {
		screenRow := int(cursor.Row - textArea.FirstRow)
		if screenRow < textRows {
			b.ShowCursor(gutterWidth+int(cursor.Col), screenRow)
		} else {
			b.HideCursor()
		}
	} else {
		b.HideCursor()
	}

	b.Show()
}

var gutterStyle = renderer.DefaultStyle().Dim()

func paintGutter(b Backend, row uint32, screenRow, gutterWidth int) {
	numStr := fmt.Sprintf("%*d", gutterWidth-1, row+1)
	writeGutterCol(b, numStr, screenRow, gutterWidth)
}

// paintEmptyGutterRow draws the "~" Vim uses for screen rows past the
// last buffer line.
func paintEmptyGutterRow(b Backend, screenRow, gutterWidth int) {
	writeGutterCol(b, fmt.Sprintf("%*s", gutterWidth-1, "~"), screenRow, gutterWidth)
}

func writeGutterCol(b Backend, numStr string, screenRow, gutterWidth int) {
	for x, ch := range numStr {
		if x < gutterWidth-1 {
			b.SetCell(x, screenRow, renderer.NewStyledCell(ch, gutterStyle))
		}
	}
	b.SetCell(gutterWidth-1, screenRow, renderer.NewCell(' '))
}

func paintTextLine(b Backend, line renderer.VisibleLine, screenRow, gutterWidth, width int) {
	col := 0
	for _, r := range line.Text {
		if col >= width-gutterWidth {
			break
		}
		style := styleAt(line, uint32(col))
		b.SetCell(gutterWidth+col, screenRow, renderer.NewStyledCell(r, style))
		col += renderer.RuneWidth(r)
	}
	for ; col < width-gutterWidth; col++ {
		b.SetCell(gutterWidth+col, screenRow, renderer.EmptyCell())
	}
}

func styleAt(line renderer.VisibleLine, col uint32) renderer.Style {
	style := renderer.DefaultStyle()
	for _, span := range line.Spans {
		if col >= span.StartCol && col < span.EndCol {
			style = style.Merge(span.Style)
		}
	}
	if line.CursorLine {
		style = style.WithBackground(renderer.ColorFromRGB(40, 40, 40))
	}
	return style
}

func paintStatusLine(b Backend, status renderer.StatusLineProps, screenRow, width int) {
	text := fmt.Sprintf(" %s | %s | %d:%d", status.Mode, status.Path, status.CursorLine, status.CursorColumn)
	paintLine(b, text, screenRow, width, renderer.DefaultStyle().Reverse())
}

func paintCommandLine(b Backend, status renderer.StatusLineProps, screenRow, width int) {
	var text string
	switch {
	case status.SearchPrefix != 0:
		text = string(status.SearchPrefix) + status.SearchPattern
	case status.CmdBuffer != "":
		text = status.CmdBuffer
	}
	paintLine(b, text, screenRow, width, renderer.DefaultStyle())
}

func paintLine(b Backend, text string, screenRow, width int, style renderer.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		b.SetCell(col, screenRow, renderer.NewStyledCell(r, style))
		col += renderer.RuneWidth(r)
	}
	for ; col < width; col++ {
		b.SetCell(col, screenRow, renderer.NewStyledCell(' ', style))
	}
}
