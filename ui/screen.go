package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	defaultZeroValue = ' '
	screenStyle      = lipgloss.NewStyle().Padding(1, 1, 1, 1)
)

// Screen is a terminal character buffer with per-rune styling, used to
// render one phase of a pattern as a colored grid.
type Screen struct {
	rows int
	cols int

	zeroValue   rune
	screenStyle lipgloss.Style
	charStyles  map[rune]lipgloss.Style

	data    [][]rune
	buf     strings.Builder
	lineBuf strings.Builder
}

// NewScreen creates a screen of the given size, filled with the zero value.
func NewScreen(rows, cols int) *Screen {
	gs := &Screen{
		rows:        rows,
		cols:        cols,
		zeroValue:   defaultZeroValue,
		screenStyle: screenStyle,
		charStyles:  make(map[rune]lipgloss.Style),
	}
	gs.Reset()
	return gs
}

// SetSize resizes the screen, preserving existing data where it overlaps.
func (gs *Screen) SetSize(width, height int) {
	if width == gs.cols && height == gs.rows {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	data := make([][]rune, height)
	rows := min(height, gs.rows)
	for i := range rows {
		data[i] = make([]rune, width)
		cols := min(width, gs.cols)
		copy(data[i][:cols], gs.data[i][:cols])
		for j := cols; j < width; j++ {
			data[i][j] = gs.zeroValue
		}
	}
	for i := rows; i < height; i++ {
		data[i] = make([]rune, width)
		for j := range width {
			data[i][j] = gs.zeroValue
		}
	}
	gs.data = data
	gs.rows = height
	gs.cols = width
}

// SetCharColor maps a glyph to a foreground color for rendering.
func (gs *Screen) SetCharColor(char rune, color lipgloss.Color) {
	if color == "" || char == 0 {
		return
	}
	gs.charStyles[char] = lipgloss.NewStyle().Foreground(color)
}

// Reset clears the entire screen back to the zero value.
func (gs *Screen) Reset() {
	if gs.data == nil {
		gs.data = make([][]rune, gs.rows)
	}
	for i := range gs.rows {
		if gs.data[i] == nil {
			gs.data[i] = make([]rune, gs.cols)
		}
		for j := range gs.cols {
			gs.data[i][j] = gs.zeroValue
		}
	}
}

// SetRow overwrites one row of the screen with the given runes,
// padding or truncating to fit the screen width.
func (gs *Screen) SetRow(y int, row []rune) {
	if y < 0 || y >= gs.rows {
		return
	}
	if gs.data[y] == nil {
		gs.data[y] = make([]rune, gs.cols)
	}
	cols := min(len(row), gs.cols)
	copy(gs.data[y][:cols], row[:cols])
	for j := cols; j < gs.cols; j++ {
		gs.data[y][j] = gs.zeroValue
	}
}

// View renders the screen content as a styled string.
func (gs *Screen) View() string {
	gs.buf.Reset()
	for i := range gs.rows {
		gs.lineBuf.Reset()
		for j := range gs.cols {
			ch := gs.data[i][j]
			if style, ok := gs.charStyles[ch]; ok {
				gs.lineBuf.WriteString(style.Render(string(ch)))
			} else {
				gs.lineBuf.WriteRune(ch)
			}
		}
		gs.buf.WriteString(gs.lineBuf.String())
		if i < gs.rows-1 {
			gs.buf.WriteRune('\n')
		}
	}
	return gs.screenStyle.Render(gs.buf.String())
}
