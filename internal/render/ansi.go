package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"planetgen/internal/core"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// halfBlock paints the upper pixel in the foreground colour and the lower
	// one in the background colour.
	halfBlock = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string { return CSI + "2J" }

// HideCursor hides the terminal cursor.
func HideCursor() string { return CSI + "?25l" }

// ShowCursor shows the terminal cursor.
func ShowCursor() string { return CSI + "?25h" }

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string { return CSI + "?1049h" }

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string { return CSI + "?1049l" }

// ANSI renders cells into at most cols x rows terminal cells using 24-bit
// colour half blocks, so every terminal row shows two grid rows. The grid is
// downsampled by nearest neighbour with a uniform step. Transparent palette
// entries render as black.
func ANSI(cells []uint8, size core.Size, palette []color.RGBA, cols, rows int) string {
	if cols <= 0 || rows <= 0 || size.W <= 0 || size.H <= 0 || len(cells) != size.W*size.H {
		return ""
	}
	step := max((size.W+cols-1)/cols, (size.H+2*rows-1)/(2*rows), 1)
	outW := size.W / step
	outH := (size.H / step) / 2

	at := func(x, y int) color.RGBA {
		if len(palette) == 0 {
			return color.RGBA{}
		}
		idx := int(cells[y*size.W+x])
		if idx >= len(palette) {
			idx = len(palette) - 1
		}
		c := palette[idx]
		if c.A == 0 {
			return color.RGBA{}
		}
		return c
	}

	var sb strings.Builder
	for row := 0; row < outH; row++ {
		sb.WriteString(MoveTo(row+1, 1))
		top := row * 2 * step
		bottom := top + step
		for col := 0; col < outW; col++ {
			x := col * step
			writeHalfBlock(&sb, at(x, top), at(x, bottom))
		}
		sb.WriteString(Reset)
	}
	return sb.String()
}

// writeHalfBlock writes a combined SGR so no state leaks between cells.
func writeHalfBlock(sb *strings.Builder, fg, bg color.RGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(fg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.B)))
	sb.WriteByte('m')
	sb.WriteRune(halfBlock)
}
