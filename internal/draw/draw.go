// Package draw renders the logical playfield to an ANSI terminal using
// half-block characters, and holds the escape helpers shared by the
// terminal frontends.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FitTerminal clamps terminal dimensions to a maximum render area and
// computes the offset that centers it.
func FitTerminal(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if maxWidth > 0 && renderWidth > maxWidth {
		renderWidth = maxWidth
	}
	if maxHeight > 0 && renderHeight > maxHeight {
		renderHeight = maxHeight
	}
	if renderWidth < 1 {
		renderWidth = 1
	}
	if renderHeight < 1 {
		renderHeight = 1
	}
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
