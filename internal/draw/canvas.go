package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/invasion/internal/physics"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It scales from logical coordinates to terminal sub-pixels and only emits the
// cells that changed since the previous Render.
type Canvas struct {
	termWidth      int    // Render columns
	termHeight     int    // Render rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]
	shown          []rune // Cell contents on the terminal after the last Render
	redraw         bool   // Emit every cell on the next Render

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the terminal cells available for rendering.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shown = make([]rune, termHeight*termWidth)
		c.redraw = true
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)))
}

// FillRect fills a logical rectangle. Every rectangle covers at least one
// sub-pixel so thin shots stay visible at low resolutions.
func (c *Canvas) FillRect(r physics.Rect) {
	x0, y0, x1, y1 := c.pixelBounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y)
		}
	}
}

// DrawRect outlines a logical rectangle.
func (c *Canvas) DrawRect(r physics.Rect) {
	x0, y0, x1, y1 := c.pixelBounds(r)
	for x := x0; x < x1; x++ {
		c.setPixel(x, y0)
		c.setPixel(x, y1-1)
	}
	for y := y0; y < y1; y++ {
		c.setPixel(x0, y)
		c.setPixel(x1-1, y)
	}
}

// pixelBounds maps r to a half-open sub-pixel box of at least 1x1.
func (c *Canvas) pixelBounds(r physics.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(float64(r.X) * c.scaleX))
	y0 = int(math.Floor(float64(r.Y) * c.scaleY))
	x1 = int(math.Ceil(float64(r.Right()) * c.scaleX))
	y1 = int(math.Ceil(float64(r.Bottom()) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon given in logical coordinates using a
// scanline pass in pixel space, then traces its outline.
func (c *Canvas) FillPolygon(points []Point) {
	if len(points) < 3 {
		return
	}

	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		slices.Sort(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// Cell returns the half-block rune for a 0-based render cell.
func (c *Canvas) Cell(col, row int) rune {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return BlockEmpty
}

// Render writes the cells that changed since the last Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		lastCol := -2
		for col := 0; col < c.termWidth; col++ {
			ch := c.Cell(col, row)
			idx := row*c.termWidth + col
			prev := c.shown[idx]
			if !c.redraw && (prev == ch || (prev == 0 && ch == BlockEmpty)) {
				continue
			}
			c.shown[idx] = ch

			// Adjacent changes continue the current run without a cursor move.
			if col != lastCol+1 {
				c.moveTo(col, row)
			}
			c.renderBuf.WriteRune(ch)
			lastCol = col
		}
	}
	c.redraw = false

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// moveTo appends a cursor move to the 0-based canvas cell.
func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box around the render area when the terminal has
// room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return
	}
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	MoveCursor(&buf, left, top)
	buf.WriteString("┌" + line + "┐")
	MoveCursor(&buf, left, bottom)
	buf.WriteString("└" + line + "┘")
	for row := top + 1; row < bottom; row++ {
		MoveCursor(&buf, left, row)
		buf.WriteString("│")
		MoveCursor(&buf, right, row)
		buf.WriteString("│")
	}
	io.WriteString(w, buf.String())
}

// TerminalWidth returns the render column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas
// position (col, row), before the offset is applied.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 0-based terminal cell, including the
// offset, to the logical point at the center of that cell.
func (c *Canvas) TerminalToLogical(col, row int) (x, y int) {
	cx := float64(col-c.offsetCol) + 0.5
	cy := float64((row-c.offsetRow)*2) + 1
	x = int(cx * c.logicalWidth / float64(c.termWidth))
	y = int(cy * c.logicalHeight / float64(c.subPixelHeight))
	return x, y
}
