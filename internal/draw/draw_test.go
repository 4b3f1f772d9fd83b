package draw

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/invasion/internal/physics"
)

func TestFitTerminal(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH, col, row int
	}{
		{"fits", 100, 40, 100, 40, 0, 0},
		{"too wide", 200, 40, 150, 40, 25, 0},
		{"too big", 200, 70, 150, 50, 25, 10},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h, col, row := FitTerminal(tc.termW, tc.termH, 150, 50)
			if w != tc.wantW || h != tc.wantH || col != tc.col || row != tc.row {
				t.Errorf("got %d,%d offset %d,%d; want %d,%d offset %d,%d",
					w, h, col, row, tc.wantW, tc.wantH, tc.col, tc.row)
			}
		})
	}
}

func TestFillRectScales(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)

	c.FillRect(physics.NewRect(100, 100, 60, 60))
	// 10 logical units per column, 10 per sub-pixel.
	for y := 10; y < 16; y++ {
		for x := 10; x < 16; x++ {
			if !c.Pixel(x, y) {
				t.Fatalf("pixel (%d,%d) should be set", x, y)
			}
		}
	}
	if c.Pixel(16, 10) || c.Pixel(10, 16) || c.Pixel(9, 10) {
		t.Error("fill leaked outside the rectangle")
	}
}

func TestThinRectStaysVisible(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.FillRect(physics.NewRect(599, 400, 3, 15))

	if !c.Pixel(59, 40) {
		t.Error("a 3-unit wide shot should still cover one column")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)

	var first bytes.Buffer
	c.Render(&first)
	if strings.Count(first.String(), " ") != 50 {
		t.Errorf("first render should paint every cell, got %q", first.String())
	}

	var idle bytes.Buffer
	c.Render(&idle)
	if idle.Len() != 0 {
		t.Errorf("unchanged canvas should render nothing, got %q", idle.String())
	}

	c.Clear()
	c.FillRect(physics.NewRect(2, 2, 2, 2))
	var changed bytes.Buffer
	c.Render(&changed)
	if got := changed.String(); got != "\033[2;3H██" {
		t.Errorf("render = %q, want one run of two full blocks", got)
	}

	c.Clear()
	var cleared bytes.Buffer
	c.Render(&cleared)
	if got := cleared.String(); got != "\033[2;3H  " {
		t.Errorf("cleared cells should be blanked, got %q", got)
	}
}

func TestHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetFloat(0, 0)
	c.SetFloat(1, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H▀▄" {
		t.Errorf("render = %q", got)
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetOffset(5, 2)

	x, y := c.TerminalToLogical(65, 27)
	if x != 605 || y != 510 {
		t.Errorf("cell (65,27) maps to (%d,%d), want (605,510)", x, y)
	}

	col, row := c.LogicalToTerminal(605, 510)
	if col != 61 || row != 26 {
		t.Errorf("logical (605,510) maps to cell (%d,%d), want (61,26)", col, row)
	}
}

func TestPolygonFill(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillPolygon([]Point{{X: 10, Y: 2}, {X: 18, Y: 18}, {X: 2, Y: 18}})

	if !c.Pixel(10, 12) {
		t.Error("triangle interior should be filled")
	}
	if c.Pixel(1, 3) {
		t.Error("outside of triangle should stay empty")
	}
}

func TestParticlesExpire(t *testing.T) {
	ps := NewParticles(1)
	ps.Explode(physics.NewRect(100, 100, 60, 58), 12, 200, 0.5)
	if ps.Len() != 12 {
		t.Fatalf("expected 12 particles, got %d", ps.Len())
	}

	moved := false
	ps.Update(50 * time.Millisecond)
	ps.Each(func(x, y float64) {
		if x != 130 || y != 129 {
			moved = true
		}
	})
	if !moved {
		t.Error("particles should spread out")
	}

	ps.Update(time.Second)
	if ps.Len() != 0 {
		t.Errorf("particles should expire, %d left", ps.Len())
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	cw.WriteAt(2, 4, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[5;5Hhi" {
		t.Errorf("output = %q", got)
	}
}
