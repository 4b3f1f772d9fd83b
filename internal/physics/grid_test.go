package physics

import (
	"slices"
	"testing"
)

func queryAll(g *Grid, r Rect) []int {
	var got []int
	g.Query(r, func(index int) bool {
		got = append(got, index)
		return false
	})
	slices.Sort(got)
	return got
}

func TestGridFindsOverlappingItems(t *testing.T) {
	g := NewGrid(1200, 800, 100)
	items := []Rect{
		NewRect(10, 10, 60, 58),    // 0: first cell
		NewRect(150, 150, 60, 58),  // 1: spans four cells
		NewRect(1000, 700, 60, 58), // 2: far corner
		NewRect(90, 90, 30, 30),    // 3: crosses four cells
	}
	for i, r := range items {
		g.Insert(r, i)
	}

	// Every overlapping pair must be a candidate.
	for _, q := range []Rect{
		NewRect(50, 50, 3, 15),
		NewRect(200, 200, 3, 15),
		NewRect(1050, 750, 3, 15),
		NewRect(0, 0, 1200, 800),
	} {
		got := queryAll(g, q)
		for i, r := range items {
			if q.Overlaps(r) && !slices.Contains(got, i) {
				t.Errorf("query %v missed overlapping item %d %v, got %v", q, i, r, got)
			}
		}
	}
}

func TestGridReportsEachItemOnce(t *testing.T) {
	g := NewGrid(400, 400, 50)
	g.Insert(NewRect(0, 0, 400, 400), 0)

	got := queryAll(g, NewRect(0, 0, 400, 400))
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("query over many shared cells = %v, want [0]", got)
	}
	// A second query reports it again.
	if got := queryAll(g, NewRect(10, 10, 5, 5)); len(got) != 1 {
		t.Errorf("second query = %v, want [0]", got)
	}
}

func TestGridSkipsDistantItems(t *testing.T) {
	g := NewGrid(1200, 800, 100)
	g.Insert(NewRect(1000, 700, 60, 58), 0)

	if got := queryAll(g, NewRect(10, 10, 3, 15)); len(got) != 0 {
		t.Errorf("query in the opposite corner = %v, want none", got)
	}
}

func TestGridClampsOffscreen(t *testing.T) {
	g := NewGrid(1200, 800, 100)
	g.Insert(NewRect(500, -20, 3, 15), 0)  // Above the top
	g.Insert(NewRect(500, 810, 3, 15), 1)  // Below the bottom
	g.Insert(NewRect(-40, 300, 60, 58), 2) // Past the left edge

	if got := queryAll(g, NewRect(500, -30, 3, 15)); !slices.Contains(got, 0) {
		t.Errorf("offscreen top item not found: %v", got)
	}
	if got := queryAll(g, NewRect(501, 805, 3, 15)); !slices.Contains(got, 1) {
		t.Errorf("offscreen bottom item not found: %v", got)
	}
	if got := queryAll(g, NewRect(0, 320, 3, 15)); !slices.Contains(got, 2) {
		t.Errorf("left edge item not found: %v", got)
	}
}

func TestGridEarlyStopAndClear(t *testing.T) {
	g := NewGrid(100, 100, 10)
	for i := 0; i < 5; i++ {
		g.Insert(NewRect(0, 0, 10, 10), i)
	}

	calls := 0
	g.Query(NewRect(0, 0, 10, 10), func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("early stop made %d calls, want 1", calls)
	}

	g.Clear()
	if got := queryAll(g, NewRect(0, 0, 100, 100)); len(got) != 0 {
		t.Errorf("cleared grid returned %v", got)
	}
}
