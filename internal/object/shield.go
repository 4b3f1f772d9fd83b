package object

import "github.com/tomz197/invasion/internal/settings"

// Shield is a static obstacle consumed by any collision.
type Shield struct {
	Entity
}

// ShieldColumns returns how many shields fit in one row.
func ShieldColumns(p *settings.Profile) int {
	cols := floorDiv(p.ScreenWidth-2*p.ShieldWidth, 3*p.ShieldWidth)
	if cols < 0 {
		return 0
	}
	return cols
}

// NewShields lays out ShieldRows rows of shields above the ship.
// Hard difficulty has zero rows and therefore no shields.
func NewShields(p *settings.Profile) []*Shield {
	cols := ShieldColumns(p)
	rows := p.ShieldRows
	if rows <= 0 || cols == 0 {
		return nil
	}

	third := p.ScreenWidth / 3
	shields := make([]*Shield, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := col*third + third
			y := p.ScreenHeight - 2*p.ShipHeight - 2*p.ShieldHeight*row
			shields = append(shields, &Shield{Entity: NewEntity(float64(x), float64(y), p.ShieldWidth, p.ShieldHeight)})
		}
	}
	return shields
}
