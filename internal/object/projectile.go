package object

// Owner identifies who fired a projectile and therefore its direction.
type Owner int

const (
	PlayerOwned Owner = iota // Travels up
	EnemyOwned               // Travels down
)

// Projectile is a shot travelling along the vertical axis at a fixed
// per-tick speed captured when it was fired.
type Projectile struct {
	Entity
	Owner Owner
	Speed float64
}

// NewPlayerProjectile creates a shot whose top-center sits at (cx, top).
func NewPlayerProjectile(cx, top, w, h int, speed float64) *Projectile {
	return &Projectile{
		Entity: NewEntity(float64(cx-w/2), float64(top), w, h),
		Owner:  PlayerOwned,
		Speed:  speed,
	}
}

// NewEnemyProjectile creates a shot whose top-center sits at (cx, top).
func NewEnemyProjectile(cx, top, w, h int, speed float64) *Projectile {
	return &Projectile{
		Entity: NewEntity(float64(cx-w/2), float64(top), w, h),
		Owner:  EnemyOwned,
		Speed:  speed,
	}
}

// Advance moves the projectile one tick along its direction.
func (p *Projectile) Advance() {
	if p.Owner == PlayerOwned {
		p.Move(0, -p.Speed)
	} else {
		p.Move(0, p.Speed)
	}
}

// Expired reports whether the projectile has left the screen.
func (p *Projectile) Expired(screenHeight int) bool {
	if p.Owner == PlayerOwned {
		return p.Rect.Bottom() <= 0
	}
	return p.Rect.Top() >= screenHeight
}

// AdvanceProjectiles moves every projectile and drops the ones that left
// the screen. The returned slice reuses the backing array.
func AdvanceProjectiles(projectiles []*Projectile, screenHeight int) []*Projectile {
	for _, p := range projectiles {
		p.Advance()
		if p.Expired(screenHeight) {
			p.MarkDestroyed()
		}
	}
	return Compact(projectiles)
}
