package draw

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/invasion/internal/physics"
)

// Particle is a short-lived explosion fragment in logical coordinates.
type Particle struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity in logical units per second
	Lifetime float64 // Seconds remaining
	Drag     float64 // Velocity decay per 1/60s (1.0 = no drag)
}

// Particles is a set of live explosion fragments.
type Particles struct {
	items []Particle
	rng   *rand.Rand
}

// NewParticles creates an empty particle set.
func NewParticles(seed int64) *Particles {
	return &Particles{rng: rand.New(rand.NewSource(seed))}
}

// Explode bursts count particles out of the center of r.
func (ps *Particles) Explode(r physics.Rect, count int, speed, lifetime float64) {
	cx := float64(r.X) + float64(r.W)/2
	cy := float64(r.Y) + float64(r.H)/2
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%.
		spd := speed * (0.5 + ps.rng.Float64())
		life := lifetime * (0.5 + ps.rng.Float64()*0.5)
		ps.items = append(ps.items, Particle{
			X:        cx,
			Y:        cy,
			VX:       math.Cos(angle) * spd,
			VY:       math.Sin(angle) * spd,
			Lifetime: life,
			Drag:     0.95,
		})
	}
}

// Update advances every particle by dt and drops the expired ones.
func (ps *Particles) Update(dt time.Duration) {
	secs := dt.Seconds()
	kept := ps.items[:0]
	for _, p := range ps.items {
		p.Lifetime -= secs
		if p.Lifetime <= 0 {
			continue
		}
		drag := math.Pow(p.Drag, secs*60)
		p.VX *= drag
		p.VY *= drag
		p.X += p.VX * secs
		p.Y += p.VY * secs
		kept = append(kept, p)
	}
	ps.items = kept
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// Each calls fn with the position of every live particle.
func (ps *Particles) Each(fn func(x, y float64)) {
	for _, p := range ps.items {
		fn(p.X, p.Y)
	}
}

// Draw plots every particle on the canvas.
func (ps *Particles) Draw(c *Canvas) {
	ps.Each(c.SetFloat)
}

// Reset removes every particle.
func (ps *Particles) Reset() {
	ps.items = ps.items[:0]
}
