// Package settings holds the tunable gameplay parameters: the static layout
// constants, the per-difficulty presets and the escalation applied when a
// level is cleared.
package settings

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// MaxAlienFireRate caps the fire-rate denominator during escalation.
const MaxAlienFireRate = 1 << 30

// Difficulty names one of the dynamic presets.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every preset in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// String returns the lowercase preset name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a preset name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Static holds parameters that never change during play.
type Static struct {
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`

	ShipWidth  int `toml:"ship_width"`
	ShipHeight int `toml:"ship_height"`
	ShipLimit  int `toml:"ship_limit"`

	BulletWidth    int `toml:"bullet_width"`
	BulletHeight   int `toml:"bullet_height"`
	BulletsAllowed int `toml:"bullets_allowed"`

	AlienWidth       int     `toml:"alien_width"`
	AlienHeight      int     `toml:"alien_height"`
	FleetDropSpeed   int     `toml:"fleet_drop_speed"`
	AlienBulletSpeed float64 `toml:"alien_bullet_speed"`

	ShieldWidth  int `toml:"shield_width"`
	ShieldHeight int `toml:"shield_height"`

	SpeedupScale  float64 `toml:"speedup_scale"`  // Speed multiplier per cleared level
	ScoreScale    float64 `toml:"score_scale"`    // Point multiplier per cleared level
	FireRateScale float64 `toml:"fire_rate_scale"` // Rounded before it multiplies the fire-rate denominator

	HitPause time.Duration `toml:"-"` // Freeze after losing a ship; see fileStatic
}

// Dynamic holds parameters that a difficulty preset sets and that the
// escalation step changes as levels are cleared.
type Dynamic struct {
	ShipSpeed      float64 `toml:"ship_speed"`
	BulletSpeed    float64 `toml:"bullet_speed"`
	AlienSpeed     float64 `toml:"alien_speed"`
	AlienPoints    int     `toml:"alien_points"`
	AlienFireRate  int     `toml:"alien_fire_rate"` // Inverse firing probability per alien per tick
	FleetDirection int     `toml:"fleet_direction"` // 1 is right, -1 is left
	ShieldRows     int     `toml:"shield_rows"`
}

// Presets maps each difficulty to its dynamic defaults.
type Presets struct {
	Easy   Dynamic `toml:"easy"`
	Medium Dynamic `toml:"medium"`
	Hard   Dynamic `toml:"hard"`
}

// For returns the preset for d. Unknown values fall back to medium.
func (p Presets) For(d Difficulty) Dynamic {
	switch d {
	case Easy:
		return p.Easy
	case Hard:
		return p.Hard
	default:
		return p.Medium
	}
}

// DefaultStatic returns the stock layout for a 1200x800 playfield.
func DefaultStatic() Static {
	return Static{
		ScreenWidth:  1200,
		ScreenHeight: 800,

		ShipWidth:  60,
		ShipHeight: 48,
		ShipLimit:  3,

		BulletWidth:    3,
		BulletHeight:   15,
		BulletsAllowed: 3,

		AlienWidth:       60,
		AlienHeight:      58,
		FleetDropSpeed:   10,
		AlienBulletSpeed: 0.3,

		ShieldWidth:  100,
		ShieldHeight: 30,

		SpeedupScale:  1.1,
		ScoreScale:    1.5,
		FireRateScale: 1.05,

		HitPause: 500 * time.Millisecond,
	}
}

// DefaultPresets returns the stock easy, medium and hard presets.
func DefaultPresets() Presets {
	return Presets{
		Easy: Dynamic{
			ShipSpeed:      1.5,
			BulletSpeed:    1.5,
			AlienSpeed:     0.3,
			AlienPoints:    20,
			AlienFireRate:  25000,
			FleetDirection: 1,
			ShieldRows:     2,
		},
		Medium: Dynamic{
			ShipSpeed:      1.5,
			BulletSpeed:    1.5,
			AlienSpeed:     0.6,
			AlienPoints:    50,
			AlienFireRate:  20000,
			FleetDirection: 1,
			ShieldRows:     1,
		},
		Hard: Dynamic{
			ShipSpeed:      1.5,
			BulletSpeed:    1.5,
			AlienSpeed:     1,
			AlienPoints:    80,
			AlienFireRate:  15000,
			FleetDirection: 1,
			ShieldRows:     0,
		},
	}
}

// Profile is the active parameter set. Exactly one is owned by a game and
// passed explicitly to every component that reads it.
type Profile struct {
	Static
	Dynamic

	Difficulty Difficulty
	Presets    Presets
}

// Default returns a profile with stock constants and the medium preset active.
func Default() *Profile {
	return New(DefaultStatic(), DefaultPresets())
}

// New builds a profile from the given constants and presets, medium active.
func New(static Static, presets Presets) *Profile {
	p := &Profile{Static: static, Presets: presets}
	p.Apply(Medium)
	return p
}

// Apply replaces every dynamic field with the preset for d.
// Nothing from the previous dynamic state is kept.
func (p *Profile) Apply(d Difficulty) {
	switch d {
	case Easy, Medium, Hard:
	default:
		d = Medium
	}
	p.Difficulty = d
	p.Dynamic = p.Presets.For(d)
}

// Reset restores the medium preset.
func (p *Profile) Reset() {
	p.Apply(Medium)
}

// IncreaseSpeed applies one level of escalation.
func (p *Profile) IncreaseSpeed() {
	p.ShipSpeed *= p.SpeedupScale
	p.BulletSpeed *= p.SpeedupScale
	p.AlienSpeed *= p.SpeedupScale
	if scale := int(math.Round(p.FireRateScale)); scale > 1 {
		if p.AlienFireRate > MaxAlienFireRate/scale {
			p.AlienFireRate = MaxAlienFireRate
		} else {
			p.AlienFireRate *= scale
		}
	}

	p.AlienPoints = int(float64(p.AlienPoints) * p.ScoreScale)
}

// Clone returns an independent copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	return &c
}

// Validate checks that the profile can drive a game.
func (p *Profile) Validate() error {
	s := p.Static
	switch {
	case s.ScreenWidth <= 0 || s.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalidProfile, s.ScreenWidth, s.ScreenHeight)
	case s.ShipWidth <= 0 || s.ShipHeight <= 0:
		return fmt.Errorf("%w: ship size must be positive", ErrInvalidProfile)
	case s.AlienWidth <= 0 || s.AlienHeight <= 0:
		return fmt.Errorf("%w: alien size must be positive", ErrInvalidProfile)
	case s.ShieldWidth <= 0 || s.ShieldHeight <= 0:
		return fmt.Errorf("%w: shield size must be positive", ErrInvalidProfile)
	case s.BulletWidth <= 0 || s.BulletHeight <= 0:
		return fmt.Errorf("%w: bullet size must be positive", ErrInvalidProfile)
	case s.ShipLimit < 1:
		return fmt.Errorf("%w: ship_limit must be at least 1, got %d", ErrInvalidProfile, s.ShipLimit)
	case s.BulletsAllowed < 0:
		return fmt.Errorf("%w: bullets_allowed must not be negative", ErrInvalidProfile)
	case s.SpeedupScale < 1 || s.ScoreScale < 1:
		return fmt.Errorf("%w: escalation scales must be at least 1", ErrInvalidProfile)
	case s.FireRateScale < 0.5:
		return fmt.Errorf("%w: fire_rate_scale must round to at least 1, got %g", ErrInvalidProfile, s.FireRateScale)
	case s.HitPause < 0:
		return fmt.Errorf("%w: hit_pause must not be negative", ErrInvalidProfile)
	}
	for _, d := range Difficulties {
		dyn := p.Presets.For(d)
		if dyn.AlienFireRate < 1 {
			return fmt.Errorf("%w: %s alien_fire_rate must be at least 1", ErrInvalidProfile, d)
		}
		if dyn.FleetDirection != 1 && dyn.FleetDirection != -1 {
			return fmt.Errorf("%w: %s fleet_direction must be 1 or -1", ErrInvalidProfile, d)
		}
		if dyn.ShieldRows < 0 {
			return fmt.Errorf("%w: %s shield_rows must not be negative", ErrInvalidProfile, d)
		}
		if dyn.ShipSpeed <= 0 || dyn.BulletSpeed <= 0 || dyn.AlienSpeed <= 0 {
			return fmt.Errorf("%w: %s speeds must be positive", ErrInvalidProfile, d)
		}
	}
	return nil
}
