package loop

import "time"

// Session defaults. Every value can be overridden through Options.

// Tick rate
const (
	DefaultTickRate = 120
)

// Terminal rendering
const (
	MaxTermWidth  = 150 // Columns; larger terminals get a border
	MaxTermHeight = 50  // Rows
)

// Shutdown
const (
	ShutdownNotice = 10 * time.Second // Notice shown before a forced disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Explosion particles
const (
	BlastParticles = 14
	BlastSpeed     = 180.0 // Logical units per second
	BlastLifetime  = 0.6   // Seconds
)
