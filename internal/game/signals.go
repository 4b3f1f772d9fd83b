package game

// Signal reports something that happened during a tick. Frontends use
// signals for sound, particles and the pointer; the session runner uses
// them for logging.
type Signal int

const (
	SignalFired          Signal = iota // Player shot spawned
	SignalEnemyFired                   // Enemy shot spawned
	SignalEnemyDestroyed               // At least one enemy was shot down
	SignalShieldHit                    // At least one shield was consumed
	SignalShipHit                      // Ship lost a life
	SignalLevelCleared                 // Fleet destroyed, next level generated
	SignalGameOver                     // Last life lost
	SignalStarted                      // Session started
	SignalDifficulty                   // Difficulty changed from the menu
	SignalHighScore                    // High score raised
	SignalPointerVisible               // Show the pointer and menu
	SignalPointerHidden                // Hide the pointer
	SignalQuit                         // Quit requested
)

var signalNames = [...]string{
	SignalFired:          "fired",
	SignalEnemyFired:     "enemy-fired",
	SignalEnemyDestroyed: "enemy-destroyed",
	SignalShieldHit:      "shield-hit",
	SignalShipHit:        "ship-hit",
	SignalLevelCleared:   "level-cleared",
	SignalGameOver:       "game-over",
	SignalStarted:        "started",
	SignalDifficulty:     "difficulty",
	SignalHighScore:      "high-score",
	SignalPointerVisible: "pointer-visible",
	SignalPointerHidden:  "pointer-hidden",
	SignalQuit:           "quit",
}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return "unknown"
}

// Has reports whether signals contains s.
func Has(signals []Signal, s Signal) bool {
	for _, got := range signals {
		if got == s {
			return true
		}
	}
	return false
}
