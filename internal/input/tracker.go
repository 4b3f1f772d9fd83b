package input

import (
	"time"

	"github.com/tomz197/invasion/internal/game"
)

// DefaultHoldDuration is how long a steering key is considered held after
// its last byte. Terminals send no release events, so a release is
// inferred once the auto-repeat stops arriving.
const DefaultHoldDuration = 120 * time.Millisecond

// EscapeTimeout is how long an unfinished escape sequence waits for more
// bytes before it is dropped as a lone escape key.
const EscapeTimeout = 50 * time.Millisecond

// PointerMapper converts a zero-based terminal cell to logical coordinates.
type PointerMapper func(col, row int) (x, y int)

// Tracker converts key presses into key down and key up events.
type Tracker struct {
	hold     time.Duration
	lastSeen map[game.Key]time.Time
	pending  []byte
	pendAt   time.Time // When the pending sequence started
	queued   []game.Event
	events   []game.Event

	// MapPointer converts clicks to logical coordinates. Nil keeps cells.
	MapPointer PointerMapper
}

// NewTracker creates a tracker with the given hold duration.
// A non-positive duration selects DefaultHoldDuration.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Tracker{
		hold:     hold,
		lastSeen: make(map[game.Key]time.Time),
	}
}

// steering reports whether k is a held control rather than a one-shot.
func steering(k game.Key) bool {
	return k == game.KeyLeft || k == game.KeyRight
}

// Feed decodes buf received at now and returns the events for this tick.
// The returned slice is reused by the next call.
func (t *Tracker) Feed(buf []byte, now time.Time) []game.Event {
	carried := 0
	if len(t.pending) > 0 {
		if len(buf) == 0 && now.Sub(t.pendAt) >= EscapeTimeout {
			t.pending = nil
		} else {
			carried = len(t.pending)
			buf = append(t.pending, buf...)
			t.pending = nil
		}
	}
	tokens, rest := parse(buf)
	if len(rest) > 0 {
		// A rest reaching into the carried bytes is the same sequence.
		if len(rest) <= len(buf)-carried {
			t.pendAt = now
		}
		t.pending = append([]byte(nil), rest...)
	}

	for _, tok := range tokens {
		if tok.pointer {
			t.Click(tok.col, tok.row)
			continue
		}
		t.Press(tok.key, now)
	}
	return t.Flush(now)
}

// Press records a key press. Steering keys emit a key down only when they
// were not already held.
func (t *Tracker) Press(k game.Key, now time.Time) {
	if !steering(k) {
		t.queued = append(t.queued, game.KeyDown(k))
		return
	}
	if _, held := t.lastSeen[k]; !held {
		t.queued = append(t.queued, game.KeyDown(k))
	}
	t.lastSeen[k] = now
}

// Click records a pointer press on a zero-based terminal cell.
func (t *Tracker) Click(col, row int) {
	x, y := col, row
	if t.MapPointer != nil {
		x, y = t.MapPointer(col, row)
	}
	t.queued = append(t.queued, game.PointerDown(x, y))
}

// Flush releases steering keys not seen for the hold duration and returns
// everything queued since the last Flush. The returned slice is reused by
// the next call.
func (t *Tracker) Flush(now time.Time) []game.Event {
	for _, k := range []game.Key{game.KeyLeft, game.KeyRight} {
		seen, held := t.lastSeen[k]
		if held && now.Sub(seen) >= t.hold {
			delete(t.lastSeen, k)
			t.queued = append(t.queued, game.KeyUp(k))
		}
	}
	t.events = append(t.events[:0], t.queued...)
	t.queued = t.queued[:0]
	return t.events
}

// Held reports whether k is currently considered held.
func (t *Tracker) Held(k game.Key) bool {
	_, ok := t.lastSeen[k]
	return ok
}
