package game

// Key identifies a logical control. Frontends map device keys onto these.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyQuit
	KeyStart
	KeyEasy
	KeyMedium
	KeyHard
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyFire:   "fire",
	KeyQuit:   "quit",
	KeyStart:  "start",
	KeyEasy:   "easy",
	KeyMedium: "medium",
	KeyHard:   "hard",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// EventKind classifies an input event.
type EventKind int

const (
	EventQuit        EventKind = iota // Window closed or connection lost
	EventKeyDown                      // Key pressed
	EventKeyUp                        // Key released
	EventPointerDown                  // Click at a logical position
)

// Event is one discrete input delivered to a tick.
type Event struct {
	Kind EventKind
	Key  Key
	X, Y int // Logical coordinates, EventPointerDown only
}

// Quit returns a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// KeyDown returns a key press event.
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// KeyUp returns a key release event.
func KeyUp(k Key) Event {
	return Event{Kind: EventKeyUp, Key: k}
}

// PointerDown returns a click at logical position (x, y).
func PointerDown(x, y int) Event {
	return Event{Kind: EventPointerDown, X: x, Y: y}
}
