package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/invasion/internal/game"
)

// keyFor maps a tcell key event to a game key.
func keyFor(ev *tcell.EventKey) game.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.KeyLeft
	case tcell.KeyRight:
		return game.KeyRight
	case tcell.KeyEnter:
		return game.KeyStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.KeyQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'j', 'J':
			return game.KeyLeft
		case 'd', 'D', 'l', 'L':
			return game.KeyRight
		case ' ':
			return game.KeyFire
		case 'p', 'P':
			return game.KeyStart
		case 'q', 'Q':
			return game.KeyQuit
		case '1':
			return game.KeyEasy
		case '2':
			return game.KeyMedium
		case '3':
			return game.KeyHard
		}
	}
	return game.KeyNone
}
