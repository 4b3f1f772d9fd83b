package game

import (
	"github.com/tomz197/invasion/internal/physics"
	"github.com/tomz197/invasion/internal/settings"
)

// Menu button geometry in logical units.
const (
	ButtonWidth   = 200
	ButtonHeight  = 50
	DifficultyRow = 520 // Top edge of the difficulty buttons
)

// Button identifies a menu control.
type Button int

const (
	ButtonPlay Button = iota
	ButtonEasy
	ButtonMedium
	ButtonHard
)

// MenuButton is a clickable menu control.
type MenuButton struct {
	Button   Button
	Label    string
	Rect     physics.Rect
	Selected bool // Difficulty button matching the active profile
}

// Menu lays out the menu for the profile's screen. Play is centered on
// the screen; the difficulty buttons share one row with Easy on the left
// edge, Medium centered and Hard on the right edge.
func Menu(p *settings.Profile) []MenuButton {
	w, h := p.ScreenWidth, p.ScreenHeight
	centerX := w/2 - ButtonWidth/2

	buttons := []MenuButton{
		{Button: ButtonPlay, Label: "Play", Rect: physics.NewRect(centerX, h/2-ButtonHeight/2, ButtonWidth, ButtonHeight)},
		{Button: ButtonEasy, Label: "Easy", Rect: physics.NewRect(0, DifficultyRow, ButtonWidth, ButtonHeight)},
		{Button: ButtonMedium, Label: "Medium", Rect: physics.NewRect(centerX, DifficultyRow, ButtonWidth, ButtonHeight)},
		{Button: ButtonHard, Label: "Hard", Rect: physics.NewRect(w-ButtonWidth, DifficultyRow, ButtonWidth, ButtonHeight)},
	}
	for i := range buttons {
		if d, ok := buttons[i].Button.Difficulty(); ok && d == p.Difficulty {
			buttons[i].Selected = true
		}
	}
	return buttons
}

// Difficulty returns the preset a difficulty button selects.
func (b Button) Difficulty() (settings.Difficulty, bool) {
	switch b {
	case ButtonEasy:
		return settings.Easy, true
	case ButtonMedium:
		return settings.Medium, true
	case ButtonHard:
		return settings.Hard, true
	}
	return 0, false
}

// HitTest returns the buttons under (x, y), difficulty buttons first.
func HitTest(buttons []MenuButton, x, y int) []Button {
	var hits []Button
	for _, b := range buttons {
		if b.Button != ButtonPlay && b.Rect.Contains(x, y) {
			hits = append(hits, b.Button)
		}
	}
	for _, b := range buttons {
		if b.Button == ButtonPlay && b.Rect.Contains(x, y) {
			hits = append(hits, b.Button)
		}
	}
	return hits
}
