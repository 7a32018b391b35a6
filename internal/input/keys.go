package input

import (
	"strings"

	"github.com/smileynet/treenav/internal/nav"
)

// Key names a key press using DOM key values.
type Key string

const (
	KeyArrowRight Key = "ArrowRight"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowUp    Key = "ArrowUp"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyEnter      Key = "Enter"
)

var keyActions = map[Key]nav.Action{
	KeyArrowRight: nav.MoveRight,
	KeyArrowLeft:  nav.MoveLeft,
	KeyArrowDown:  nav.MoveDown,
	KeyArrowUp:    nav.MoveUp,
	KeyHome:       nav.MoveHome,
	KeyEnd:        nav.MoveEnd,
	KeyEnter:      nav.Activate,
}

// Action returns the engine action bound to k. Unmapped keys report false.
func (k Key) Action() (nav.Action, bool) {
	a, ok := keyActions[k]
	return a, ok
}

var keyAliases = map[string]Key{
	"arrowright": KeyArrowRight,
	"right":      KeyArrowRight,
	"arrowleft":  KeyArrowLeft,
	"left":       KeyArrowLeft,
	"arrowdown":  KeyArrowDown,
	"down":       KeyArrowDown,
	"arrowup":    KeyArrowUp,
	"up":         KeyArrowUp,
	"home":       KeyHome,
	"end":        KeyEnd,
	"enter":      KeyEnter,
	"return":     KeyEnter,
}

// ParseKey accepts DOM key names case-insensitively plus the short forms
// right, left, down, up and return.
func ParseKey(s string) (Key, bool) {
	k, ok := keyAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}
