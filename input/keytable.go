package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/engine"
)

// KeyTable maps key events to bindings
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Escape)
	SpecialKeys map[tcell.Key]Binding

	// Printable rune bindings
	Runes map[rune]Binding
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Binding{
			tcell.KeyEscape: {Action: ActionQuit},
			tcell.KeyCtrlC:  {Action: ActionQuit},
			tcell.KeyCtrlL:  {Action: ActionRedraw},
			tcell.KeyLeft:   intent(engine.IntentLeft),
			tcell.KeyRight:  intent(engine.IntentRight),
			tcell.KeyUp:     intent(engine.IntentClockwise),
		},
		Runes: map[rune]Binding{
			'a': intent(engine.IntentLeft),
			'd': intent(engine.IntentRight),
			'q': intent(engine.IntentCounterClockwise),
			'e': intent(engine.IntentClockwise),
		},
	}
}

// Lookup resolves a key event; unbound keys return ActionNone
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Binding {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}

// Merge overlays the non-nil maps of override onto kt.
// A binding with ActionNone unbinds the key.
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, b := range override.SpecialKeys {
		if b.Action == ActionNone {
			delete(kt.SpecialKeys, k)
			continue
		}
		kt.SpecialKeys[k] = b
	}
	for r, b := range override.Runes {
		if b.Action == ActionNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = b
	}
}
