package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/engine"
)

// actionRegistry maps canonical action names to bindings
var actionRegistry = map[string]Binding{
	"none":   {},
	"quit":   {Action: ActionQuit},
	"redraw": {Action: ActionRedraw},
	"left":   intent(engine.IntentLeft),
	"right":  intent(engine.IntentRight),
	"cw":     intent(engine.IntentClockwise),
	"ccw":    intent(engine.IntentCounterClockwise),
}

// Named keys that are not single printable runes
var specialKeyNames = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"ctrl-c": tcell.KeyCtrlC,
	"ctrl-l": tcell.KeyCtrlL,
}

// Rune aliases for keys awkward to write inline
var runeAliases = map[string]rune{
	"space": ' ',
	"comma": ',',
}

// ParseBindings parses "action=key" pairs separated by commas, e.g. "left=h,right=l,cw=k".
// Returns a sparse override table for Merge.
func ParseBindings(bindings string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]Binding),
		Runes:       make(map[rune]Binding),
	}

	bindings = strings.TrimSpace(bindings)
	if bindings == "" {
		return kt, nil
	}

	for _, pair := range strings.Split(bindings, ",") {
		name, key, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("binding %q: expected action=key", pair)
		}

		b, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("binding %q: unknown action %q", pair, name)
		}

		key = strings.TrimSpace(key)
		if special, ok := specialKeyNames[strings.ToLower(key)]; ok {
			kt.SpecialKeys[special] = b
			continue
		}
		if r, ok := runeAliases[strings.ToLower(key)]; ok {
			kt.Runes[r] = b
			continue
		}
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("binding %q: key %q is not a single character or known key name", pair, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		kt.Runes[r] = b
	}

	return kt, nil
}
