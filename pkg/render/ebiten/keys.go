// pkg/render/ebiten/keys.go
package ebiten

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/space-warriors/pkg/input"
)

// keyName converts an ebiten key to the key name used by input.Keymap.
func keyName(k ebiten.Key, ctrl bool) string {
	switch k {
	case ebiten.KeyArrowUp:
		return input.KeyUp
	case ebiten.KeyArrowDown:
		return input.KeyDown
	case ebiten.KeyArrowLeft:
		return input.KeyLeft
	case ebiten.KeyArrowRight:
		return input.KeyRight
	case ebiten.KeySpace:
		return input.KeySpace
	case ebiten.KeyEscape:
		return input.KeyEsc
	case ebiten.KeyC:
		if ctrl {
			return input.KeyCtrlC
		}
	}
	return strings.ToLower(k.String())
}

// keyState resolves the pressed keys into held actions.
func keyState(keymap input.Keymap, pressed []ebiten.Key) input.KeyState {
	ctrl := false
	for _, k := range pressed {
		if k == ebiten.KeyControl || k == ebiten.KeyControlLeft || k == ebiten.KeyControlRight {
			ctrl = true
			break
		}
	}

	var keys input.KeyState
	for _, k := range pressed {
		if a, ok := keymap.Lookup(keyName(k, ctrl)); ok {
			keys.Press(a)
		}
	}
	return keys
}
