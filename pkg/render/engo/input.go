// pkg/render/engo/input.go
package engo

import (
	"sort"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/space-warriors/pkg/input"
)

const (
	buttonPrefix = "key:"
	ctrlButton   = "ctrl"
	ctrlPrefix   = "ctrl+"
)

var engoKeys = map[string]engo.Key{
	input.KeyLeft:  engo.KeyArrowLeft,
	input.KeyRight: engo.KeyArrowRight,
	input.KeyUp:    engo.KeyArrowUp,
	input.KeyDown:  engo.KeyArrowDown,
	input.KeySpace: engo.KeySpace,
	input.KeyEsc:   engo.KeyEscape,

	"a": engo.KeyA, "b": engo.KeyB, "c": engo.KeyC, "d": engo.KeyD,
	"e": engo.KeyE, "f": engo.KeyF, "g": engo.KeyG, "h": engo.KeyH,
	"i": engo.KeyI, "j": engo.KeyJ, "k": engo.KeyK, "l": engo.KeyL,
	"m": engo.KeyM, "n": engo.KeyN, "o": engo.KeyO, "p": engo.KeyP,
	"q": engo.KeyQ, "r": engo.KeyR, "s": engo.KeyS, "t": engo.KeyT,
	"u": engo.KeyU, "v": engo.KeyV, "w": engo.KeyW, "x": engo.KeyX,
	"y": engo.KeyY, "z": engo.KeyZ,

	"0": engo.KeyZero, "1": engo.KeyOne, "2": engo.KeyTwo, "3": engo.KeyThree,
	"4": engo.KeyFour, "5": engo.KeyFive, "6": engo.KeySix, "7": engo.KeySeven,
	"8": engo.KeyEight, "9": engo.KeyNine,
}

// binding is one registered engo button and the action it drives.
type binding struct {
	button string
	key    engo.Key
	ctrl   bool
	action input.Action
}

// bindKeys turns a keymap into engo button bindings. Key names engo has no
// key for are returned separately.
func bindKeys(keymap input.Keymap) (bindings []binding, unknown []string) {
	for name, action := range keymap {
		keyName, ctrl := strings.CutPrefix(name, ctrlPrefix)
		key, ok := engoKeys[keyName]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		bindings = append(bindings, binding{
			button: buttonPrefix + name,
			key:    key,
			ctrl:   ctrl,
			action: action,
		})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].button < bindings[j].button })
	sort.Strings(unknown)
	return bindings, unknown
}

// InputSystem polls engo's keyboard state through the keymap. It implements
// input.KeySource.
type InputSystem struct {
	bindings []binding
	unknown  []string

	register func(name string, keys ...engo.Key)
	down     func(name string) bool
}

// NewInputSystem creates an input system for keymap.
func NewInputSystem(keymap input.Keymap) *InputSystem {
	if keymap == nil {
		keymap = input.DefaultKeymap()
	}
	bindings, unknown := bindKeys(keymap)
	return &InputSystem{
		bindings: bindings,
		unknown:  unknown,
		register: func(name string, keys ...engo.Key) {
			engo.Input.RegisterButton(name, keys...)
		},
		down: func(name string) bool {
			return engo.Input.Button(name).Down()
		},
	}
}

// Setup registers one engo button per bound key. It needs engo.Input, so
// call it from the scene's Setup.
func (is *InputSystem) Setup() {
	is.register(ctrlButton, engo.KeyLeftControl, engo.KeyRightControl)
	for _, b := range is.bindings {
		is.register(b.button, b.key)
	}
}

// Unknown returns the keymap names that have no engo key.
func (is *InputSystem) Unknown() []string {
	return is.unknown
}

// KeyState returns the actions whose keys are held.
func (is *InputSystem) KeyState() input.KeyState {
	var ks input.KeyState
	ctrl := is.down(ctrlButton)
	for _, b := range is.bindings {
		if b.ctrl && !ctrl {
			continue
		}
		if is.down(b.button) {
			ks.Press(b.action)
		}
	}
	return ks
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
}

// Update satisfies the ecs.System interface. Keys are read on demand by
// KeyState.
func (is *InputSystem) Update(dt float32) {
}
