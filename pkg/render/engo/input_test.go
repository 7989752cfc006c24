package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/space-warriors/pkg/input"
)

func TestBindKeys(t *testing.T) {
	keymap := input.Keymap{
		"a":            input.ActionRotateLeft,
		input.KeyUp:    input.ActionThrustForward,
		input.KeyCtrlC: input.ActionQuit,
		"f13":          input.ActionFire,
	}

	bindings, unknown := bindKeys(keymap)

	if len(bindings) != 3 {
		t.Fatalf("bindKeys() returned %d bindings, expected 3", len(bindings))
	}
	if len(unknown) != 1 || unknown[0] != "f13" {
		t.Errorf("unknown = %v, expected [f13]", unknown)
	}

	expected := map[string]binding{
		"key:a":      {button: "key:a", key: engo.KeyA, action: input.ActionRotateLeft},
		"key:up":     {button: "key:up", key: engo.KeyArrowUp, action: input.ActionThrustForward},
		"key:ctrl+c": {button: "key:ctrl+c", key: engo.KeyC, ctrl: true, action: input.ActionQuit},
	}
	for _, b := range bindings {
		want, ok := expected[b.button]
		if !ok {
			t.Errorf("unexpected binding %q", b.button)
			continue
		}
		if b != want {
			t.Errorf("binding %q = %+v, expected %+v", b.button, b, want)
		}
	}
}

// newTestInput returns an input system reading from the held set.
func newTestInput(held map[string]bool) (*InputSystem, map[string][]engo.Key) {
	registered := make(map[string][]engo.Key)
	is := NewInputSystem(input.DefaultKeymap())
	is.register = func(name string, keys ...engo.Key) {
		registered[name] = keys
	}
	is.down = func(name string) bool {
		return held[name]
	}
	return is, registered
}

func TestInputSystem_Setup(t *testing.T) {
	is, registered := newTestInput(nil)
	is.Setup()

	if _, ok := registered[ctrlButton]; !ok {
		t.Error("ctrl button not registered")
	}
	if keys := registered["key:space"]; len(keys) != 1 || keys[0] != engo.KeySpace {
		t.Errorf("key:space registered as %v, expected [KeySpace]", keys)
	}
	if len(is.Unknown()) != 0 {
		t.Errorf("Unknown() = %v for the default keymap, expected none", is.Unknown())
	}
}

func TestInputSystem_KeyState(t *testing.T) {
	tests := []struct {
		name     string
		held     map[string]bool
		expected []input.Action
	}{
		{"nothing", nil, nil},
		{"wasd", map[string]bool{"key:w": true, "key:a": true}, []input.Action{input.ActionThrustForward, input.ActionRotateLeft}},
		{"arrow", map[string]bool{"key:right": true}, []input.Action{input.ActionRotateRight}},
		{"fire", map[string]bool{"key:space": true}, []input.Action{input.ActionFire}},
		{"c without ctrl", map[string]bool{"key:ctrl+c": true}, nil},
		{"ctrl+c", map[string]bool{"key:ctrl+c": true, ctrlButton: true}, []input.Action{input.ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, _ := newTestInput(tt.held)
			var expected input.KeyState
			for _, a := range tt.expected {
				expected.Press(a)
			}
			if got := is.KeyState(); got != expected {
				t.Errorf("KeyState() = %v, expected %v", got, expected)
			}
		})
	}
}
