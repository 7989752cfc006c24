// Package input turns raw key state into the per-tick intents consumed by
// the simulation. Frontends translate their native key events into Action
// values; the Mapper decides which actions are held and which fire once.
package input

// Intents is the immutable per-tick command set handed to the engine.
type Intents struct {
	RotateLeft     bool
	RotateRight    bool
	ThrustForward  bool
	ThrustBackward bool
	Fire           bool // edge-triggered
	Restart        bool // edge-triggered
	Quit           bool // edge-triggered
}

// Action is a logical control independent of any keyboard layout.
type Action uint8

const (
	ActionRotateLeft Action = iota
	ActionRotateRight
	ActionThrustForward
	ActionThrustBackward
	ActionFire
	ActionRestart
	ActionQuit
	actionCount
)

var actionNames = [actionCount]string{
	"rotate_left", "rotate_right", "thrust_forward", "thrust_backward",
	"fire", "restart", "quit",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// EdgeTriggered reports whether the action fires once per press rather than
// every tick it is held.
func (a Action) EdgeTriggered() bool {
	return a == ActionFire || a == ActionRestart || a == ActionQuit
}

// KeyState records which actions are down this tick.
type KeyState [actionCount]bool

// Press marks a as down.
func (k *KeyState) Press(a Action) {
	if a < actionCount {
		k[a] = true
	}
}

// Release marks a as up.
func (k *KeyState) Release(a Action) {
	if a < actionCount {
		k[a] = false
	}
}

// Down reports whether a is held.
func (k KeyState) Down(a Action) bool {
	return a < actionCount && k[a]
}

// Mapper converts successive KeyState samples into Intents. It remembers the
// previous sample so edge-triggered actions fire once per press. A Mapper
// belongs to a single frontend and is not safe for concurrent use.
type Mapper struct {
	prev KeyState
}

// NewMapper creates a mapper with every key released.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map returns the intents for one tick.
func (m *Mapper) Map(keys KeyState) Intents {
	edge := func(a Action) bool {
		return keys[a] && !m.prev[a]
	}

	intents := Intents{
		RotateLeft:     keys[ActionRotateLeft],
		RotateRight:    keys[ActionRotateRight],
		ThrustForward:  keys[ActionThrustForward],
		ThrustBackward: keys[ActionThrustBackward],
		Fire:           edge(ActionFire),
		Restart:        edge(ActionRestart),
		Quit:           edge(ActionQuit),
	}

	m.prev = keys
	return intents
}

// Reset forgets the previous sample so a key still held counts as a fresh press.
func (m *Mapper) Reset() {
	m.prev = KeyState{}
}

// KeySource reports which actions are currently down.
type KeySource interface {
	KeyState() KeyState
}

// Sampler pulls key state from a source and maps it to intents, one call per
// tick. A source that reports Closed() true turns into a quit intent.
type Sampler struct {
	keys   KeySource
	mapper *Mapper
}

// NewSampler creates a sampler over keys.
func NewSampler(keys KeySource) *Sampler {
	return &Sampler{keys: keys, mapper: NewMapper()}
}

// Intents returns the intents for the next tick.
func (s *Sampler) Intents() Intents {
	intents := s.mapper.Map(s.keys.KeyState())
	if c, ok := s.keys.(interface{ Closed() bool }); ok && c.Closed() {
		intents.Quit = true
	}
	return intents
}
