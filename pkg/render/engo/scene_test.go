package engo

import (
	"context"
	"testing"
	"time"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/input"
)

type fakeKeys struct {
	state input.KeyState
}

func (k *fakeKeys) KeyState() input.KeyState {
	return k.state
}

func newTestSystem(ctx context.Context, keys input.KeySource) (*GameSystem, *engine.Game, *EngoRenderer, *int) {
	cfg := config.DefaultConfig()
	game := engine.NewGame(cfg, engine.WithRand(engine.NewRand(1)))
	snap := game.Snapshot()

	sink := newFakeSink()
	renderer := NewEngoRenderer(sink, newTestAssets(), NewCamera(snap.Viewport))
	hud := newTestHUD(sink)

	gs := NewGameSystem(ctx, game, keys, renderer, hud, nil)
	exits := 0
	gs.exit = func() { exits++ }
	return gs, game, renderer, &exits
}

func TestGameSystem_AdvanceTicks(t *testing.T) {
	gs, game, renderer, exits := newTestSystem(context.Background(), &fakeKeys{})
	step := time.Second / 60

	gs.advance(step / 2)
	if game.CurrentTick != 0 {
		t.Errorf("CurrentTick after half a step = %d, expected 0", game.CurrentTick)
	}
	if renderer.Count() != 0 {
		t.Errorf("Count() before the first tick = %d, expected 0", renderer.Count())
	}

	gs.advance(step / 2)
	if game.CurrentTick != 1 {
		t.Errorf("CurrentTick after one step = %d, expected 1", game.CurrentTick)
	}
	if renderer.Count() == 0 {
		t.Error("Count() after a tick = 0, expected the scene to be populated")
	}
	if *exits != 0 || gs.Done() {
		t.Error("system stopped without a quit")
	}
}

func TestGameSystem_CatchUpIsBounded(t *testing.T) {
	gs, game, _, _ := newTestSystem(context.Background(), &fakeKeys{})

	gs.advance(time.Second)

	expected := uint64(config.DefaultConfig().Simulation.MaxCatchUpTicks)
	if game.CurrentTick != expected {
		t.Errorf("CurrentTick after a one second stall = %d, expected %d", game.CurrentTick, expected)
	}
}

func TestGameSystem_QuitExits(t *testing.T) {
	keys := &fakeKeys{}
	keys.state.Press(input.ActionQuit)
	gs, _, _, exits := newTestSystem(context.Background(), keys)

	gs.advance(time.Second / 60)
	if !gs.Done() {
		t.Fatal("Done() = false after a quit key")
	}
	gs.advance(time.Second / 60)
	if *exits != 1 {
		t.Errorf("exit called %d times, expected 1", *exits)
	}
}

func TestGameSystem_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gs, game, _, exits := newTestSystem(ctx, &fakeKeys{})

	gs.advance(time.Second / 60)

	if game.CurrentTick != 0 {
		t.Errorf("CurrentTick = %d after cancel, expected 0", game.CurrentTick)
	}
	if !gs.Done() || *exits != 1 {
		t.Errorf("Done() = %v exits = %d, expected true and 1", gs.Done(), *exits)
	}
}
