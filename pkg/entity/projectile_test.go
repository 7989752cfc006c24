package entity

import (
	"testing"

	"github.com/opd-ai/space-warriors/pkg/physics"
)

func TestProjectile_LifetimeCountsDown(t *testing.T) {
	p := NewProjectile(OwnerPlayer, physics.Vector2D{}, physics.Vector2D{X: 25}, DefaultProjectileTuning())

	if p.Lifetime != 300 || p.Damage != 10 {
		t.Fatalf("NewProjectile() lifetime/damage = %d/%d, expected 300/10", p.Lifetime, p.Damage)
	}

	for tick := 1; tick < 300; tick++ {
		before := p.Lifetime
		if !p.Update() {
			t.Fatalf("Update() reported dead at tick %d", tick)
		}
		if p.Lifetime != before-1 {
			t.Fatalf("lifetime went %d -> %d", before, p.Lifetime)
		}
	}

	if p.Update() {
		t.Error("Update() reported alive at tick 300")
	}
	if p.IsActive() {
		t.Error("expired projectile still active")
	}
	if !almostEqual(p.Position.X, 25*300) {
		t.Errorf("position.X = %v, expected %v", p.Position.X, 25*300)
	}
}

func TestOwner_String(t *testing.T) {
	tests := []struct {
		owner Owner
		want  string
	}{
		{OwnerPlayer, "player"},
		{OwnerEnemy, "enemy"},
		{Owner(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.owner.String(); got != tt.want {
			t.Errorf("Owner(%d).String() = %q, expected %q", tt.owner, got, tt.want)
		}
	}
}
