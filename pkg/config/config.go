// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/space-warriors/pkg/entity"
)

// GameConfig contains every tuning constant of a Space Warriors session
type GameConfig struct {
	Player     entity.PlayerTuning     `json:"player"`
	Enemy      entity.EnemyTuning      `json:"enemy"`
	Projectile entity.ProjectileTuning `json:"projectile"`
	Powerup    entity.PowerupTuning    `json:"powerup"`
	Spawn      SpawnConfig             `json:"spawn"`
	Combat     CombatConfig            `json:"combat"`
	Controls   ControlConfig           `json:"controls"`
	Viewport   ViewportConfig          `json:"viewport"`
	World      WorldConfig             `json:"world"`
	Simulation SimulationConfig        `json:"simulation"`
	Frontend   FrontendConfig          `json:"frontend"`
}

// SpawnConfig contains spawn timers and annulus bands
type SpawnConfig struct {
	EnemyInterval      int     `json:"enemyInterval"`   // ticks
	PowerupInterval    int     `json:"powerupInterval"` // ticks
	EnemyMinDistance   float64 `json:"enemyMinDistance"`
	EnemyMaxDistance   float64 `json:"enemyMaxDistance"`
	PowerupMinDistance float64 `json:"powerupMinDistance"`
	PowerupMaxDistance float64 `json:"powerupMaxDistance"`
	SizeMultiplierMin  float64 `json:"sizeMultiplierMin"`
	SizeMultiplierMax  float64 `json:"sizeMultiplierMax"`
}

// CombatConfig contains scoring and damage rules
type CombatConfig struct {
	PlayerShotDamage int     `json:"playerShotDamage"`
	DamageBonus      int     `json:"damageBonus"`
	KillBonus        int     `json:"killBonus"`
	DamageFlashTicks int     `json:"damageFlashTicks"`
	EnemyShotOdds    int     `json:"enemyShotOdds"` // one in N per enemy per tick
	TripleShotSpread float64 `json:"tripleShotSpread"`
}

// ControlConfig contains the magnitudes applied for held intents
type ControlConfig struct {
	RotateStep float64 `json:"rotateStep"`
	ThrustStep float64 `json:"thrustStep"`
}

// ViewportConfig contains the logical screen size the camera centres on
type ViewportConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WorldConfig contains session start layout
type WorldConfig struct {
	PlayerStartX    float64 `json:"playerStartX"`
	PlayerStartY    float64 `json:"playerStartY"`
	StarCount       int     `json:"starCount"`
	StarFieldExtent float64 `json:"starFieldExtent"`
}

// SimulationConfig contains scheduler settings
type SimulationConfig struct {
	TickRate        int    `json:"tickRate"`
	MaxCatchUpTicks int    `json:"maxCatchUpTicks"`
	Seed            uint64 `json:"seed"` // 0 picks a random seed
}

// FrontendConfig contains presentation settings
type FrontendConfig struct {
	Renderer       string  `json:"renderer"`
	Fullscreen     bool    `json:"fullscreen"`
	MinimapSize    float64 `json:"minimapSize"`
	MinimapScale   float64 `json:"minimapScale"`
	CellWidth      float64 `json:"cellWidth"`  // world units per terminal column
	CellHeight     float64 `json:"cellHeight"` // world units per terminal row
	KeyHoldMillis  int     `json:"keyHoldMillis"`
	TerminalFPSCap int     `json:"terminalFpsCap"`
}

// Supported renderer names
const (
	RendererEbiten = "ebiten"
	RendererEngo   = "engo"
	RendererTcell  = "tcell"
	RendererANSI   = "ansi"
	RendererNull   = "null"
)

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Player:     entity.DefaultPlayerTuning(),
		Enemy:      entity.DefaultEnemyTuning(),
		Projectile: entity.DefaultProjectileTuning(),
		Powerup:    entity.DefaultPowerupTuning(),
		Spawn: SpawnConfig{
			EnemyInterval:      180,
			PowerupInterval:    600,
			EnemyMinDistance:   800,
			EnemyMaxDistance:   1200,
			PowerupMinDistance: 500,
			PowerupMaxDistance: 1000,
			SizeMultiplierMin:  0.7,
			SizeMultiplierMax:  1.5,
		},
		Combat: CombatConfig{
			PlayerShotDamage: 10,
			DamageBonus:      1,
			KillBonus:        50,
			DamageFlashTicks: 10,
			EnemyShotOdds:    120,
			TripleShotSpread: 20,
		},
		Controls: ControlConfig{
			RotateStep: 3,
			ThrustStep: 0.2,
		},
		Viewport: ViewportConfig{
			Width:  1600,
			Height: 900,
		},
		World: WorldConfig{
			PlayerStartX:    400,
			PlayerStartY:    400,
			StarCount:       200,
			StarFieldExtent: 4000,
		},
		Simulation: SimulationConfig{
			TickRate:        60,
			MaxCatchUpTicks: 5,
		},
		Frontend: FrontendConfig{
			Renderer:       RendererEbiten,
			MinimapSize:    120,
			MinimapScale:   0.02,
			CellWidth:      16,
			CellHeight:     32,
			KeyHoldMillis:  120,
			TerminalFPSCap: 30,
		},
	}
}

// Validate checks that the configuration describes a playable session
func (c *GameConfig) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		value   any
		message string
	}{
		{c.Player.MaxSpeed > 0, "Player.MaxSpeed", c.Player.MaxSpeed, "must be positive"},
		{inUnitRange(c.Player.Deceleration), "Player.Deceleration", c.Player.Deceleration, "must be in (0, 1]"},
		{inUnitRange(c.Player.AngularDeceleration), "Player.AngularDeceleration", c.Player.AngularDeceleration, "must be in (0, 1]"},
		{c.Player.MaxAngularVelocity > 0, "Player.MaxAngularVelocity", c.Player.MaxAngularVelocity, "must be positive"},
		{c.Player.MaxHealth > 0, "Player.MaxHealth", c.Player.MaxHealth, "must be positive"},
		{c.Enemy.MaxSpeed > 0, "Enemy.MaxSpeed", c.Enemy.MaxSpeed, "must be positive"},
		{inUnitRange(c.Enemy.Deceleration), "Enemy.Deceleration", c.Enemy.Deceleration, "must be in (0, 1]"},
		{c.Enemy.BaseHealth >= 1, "Enemy.BaseHealth", c.Enemy.BaseHealth, "must be at least 1"},
		{c.Projectile.Lifetime > 0, "Projectile.Lifetime", c.Projectile.Lifetime, "must be positive"},
		{c.Spawn.EnemyInterval > 0, "Spawn.EnemyInterval", c.Spawn.EnemyInterval, "must be positive"},
		{c.Spawn.PowerupInterval > 0, "Spawn.PowerupInterval", c.Spawn.PowerupInterval, "must be positive"},
		{validBand(c.Spawn.EnemyMinDistance, c.Spawn.EnemyMaxDistance), "Spawn.EnemyMaxDistance", c.Spawn.EnemyMaxDistance, "must be >= EnemyMinDistance >= 0"},
		{validBand(c.Spawn.PowerupMinDistance, c.Spawn.PowerupMaxDistance), "Spawn.PowerupMaxDistance", c.Spawn.PowerupMaxDistance, "must be >= PowerupMinDistance >= 0"},
		{c.Spawn.SizeMultiplierMin > 0 && c.Spawn.SizeMultiplierMax >= c.Spawn.SizeMultiplierMin, "Spawn.SizeMultiplierMax", c.Spawn.SizeMultiplierMax, "must be >= SizeMultiplierMin > 0"},
		{c.Combat.EnemyShotOdds > 0, "Combat.EnemyShotOdds", c.Combat.EnemyShotOdds, "must be positive"},
		{c.Combat.DamageBonus >= 0 && c.Combat.KillBonus >= 0, "Combat.KillBonus", c.Combat.KillBonus, "bonuses must not be negative"},
		{c.Viewport.Width > 0 && c.Viewport.Height > 0, "Viewport", c.Viewport, "dimensions must be positive"},
		{c.World.StarCount >= 0, "World.StarCount", c.World.StarCount, "must not be negative"},
		{c.Simulation.TickRate >= 1 && c.Simulation.TickRate <= 240, "Simulation.TickRate", c.Simulation.TickRate, "must be between 1 and 240"},
		{c.Simulation.MaxCatchUpTicks >= 1, "Simulation.MaxCatchUpTicks", c.Simulation.MaxCatchUpTicks, "must be at least 1"},
		{validRenderer(c.Frontend.Renderer), "Frontend.Renderer", c.Frontend.Renderer, "must be one of ebiten, engo, tcell, ansi, null"},
		{c.Frontend.CellWidth > 0 && c.Frontend.CellHeight > 0, "Frontend.CellWidth", c.Frontend.CellWidth, "cell dimensions must be positive"},
	}

	for _, check := range checks {
		if !check.ok {
			return &ValidationError{Field: check.field, Value: check.value, Message: check.message}
		}
	}
	return nil
}

func inUnitRange(v float64) bool {
	return v > 0 && v <= 1
}

func validBand(lo, hi float64) bool {
	return lo >= 0 && hi >= lo
}

func validRenderer(name string) bool {
	switch name {
	case RendererEbiten, RendererEngo, RendererTcell, RendererANSI, RendererNull:
		return true
	default:
		return false
	}
}
