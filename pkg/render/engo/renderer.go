// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

// Draw order
const (
	zStars float32 = iota
	zPowerups
	zShips
	zProjectiles
	zHUD
	zOverlay
	zOverlayText
)

// Culling margins around the viewport, in pixels.
const (
	starMargin       = 50
	shipMargin       = 50
	projectileMargin = 20
	powerupMargin    = 50
)

// SpriteSink receives render entities. *common.RenderSystem implements it.
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one renderable entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

func newSprite(sink SpriteSink, drawable common.Drawable, clr color.Color, w, h float32, z float32) *sprite {
	s := &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: drawable,
			Color:    clr,
		},
		SpaceComponent: common.SpaceComponent{Width: w, Height: h},
	}
	s.RenderComponent.SetZIndex(z)
	sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place centres the sprite on p with the given rotation in degrees.
func (s *sprite) place(p engo.Point, rotation float32) {
	s.SpaceComponent.Rotation = rotation
	s.SpaceComponent.SetCenter(p)
}

// spriteSet tracks the sprites of one kind of snapshot entity by ID.
type spriteSet struct {
	sprites map[entity.ID]*sprite
	seen    map[entity.ID]bool
}

func newSpriteSet() spriteSet {
	return spriteSet{
		sprites: make(map[entity.ID]*sprite),
		seen:    make(map[entity.ID]bool),
	}
}

func (ss *spriteSet) begin() {
	clear(ss.seen)
}

func (ss *spriteSet) get(id entity.ID, create func() *sprite) *sprite {
	ss.seen[id] = true
	if s, ok := ss.sprites[id]; ok {
		return s
	}
	s := create()
	ss.sprites[id] = s
	return s
}

// end removes sprites whose entities left the snapshot.
func (ss *spriteSet) end(sink SpriteSink) {
	for id, s := range ss.sprites {
		if !ss.seen[id] {
			sink.Remove(s.BasicEntity)
			delete(ss.sprites, id)
		}
	}
}

func (ss *spriteSet) clear(sink SpriteSink) {
	ss.begin()
	ss.end(sink)
}

// EngoRenderer keeps one engo entity per snapshot entity, adding sprites for
// new entities and removing them when they leave the snapshot.
type EngoRenderer struct {
	sink   SpriteSink
	assets *AssetManager
	camera *Camera

	player           *sprite
	stars            []*sprite
	enemies          spriteSet
	enemyBars        spriteSet
	playerProjectile spriteSet
	enemyProjectile  spriteSet
	powerups         spriteSet
}

// NewEngoRenderer creates a renderer that adds its sprites to sink.
func NewEngoRenderer(sink SpriteSink, assets *AssetManager, camera *Camera) *EngoRenderer {
	return &EngoRenderer{
		sink:             sink,
		assets:           assets,
		camera:           camera,
		enemies:          newSpriteSet(),
		enemyBars:        newSpriteSet(),
		playerProjectile: newSpriteSet(),
		enemyProjectile:  newSpriteSet(),
		powerups:         newSpriteSet(),
	}
}

// Sync updates the scene to match snap.
func (r *EngoRenderer) Sync(snap *engine.Snapshot) {
	r.camera.Follow(snap)
	r.syncStars(snap)
	r.syncPlayer(snap)
	r.syncEnemies(snap)
	r.syncProjectiles(&r.playerProjectile, snap.PlayerProjectiles, render.White)
	r.syncProjectiles(&r.enemyProjectile, snap.EnemyProjectiles, render.Red)
	r.syncPowerups(snap)
}

// Clear removes every sprite.
func (r *EngoRenderer) Clear() {
	for _, s := range r.stars {
		r.sink.Remove(s.BasicEntity)
	}
	r.stars = nil
	if r.player != nil {
		r.sink.Remove(r.player.BasicEntity)
		r.player = nil
	}
	for _, set := range []*spriteSet{&r.enemies, &r.enemyBars, &r.playerProjectile, &r.enemyProjectile, &r.powerups} {
		set.clear(r.sink)
	}
}

// Count returns how many sprites are in the scene.
func (r *EngoRenderer) Count() int {
	n := len(r.stars)
	if r.player != nil {
		n++
	}
	for _, set := range []*spriteSet{&r.enemies, &r.enemyBars, &r.playerProjectile, &r.enemyProjectile, &r.powerups} {
		n += len(set.sprites)
	}
	return n
}

// syncStars creates the star sprites once; the star field never changes.
func (r *EngoRenderer) syncStars(snap *engine.Snapshot) {
	if r.stars == nil {
		r.stars = make([]*sprite, 0, len(snap.Stars))
		for _, s := range snap.Stars {
			d := float32(s.Radius * 2)
			r.stars = append(r.stars, newSprite(r.sink, common.Circle{}, render.Yellow, d, d, zStars))
		}
	}
	for i, s := range snap.Stars {
		if i >= len(r.stars) {
			break
		}
		r.stars[i].Hidden = !r.camera.Visible(s.Position, starMargin)
		r.stars[i].place(r.camera.WorldToScreen(s.Position), 0)
	}
}

func (r *EngoRenderer) syncPlayer(snap *engine.Snapshot) {
	p := snap.Player
	if r.player == nil {
		img := r.assets.Image(SpritePlayer)
		w, h := float32(img.Bounds().Dx()), float32(img.Bounds().Dy())
		r.player = newSprite(r.sink, r.assets.Sprite(SpritePlayer), color.White, w, h, zShips)
	}
	r.player.place(r.camera.WorldToScreen(p.Position), float32(p.Angle))
}

func (r *EngoRenderer) syncEnemies(snap *engine.Snapshot) {
	r.enemies.begin()
	r.enemyBars.begin()
	for _, e := range snap.Enemies {
		s := r.enemies.get(e.ID, func() *sprite {
			es := newSprite(r.sink, r.assets.Sprite(SpriteEnemy), color.White, float32(e.Size.X*2), float32(e.Size.Y), zShips)
			// Enemy size varies; the sprite is scaled from the base image.
			if img := r.assets.Image(SpriteEnemy); img != nil && img.Bounds().Dx() > 0 {
				k := float32(e.Size.X*2) / float32(img.Bounds().Dx())
				es.Scale = engo.Point{X: k, Y: k}
			}
			return es
		})
		s.Hidden = !r.camera.Visible(e.Position, shipMargin)
		s.place(r.camera.WorldToScreen(e.Position), float32(e.Angle))

		screen := e.Position.Sub(r.camera.Offset())
		bar := render.EnemyHealthBar(screen, e.Size)
		ratio := 0.0
		if e.MaxHealth > 0 {
			ratio = float64(e.Health) / float64(e.MaxHealth)
		}
		fill := bar.Fill(ratio)
		b := r.enemyBars.get(e.ID, func() *sprite {
			return newSprite(r.sink, common.Rectangle{}, render.Green, float32(bar.W), float32(bar.H), zHUD)
		})
		b.Hidden = s.Hidden || fill.W <= 0
		b.Width = float32(fill.W)
		b.Position = engo.Point{X: float32(fill.X), Y: float32(fill.Y)}
	}
	r.enemies.end(r.sink)
	r.enemyBars.end(r.sink)
}

func (r *EngoRenderer) syncProjectiles(set *spriteSet, projectiles []engine.ProjectileState, clr color.Color) {
	set.begin()
	for _, p := range projectiles {
		s := set.get(p.ID, func() *sprite {
			return newSprite(r.sink, common.Rectangle{}, clr, float32(p.Length), 3, zProjectiles)
		})
		s.Hidden = !r.camera.Visible(p.Position, projectileMargin) || p.Velocity.IsZero()
		s.place(r.camera.WorldToScreen(p.Position), float32(physics.RadiansToDegrees(p.Velocity.Angle())))
	}
	set.end(r.sink)
}

func (r *EngoRenderer) syncPowerups(snap *engine.Snapshot) {
	r.powerups.begin()
	for _, pu := range snap.Powerups {
		if pu.Kind != entity.TripleShot {
			continue
		}
		s := r.powerups.get(pu.ID, func() *sprite {
			return newSprite(r.sink, r.assets.Sprite(SpritePowerup), color.White, float32(pu.Size), float32(pu.Size), zPowerups)
		})
		s.Hidden = !r.camera.Visible(pu.Position, powerupMargin)
		s.place(r.camera.WorldToScreen(pu.Position), 0)
	}
	r.powerups.end(r.sink)
}
