package game

import (
	"github.com/google/uuid"
)

// Kind identifies the type of entity
type Kind int

const (
	KindPlayer Kind = iota
	KindProjectile
	KindOrb
	KindFireAmmo
	KindBackdrop
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindOrb:
		return NameOrb
	case KindFireAmmo:
		return NameFireAmmo
	case KindBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// NPC names double as sprite and sound lookup keys.
const (
	NameOrb        = "orb"
	NameFireAmmo   = "fireAmmo"
	NamePlayer     = "player"
	NameProjectile = "projectile"
	NameBackdrop   = "backdrop"
)

// Entity represents a game entity (player, npc, projectile or backdrop tile)
type Entity struct {
	// Unique identity, stable for the entity's lifetime
	ID uuid.UUID

	// Name is the lookup key for collections, sprites and sounds
	Name string

	// Entity type identifier
	Kind Kind

	// Center position in screen coordinates
	X, Y float64

	// Full size in pixels, never negative
	Width, Height float64

	// Movement speed in pixels per second
	Speed float64

	// CollisionMargin shrinks the hitbox on every side
	CollisionMargin float64

	// AnimationState selects the sprite frame or variant
	AnimationState int

	// Whether this entity is still in play; dead entities are compacted away
	Alive bool
}

// NewEntity creates a new entity centered on (x, y)
func NewEntity(kind Kind, name string, x, y, width, height, speed, margin float64) *Entity {
	return &Entity{
		ID:              uuid.New(),
		Name:            name,
		Kind:            kind,
		X:               x,
		Y:               y,
		Width:           max(width, 0),
		Height:          max(height, 0),
		Speed:           speed,
		CollisionMargin: max(margin, 0),
		Alive:           true,
	}
}

// NewOrb creates a falling hazard at the top edge.
func NewOrb(cfg Config, x float64) *Entity {
	return NewEntity(KindOrb, NameOrb, x, 0, cfg.OrbSize, cfg.OrbSize, cfg.OrbSpeed, cfg.OrbMargin)
}

// NewFireAmmo creates a falling ammo pickup at the top edge.
func NewFireAmmo(cfg Config, x float64) *Entity {
	return NewEntity(KindFireAmmo, NameFireAmmo, x, 0, cfg.AmmoSize, cfg.AmmoSize, cfg.AmmoSpeed, cfg.AmmoMargin)
}

// NewProjectile creates a projectile centered on (x, y).
func NewProjectile(cfg Config, x, y float64) *Entity {
	return NewEntity(KindProjectile, NameProjectile, x, y, cfg.ProjectileWidth, cfg.ProjectileHeight, cfg.ProjectileSpeed, 0)
}

// IsHazard reports whether touching the entity costs a life.
func (e *Entity) IsHazard() bool {
	return e.Kind == KindOrb
}

// IsPickup reports whether touching the entity grants ammo.
func (e *Entity) IsPickup() bool {
	return e.Kind == KindFireAmmo
}

func (e *Entity) Left() float64   { return e.X - e.Width/2 }
func (e *Entity) Right() float64  { return e.X + e.Width/2 }
func (e *Entity) Top() float64    { return e.Y - e.Height/2 }
func (e *Entity) Bottom() float64 { return e.Y + e.Height/2 }

// MoveBy shifts the entity by (dx, dy)
func (e *Entity) MoveBy(dx, dy float64) {
	e.X += dx
	e.Y += dy
}

// MoveTo centers the entity on (x, y)
func (e *Entity) MoveTo(x, y float64) {
	e.X = x
	e.Y = y
}

// Advance applies the kind's per-frame movement.
// NPCs fall, projectiles rise, backdrop tiles scroll down and wrap by wrapSpan.
func (e *Entity) Advance(delta, wrapSpan float64) {
	if !e.Alive {
		return
	}
	step := e.Speed * delta
	switch e.Kind {
	case KindOrb, KindFireAmmo:
		e.Y += step
	case KindProjectile:
		e.Y -= step
	case KindBackdrop:
		e.Y += step
		if wrapSpan > 0 && e.Top() >= wrapSpan {
			e.Y -= 2 * wrapSpan
		}
	}
}
