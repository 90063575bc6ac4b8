package game

import (
	"image/color"
	"math"
	"math/rand"
	"slices"
)

// MaxParticles caps the live sparks; bursts beyond it are truncated.
const MaxParticles = 256

// Particle is a single spark. Position and velocity are in screen pixels.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Age      float64
	Lifetime float64
	Size     float64
	Color    color.NRGBA
}

// Alive reports whether the particle is still within its lifetime
func (p *Particle) Alive() bool {
	return p.Age < p.Lifetime
}

// Alpha fades linearly from 1 to 0 over the lifetime.
func (p *Particle) Alpha() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return clamp(1-p.Age/p.Lifetime, 0, 1)
}

// Burst describes a one-shot emission.
type Burst struct {
	Count              int
	SpeedMin, SpeedMax float64
	LifeMin, LifeMax   float64
	SizeMin, SizeMax   float64
	Base               color.NRGBA
	Variation          color.NRGBA
}

var (
	BurstHit = Burst{
		Count:    14,
		SpeedMin: 60, SpeedMax: 180,
		LifeMin: 0.2, LifeMax: 0.5,
		SizeMin: 1.5, SizeMax: 3,
		Base:      color.NRGBA{R: 255, G: 200, B: 0, A: 255},
		Variation: color.NRGBA{R: 0, G: 60, B: 0},
	}
	BurstPickup = Burst{
		Count:    8,
		SpeedMin: 40, SpeedMax: 90,
		LifeMin: 0.15, LifeMax: 0.35,
		SizeMin: 1, SizeMax: 2.5,
		Base:      color.NRGBA{R: 255, G: 150, B: 30, A: 255},
		Variation: color.NRGBA{R: 0, G: 50, B: 30},
	}
	BurstDeath = Burst{
		Count:    40,
		SpeedMin: 80, SpeedMax: 220,
		LifeMin: 0.4, LifeMax: 0.9,
		SizeMin: 2, SizeMax: 4,
		Base:      color.NRGBA{R: 100, G: 200, B: 255, A: 255},
		Variation: color.NRGBA{R: 50, G: 50, B: 0},
	}
)

// Particles is a pool of short-lived sparks. It has its own rng so that
// effects never disturb spawn randomness.
type Particles struct {
	items []Particle
	rng   *rand.Rand
}

// NewParticles creates an empty pool.
func NewParticles(rng *rand.Rand) *Particles {
	return &Particles{rng: rng}
}

// Emit spawns b.Count sparks at (x, y) flying in random directions.
func (ps *Particles) Emit(x, y float64, b Burst) {
	for i := 0; i < b.Count && len(ps.items) < MaxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.between(b.SpeedMin, b.SpeedMax)
		ps.items = append(ps.items, Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Lifetime: ps.between(b.LifeMin, b.LifeMax),
			Size:     ps.between(b.SizeMin, b.SizeMax),
			Color: color.NRGBA{
				R: ps.vary(b.Base.R, b.Variation.R),
				G: ps.vary(b.Base.G, b.Variation.G),
				B: ps.vary(b.Base.B, b.Variation.B),
				A: b.Base.A,
			},
		})
	}
}

// Update ages and moves every spark, dropping expired ones.
func (ps *Particles) Update(delta float64) {
	if delta <= 0 {
		return
	}
	for i := range ps.items {
		p := &ps.items[i]
		p.Age += delta
		p.X += p.VX * delta
		p.Y += p.VY * delta
	}
	ps.items = slices.DeleteFunc(ps.items, func(p Particle) bool { return !p.Alive() })
}

// Items returns the live sparks; callers must not retain the slice.
func (ps *Particles) Items() []Particle { return ps.items }

func (ps *Particles) Len() int { return len(ps.items) }

func (ps *Particles) Clear() { ps.items = ps.items[:0] }

func (ps *Particles) between(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

func (ps *Particles) vary(base, variation uint8) uint8 {
	v := float64(base) + (ps.rng.Float64()*2-1)*float64(variation)
	return uint8(clamp(v, 0, 255))
}
