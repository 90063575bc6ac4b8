package game

import (
	"math/rand"
)

// Spawner drops orbs and ammo pickups from the top edge and culls the ones
// that fell past the bottom.
type Spawner struct {
	cfg Config
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng
func NewSpawner(cfg Config, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// Update rolls the spawn chances for this frame, moves every npc down and
// removes the ones below the cull line. It returns the entities spawned.
func (s *Spawner) Update(npcs *Collection, delta float64) []*Entity {
	var spawned []*Entity
	if s.roll(s.cfg.OrbSpawnRatio) {
		spawned = append(spawned, s.Spawn(npcs, KindOrb))
	}
	if s.roll(s.cfg.AmmoSpawnRatio) {
		spawned = append(spawned, s.Spawn(npcs, KindFireAmmo))
	}

	s.Advance(npcs, delta)
	return spawned
}

// Advance moves npcs by speed*delta and culls the ones past the bottom.
func (s *Spawner) Advance(npcs *Collection, delta float64) int {
	cullY := float64(s.cfg.ScreenHeight) + s.cfg.CullMargin
	for _, npc := range npcs.Items() {
		npc.Advance(delta, 0)
		if npc.Y > cullY {
			npc.Alive = false
		}
	}
	return npcs.Compact()
}

// Spawn places one npc of the given kind at the top edge and adds it to npcs.
// A placement that overlaps an existing npc is re-rolled up to SpawnRetries
// times in a narrowing range; the last roll is kept even if it still overlaps.
func (s *Spawner) Spawn(npcs *Collection, kind Kind) *Entity {
	var e *Entity
	switch kind {
	case KindFireAmmo:
		e = NewFireAmmo(s.cfg, 0)
	default:
		e = NewOrb(s.cfg, 0)
	}

	lo, hi := s.cfg.SpawnRange()
	for attempt := 0; attempt <= s.cfg.SpawnRetries; attempt++ {
		e.X = s.pick(lo, hi, attempt, e.Width)
		if FirstOverlap(e, npcs) == nil {
			break
		}
	}
	npcs.Add(e)
	return e
}

func (s *Spawner) pick(lo, hi float64, attempt int, width float64) float64 {
	shrink := float64(attempt) * width / 2
	lo, hi = lo+shrink, hi-shrink
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Spawner) roll(ratio int) bool {
	if ratio <= 0 {
		return false
	}
	return s.rng.Intn(ratio) == 0
}
