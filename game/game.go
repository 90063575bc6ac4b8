package game

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"
)

// ErrQuit is returned by Update when the quit key was pressed on the title screen.
var ErrQuit = errors.New("quit requested")

// Game drives the state machine over a single State.
type Game struct {
	cfg     Config
	state   *State
	input   Input
	sfx     SoundPlayer
	rng     *rand.Rand
	logger  *slog.Logger
	spawner *Spawner
}

// NewGame creates a new game instance in INIT.
// A nil sfx is silent, a nil rng is seeded from cfg.Seed (or the clock when
// the seed is 0) and a nil logger uses slog.Default().
func NewGame(cfg Config, in Input, sfx SoundPlayer, rng *rand.Rand, logger *slog.Logger) *Game {
	if sfx == nil {
		sfx = NopSound()
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Game{
		cfg:     cfg,
		state:   NewState(cfg),
		input:   in,
		sfx:     sfx,
		rng:     rng,
		logger:  logger,
		spawner: NewSpawner(cfg, rng),
	}
}

// State exposes the live state for rendering and tests.
func (g *Game) State() *State { return g.state }

// Config returns the configuration the game was built with.
func (g *Game) Config() Config { return g.cfg }

// Update runs one frame of delta seconds. The input source must already be
// advanced to this frame. Delta is clamped to [0, MaxDeltaTime].
// The only error is ErrQuit.
func (g *Game) Update(delta float64) error {
	delta = min(max(delta, 0), g.cfg.MaxDeltaTime)
	g.state.Frame++

	switch g.state.Phase {
	case PhaseInit:
		return g.updateInit()
	case PhasePlay:
		g.updatePlay(delta)
	case PhasePause:
		g.updatePause()
	case PhaseWin:
		g.updateWin()
	case PhaseLose:
		g.updateLose()
	default:
		g.logger.Debug("unknown phase, skipping frame", "phase", int(g.state.Phase), "frame", g.state.Frame)
	}
	if g.state.Phase != PhasePause {
		g.state.Sparks.Update(delta)
	}
	return nil
}

// ResolveProjectileHits removes every projectile/npc pair that overlaps and
// awards ScoreIncrease per hit. A projectile hits at most one npc.
func (g *Game) ResolveProjectileHits() int {
	st := g.state
	hits := 0
	ForEachOverlap(st.Projectiles, st.NPCs, func(proj, npc *Entity) bool {
		proj.Alive = false
		npc.Alive = false
		st.Score += g.cfg.ScoreIncrease
		st.Sparks.Emit(npc.X, npc.Y, BurstHit)
		hits++
		g.sfx.PlaySound(SoundHit)
		g.logger.Debug("npc shot", "id", npc.ID, "name", npc.Name, "projectile", proj.ID, "score", st.Score)
		return false
	})
	st.Projectiles.Compact()
	st.NPCs.Compact()
	return hits
}

// ResolvePlayerHits checks the player against every npc. Pickups grant ammo
// and switch to SHOOT. The first hazard costs a life, moves the game to LOSE
// and stops further checks; the return value is false in that case.
func (g *Game) ResolvePlayerHits() bool {
	st := g.state
	p := st.Player
	safe := true

	for _, npc := range st.NPCs.Items() {
		if !npc.Alive || !Collides(&p.Entity, npc) {
			continue
		}

		if npc.IsPickup() {
			npc.Alive = false
			p.PlayState = PlayShoot
			st.Ammo += g.cfg.AmmoAmount
			st.Sparks.Emit(npc.X, npc.Y, BurstPickup)
			g.sfx.PlaySound(SoundPickup)
			g.logger.Debug("pickup collected", "id", npc.ID, "ammo", st.Ammo)
			continue
		}
		if !npc.IsHazard() {
			continue
		}

		npc.Alive = false
		st.Lives = max(st.Lives-1, 0)
		g.logger.Debug("player hit", "id", npc.ID, "name", npc.Name, "lives", st.Lives)
		p.PlayState = PlayDeath
		st.HoldPlayer()
		st.Sparks.Emit(p.X, p.Y, BurstDeath)
		g.sfx.PlaySound(SoundDeath)
		g.setPhase(PhaseLose)
		safe = false
		break
	}

	st.NPCs.Compact()
	return safe
}

func (g *Game) setPhase(next Phase) {
	prev := g.state.Phase
	if prev == next {
		return
	}
	g.state.Phase = next
	g.logger.Debug("phase change",
		"from", prev.String(),
		"to", next.String(),
		"score", g.state.Score,
		"lives", g.state.Lives,
		"frame", g.state.Frame,
	)
}
