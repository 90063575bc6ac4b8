package game

import "math/rand"

// Phase is the overall session phase.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePlay
	PhasePause
	PhaseWin
	PhaseLose
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "INIT"
	case PhasePlay:
		return "PLAY"
	case PhasePause:
		return "PAUSE"
	case PhaseWin:
		return "WIN"
	case PhaseLose:
		return "LOSE"
	default:
		return "UNKNOWN"
	}
}

// PlayState is the player's capability within PhasePlay. It is orthogonal to Phase.
type PlayState int

const (
	PlayAvoid PlayState = iota
	PlayShield
	PlayShoot
	PlaySuper
	PlayDeath
)

func (p PlayState) String() string {
	switch p {
	case PlayAvoid:
		return "AVOID"
	case PlayShield:
		return "SHIELD"
	case PlayShoot:
		return "SHOOT"
	case PlaySuper:
		return "SUPER"
	case PlayDeath:
		return "DEATH"
	default:
		return "UNKNOWN"
	}
}

// Point is a position snapshot
type Point struct {
	X, Y float64
}

// State is everything one frame mutates and the renderer reads.
type State struct {
	Phase Phase
	Score int
	Lives int
	Ammo  int

	Player      *Player
	Projectiles *Collection
	NPCs        *Collection
	Backdrop    []*Entity

	// Sparks are cosmetic hit effects
	Sparks *Particles

	// Shield counts down the invulnerability window
	Shield Timer

	// Held is where the player sprite is frozen during PAUSE and LOSE
	Held Point

	// Frame counts Update calls since start
	Frame uint64
}

// NewState creates the single per-process state, already reset.
func NewState(cfg Config) *State {
	st := &State{
		Player:      NewPlayer(cfg),
		Projectiles: NewCollection(32),
		NPCs:        NewCollection(64),
		Backdrop:    newBackdrop(cfg),
		Sparks:      NewParticles(rand.New(rand.NewSource(cfg.Seed))),
		Shield:      NewTimer(cfg.ShieldTime, TimerCountdown, false),
	}
	st.Reset(cfg)
	return st
}

// Reset returns the session to its starting values. Called on every INIT frame.
func (st *State) Reset(cfg Config) {
	st.Phase = PhaseInit
	st.Score = 0
	st.Lives = cfg.StartingLives
	st.Ammo = 0
	st.NPCs.Clear()
	st.Projectiles.Clear()
	st.Sparks.Clear()
	st.Shield.Stop()
	st.Player.Respawn(cfg)
	st.Held = Point{X: st.Player.X, Y: st.Player.Y}
}

// HoldPlayer snapshots the player's current position.
func (st *State) HoldPlayer() {
	st.Held = Point{X: st.Player.X, Y: st.Player.Y}
}

// StartShield puts the player in SHIELD for cfg.ShieldTime seconds.
func (st *State) StartShield(cfg Config) {
	st.Player.PlayState = PlayShield
	st.Shield.Reset(cfg.ShieldTime, TimerCountdown, false)
}

func newBackdrop(cfg Config) []*Entity {
	w, h := float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)
	return []*Entity{
		NewEntity(KindBackdrop, NameBackdrop, w/2, h/2, w, h, cfg.BackdropSpeed, 0),
		NewEntity(KindBackdrop, NameBackdrop, w/2, -h/2, w, h, cfg.BackdropSpeed, 0),
	}
}
