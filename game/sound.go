package game

// Sound effect names the state machine triggers.
const (
	SoundShoot  = "shoot"
	SoundHit    = "hit"
	SoundPickup = "pickup"
	SoundDeath  = "death"
	SoundShield = "shield"
)

// SoundPlayer plays a named effect without blocking. Unknown names are
// reported by the implementation as a warning, never as an error.
type SoundPlayer interface {
	PlaySound(name string)
}

type nopSound struct{}

func (nopSound) PlaySound(string) {}

// NopSound returns a SoundPlayer that discards every request.
func NopSound() SoundPlayer { return nopSound{} }
