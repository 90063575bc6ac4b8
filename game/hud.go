package game

import (
	"fmt"
	"strings"
)

// HUD is the text the renderer lays out for the current frame.
type HUD struct {
	// Status is the top band: score, lives, ammo and mode
	Status string

	// Banner is large centered text; empty during normal play
	Banner string

	// Hint lists the keys that do something in this phase
	Hint string
}

// HUDFor builds the per-phase HUD text.
func HUDFor(st *State, keys Keys) HUD {
	status := fmt.Sprintf("SCORE %d   LIVES %d   AMMO %d   %s", st.Score, st.Lives, st.Ammo, st.Player.PlayState)

	switch st.Phase {
	case PhaseInit:
		return HUD{
			Banner: "ORBFALL",
			Hint:   fmt.Sprintf("%s to play   %s to quit", keyLabel(keys.Play), keyLabel(keys.Quit)),
		}
	case PhasePlay:
		h := HUD{Status: status}
		if st.Player.PlayState == PlayShoot {
			h.Hint = fmt.Sprintf("%s or click to fire", keyLabel(keys.Shoot))
		}
		return h
	case PhasePause:
		return HUD{
			Status: status,
			Banner: "PAUSED",
			Hint:   fmt.Sprintf("%s to resume   %s to restart", keyLabel(keys.Resume), keyLabel(keys.Reset)),
		}
	case PhaseWin:
		return HUD{
			Status: status,
			Banner: "YOU WIN",
			Hint:   fmt.Sprintf("%s to restart", keyLabel(keys.Reset)),
		}
	case PhaseLose:
		if st.Lives <= 0 {
			return HUD{
				Status: status,
				Banner: "GAME OVER",
				Hint:   fmt.Sprintf("final score %d   %s to restart", st.Score, keyLabel(keys.Reset)),
			}
		}
		return HUD{
			Status: status,
			Banner: "HIT!",
			Hint:   fmt.Sprintf("%s to respawn", keyLabel(keys.Reset)),
		}
	default:
		return HUD{Status: status}
	}
}

func keyLabel(k Key) string {
	return strings.ToUpper(string(k))
}

// ShieldFaded reports whether the shielded player is drawn faded this frame.
// The blink period drops from 12 to 4 frames as the shield runs out.
func ShieldFaded(st *State) bool {
	if st.Player.PlayState != PlayShield {
		return false
	}
	period := max(uint64(12-8*st.Shield.Progress()), 4)
	return st.Frame%period < period/2
}
