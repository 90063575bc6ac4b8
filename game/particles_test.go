package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestParticlesEmitAndExpire(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(3)))
	ps.Emit(100, 100, BurstHit)
	if ps.Len() != BurstHit.Count {
		t.Fatalf("Len = %d, want %d", ps.Len(), BurstHit.Count)
	}

	for _, p := range ps.Items() {
		speed := math.Hypot(p.VX, p.VY)
		if speed < BurstHit.SpeedMin-1e-9 || speed > BurstHit.SpeedMax+1e-9 {
			t.Errorf("speed %v outside [%v, %v]", speed, BurstHit.SpeedMin, BurstHit.SpeedMax)
		}
		if p.Lifetime < BurstHit.LifeMin-1e-9 || p.Lifetime > BurstHit.LifeMax+1e-9 {
			t.Errorf("lifetime %v outside range", p.Lifetime)
		}
		if p.Alpha() != 1 {
			t.Errorf("fresh spark alpha = %v, want 1", p.Alpha())
		}
	}

	ps.Update(BurstHit.LifeMin / 2)
	if ps.Len() != BurstHit.Count {
		t.Errorf("sparks expired early: %d left", ps.Len())
	}
	ps.Update(BurstHit.LifeMax)
	if ps.Len() != 0 {
		t.Errorf("Len = %d after max lifetime, want 0", ps.Len())
	}
}

func TestParticlesCap(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(3)))
	for range 20 {
		ps.Emit(0, 0, BurstDeath)
	}
	if ps.Len() != MaxParticles {
		t.Errorf("Len = %d, want cap %d", ps.Len(), MaxParticles)
	}
	ps.Clear()
	if ps.Len() != 0 {
		t.Errorf("Len = %d after Clear", ps.Len())
	}
}

func TestParticlesFreezeInPause(t *testing.T) {
	g, in, _ := newTestGame(t)
	st := g.State()
	startPlay(t, g, in)

	st.Sparks.Emit(50, 50, BurstDeath)
	step(t, g, in, press(g.Config().Keys.Pause))
	before := st.Sparks.Items()[0]

	step(t, g, in, InputFrame{}, InputFrame{})
	if got := st.Sparks.Items()[0]; got != before {
		t.Errorf("spark moved while paused: %+v -> %+v", before, got)
	}
}
