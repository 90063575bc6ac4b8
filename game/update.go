package game

import "math"

func (g *Game) pressed(k Key) bool {
	return k != "" && g.input != nil && g.input.IsKeyPressed(k)
}

func (g *Game) down(k Key) bool {
	return k != "" && g.input != nil && g.input.IsKeyDown(k)
}

// updateInit resets every frame until the play key goes down.
func (g *Game) updateInit() error {
	g.state.Reset(g.cfg)

	if g.pressed(g.cfg.Keys.Quit) {
		return ErrQuit
	}
	if g.pressed(g.cfg.Keys.Play) {
		g.setPhase(PhasePlay)
	}
	return nil
}

func (g *Game) updatePlay(delta float64) {
	st := g.state
	p := st.Player
	keys := g.cfg.Keys

	if g.pressed(keys.Reset) {
		g.enterInit()
		return
	}
	if g.pressed(keys.Pause) {
		st.HoldPlayer()
		g.setPhase(PhasePause)
		return
	}

	g.movePlayer(delta)

	p.Tick(delta)
	p.EnforceBounds(g.cfg)
	if p.PlayState == PlayShoot {
		fire := g.down(keys.Shoot) || (g.input != nil && g.input.PointerDown())
		if proj, ok := p.TryShoot(g.cfg, &st.Ammo, fire); ok {
			st.Projectiles.Add(proj)
			g.sfx.PlaySound(SoundShoot)
		}
	}

	if st.Shield.Update(delta) && p.PlayState == PlayShield {
		p.PlayState = PlayAvoid
	}

	for _, tile := range st.Backdrop {
		tile.Advance(delta, float64(g.cfg.ScreenHeight))
	}

	for _, npc := range g.spawner.Update(st.NPCs, delta) {
		g.logger.Debug("npc spawned", "id", npc.ID, "name", npc.Name, "x", npc.X)
	}

	for _, proj := range st.Projectiles.Items() {
		proj.Advance(delta, 0)
		if proj.Bottom() < 0 {
			proj.Alive = false
		}
	}
	st.Projectiles.Compact()

	g.ResolveProjectileHits()

	if p.PlayState != PlayShield {
		g.ResolvePlayerHits()
	} else {
		st.HoldPlayer()
	}
}

// movePlayer follows the pointer when it is active, otherwise the arrow keys.
func (g *Game) movePlayer(delta float64) {
	if g.input == nil {
		return
	}
	p := g.state.Player
	if x, y, ok := g.input.Pointer(); ok {
		p.Follow(x, y)
		return
	}

	keys := g.cfg.Keys
	var dx, dy float64
	if g.down(keys.Left) {
		dx--
	}
	if g.down(keys.Right) {
		dx++
	}
	if g.down(keys.Up) {
		dy--
	}
	if g.down(keys.Down) {
		dy++
	}
	if dx != 0 && dy != 0 {
		dx /= math.Sqrt2
		dy /= math.Sqrt2
	}
	p.Steer(dx, dy, delta)
}

// updatePause holds everything still until resume or reset.
func (g *Game) updatePause() {
	st := g.state
	if g.pressed(g.cfg.Keys.Reset) {
		g.enterInit()
		return
	}
	if g.pressed(g.cfg.Keys.Resume) {
		st.Player.MoveTo(st.Held.X, st.Held.Y)
		st.StartShield(g.cfg)
		g.sfx.PlaySound(SoundShield)
		g.setPhase(PhasePlay)
	}
}

// updateWin is never entered by gameplay; it only waits for reset.
func (g *Game) updateWin() {
	if g.pressed(g.cfg.Keys.Reset) {
		g.enterInit()
	}
}

// updateLose keeps the player at the death position. With lives left the reset
// key respawns under a shield, otherwise it starts over.
func (g *Game) updateLose() {
	st := g.state
	st.Player.MoveTo(st.Held.X, st.Held.Y)
	if !g.pressed(g.cfg.Keys.Reset) {
		return
	}
	if st.Lives <= 0 {
		g.enterInit()
		return
	}

	st.Ammo = 0
	st.NPCs.Clear()
	st.StartShield(g.cfg)
	g.sfx.PlaySound(SoundShield)
	g.setPhase(PhasePlay)
}

func (g *Game) enterInit() {
	g.setPhase(PhaseInit)
	g.state.Reset(g.cfg)
}
