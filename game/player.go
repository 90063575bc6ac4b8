package game

// Player is the single player-controlled entity.
type Player struct {
	Entity

	PlayState PlayState

	// Cooldown runs between shots; a shot is only possible while it is inactive
	Cooldown Timer
}

// NewPlayer creates the player at its spawn point
func NewPlayer(cfg Config) *Player {
	p := &Player{
		Entity:   *NewEntity(KindPlayer, NamePlayer, 0, 0, cfg.PlayerWidth, cfg.PlayerHeight, cfg.PlayerSpeed, cfg.PlayerCollisionMargin),
		Cooldown: NewTimer(cfg.ShootCooldown, TimerCountdown, false),
	}
	p.Respawn(cfg)
	return p
}

// Respawn puts the player back at the spawn point in AVOID.
func (p *Player) Respawn(cfg Config) {
	p.X = float64(cfg.ScreenWidth) / 2
	p.Y = float64(cfg.ScreenHeight) - p.Height
	p.Alive = true
	p.PlayState = PlayAvoid
	p.AnimationState = int(PlayAvoid)
	p.Cooldown.Stop()
	p.EnforceBounds(cfg)
}

// Follow centers the player on the pointer.
func (p *Player) Follow(x, y float64) {
	p.MoveTo(x, y)
}

// Steer moves the player by a unit direction at PlayerSpeed.
func (p *Player) Steer(dirX, dirY, delta float64) {
	p.MoveBy(dirX*p.Speed*delta, dirY*p.Speed*delta)
}

// EnforceBounds clamps the player so its whole box stays inside
// [0, ScreenWidth] x [HUDBuffer, ScreenHeight]. Applying it twice is a no-op.
func (p *Player) EnforceBounds(cfg Config) {
	halfW, halfH := p.Width/2, p.Height/2
	p.X = clamp(p.X, halfW, float64(cfg.ScreenWidth)-halfW)
	p.Y = clamp(p.Y, cfg.HUDBuffer+halfH, float64(cfg.ScreenHeight)-halfH)
}

// Tick advances the shot cooldown and mirrors PlayState into AnimationState.
func (p *Player) Tick(delta float64) {
	p.Cooldown.Update(delta)
	p.AnimationState = int(p.PlayState)
}

// CanShoot reports whether a shot would succeed given the ammo count and fire input.
func (p *Player) CanShoot(ammo int, fire bool) bool {
	return p.PlayState == PlayShoot && !p.Cooldown.Active && ammo > 0 && fire
}

// TryShoot fires one projectile if the player is in SHOOT, off cooldown, has
// ammo and fire is held. In SHOOT with no ammo the player drops back to AVOID.
// On success ammo is decremented and the new projectile is returned.
func (p *Player) TryShoot(cfg Config, ammo *int, fire bool) (*Entity, bool) {
	if p.PlayState == PlayShoot && *ammo <= 0 {
		*ammo = 0
		p.PlayState = PlayAvoid
		return nil, false
	}
	if !p.CanShoot(*ammo, fire) {
		return nil, false
	}

	y := p.Y - p.Height/2 - cfg.ProjectileGap - cfg.ProjectileHeight/2
	proj := NewProjectile(cfg, p.X, y)
	*ammo--
	p.Cooldown.Reset(cfg.ShootCooldown, TimerCountdown, false)
	return proj, true
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return min(max(v, lo), hi)
}
