package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Keys names the bindings the state machine reacts to. Values are key names
// understood by the input backend ("Enter", "P", "Space", ...).
type Keys struct {
	Play   Key `toml:"play"`
	Pause  Key `toml:"pause"`
	Resume Key `toml:"resume"`
	Reset  Key `toml:"reset"`
	Shoot  Key `toml:"shoot"`
	Quit   Key `toml:"quit"`
	Left   Key `toml:"left"`
	Right  Key `toml:"right"`
	Up     Key `toml:"up"`
	Down   Key `toml:"down"`
}

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the logical screen width in pixels
	ScreenWidth int `toml:"screen_width"`

	// ScreenHeight is the logical screen height in pixels
	ScreenHeight int `toml:"screen_height"`

	// HUDBuffer is the band at the top of the screen reserved for HUD text.
	// The player can't move into it.
	HUDBuffer float64 `toml:"hud_buffer"`

	// MaxDeltaTime caps a single frame step in seconds
	MaxDeltaTime float64 `toml:"max_delta_time"`

	PlayerWidth           float64 `toml:"player_width"`
	PlayerHeight          float64 `toml:"player_height"`
	PlayerSpeed           float64 `toml:"player_speed"` // keyboard movement, pixels per second
	PlayerCollisionMargin float64 `toml:"player_collision_margin"`

	ProjectileWidth  float64 `toml:"projectile_width"`
	ProjectileHeight float64 `toml:"projectile_height"`
	ProjectileSpeed  float64 `toml:"projectile_speed"`
	// ProjectileGap is the space between the player's top edge and a fresh projectile
	ProjectileGap float64 `toml:"projectile_gap"`

	OrbSize   float64 `toml:"orb_size"`
	OrbSpeed  float64 `toml:"orb_speed"`
	OrbMargin float64 `toml:"orb_margin"`

	AmmoSize   float64 `toml:"ammo_size"`
	AmmoSpeed  float64 `toml:"ammo_speed"`
	AmmoMargin float64 `toml:"ammo_margin"`

	// OrbSpawnRatio is N in the per-frame orb spawn chance 1/N
	OrbSpawnRatio int `toml:"orb_spawn_ratio"`

	// AmmoSpawnRatio is N in the per-frame fireAmmo spawn chance 1/N
	AmmoSpawnRatio int `toml:"ammo_spawn_ratio"`

	// SpawnBufferLeft and SpawnBufferRight keep spawns away from the side walls
	SpawnBufferLeft  float64 `toml:"spawn_buffer_left"`
	SpawnBufferRight float64 `toml:"spawn_buffer_right"`

	// SpawnRetries is how many extra placements are tried when a spawn overlaps
	SpawnRetries int `toml:"spawn_retries"`

	// CullMargin is how far below the screen an NPC may fall before removal
	CullMargin float64 `toml:"cull_margin"`

	StartingLives int `toml:"starting_lives"`
	AmmoAmount    int `toml:"ammo_amount"`
	ScoreIncrease int `toml:"score_increase"`

	// ShieldTime is the invulnerability window in seconds after resume or respawn
	ShieldTime float64 `toml:"shield_time"`

	// ShootCooldown is the minimum time between two shots in seconds
	ShootCooldown float64 `toml:"shoot_cooldown"`

	BackdropSpeed float64 `toml:"backdrop_speed"`

	// Seed for the spawn RNG; 0 picks one from the clock
	Seed int64 `toml:"seed"`

	Keys Keys `toml:"keys"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  480,
		ScreenHeight: 640,
		HUDBuffer:    40,
		MaxDeltaTime: 0.1,

		PlayerWidth:           48,
		PlayerHeight:          48,
		PlayerSpeed:           320,
		PlayerCollisionMargin: 8,

		ProjectileWidth:  8,
		ProjectileHeight: 16,
		ProjectileSpeed:  480,
		ProjectileGap:    4,

		OrbSize:   40,
		OrbSpeed:  160,
		OrbMargin: 6,

		AmmoSize:   32,
		AmmoSpeed:  120,
		AmmoMargin: 2,

		OrbSpawnRatio:    40,
		AmmoSpawnRatio:   99,
		SpawnBufferLeft:  30,
		SpawnBufferRight: 30,
		SpawnRetries:     3,
		CullMargin:       50,

		StartingLives: 5,
		AmmoAmount:    5,
		ScoreIncrease: 10,
		ShieldTime:    3.0,
		ShootCooldown: 0.25,

		BackdropSpeed: 30,

		Keys: Keys{
			Play:   "Enter",
			Pause:  "P",
			Resume: "P",
			Reset:  "R",
			Shoot:  "Space",
			Quit:   "Escape",
			Left:   "ArrowLeft",
			Right:  "ArrowRight",
			Up:     "ArrowUp",
			Down:   "ArrowDown",
		},
	}
}

// LoadConfig overlays the TOML file at path on DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalidConfig, path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.ScreenWidth > 0, "screen_width must be positive, got %d", c.ScreenWidth)
	check(c.ScreenHeight > 0, "screen_height must be positive, got %d", c.ScreenHeight)
	check(c.HUDBuffer >= 0 && c.HUDBuffer < float64(c.ScreenHeight), "hud_buffer %.1f outside screen", c.HUDBuffer)
	check(c.MaxDeltaTime > 0, "max_delta_time must be positive")
	check(c.PlayerWidth >= 0 && c.PlayerHeight >= 0, "player size must not be negative")
	check(c.ProjectileWidth >= 0 && c.ProjectileHeight >= 0, "projectile size must not be negative")
	check(c.OrbSize >= 0 && c.AmmoSize >= 0, "npc size must not be negative")
	check(c.OrbSpawnRatio > 0, "orb_spawn_ratio must be positive, got %d", c.OrbSpawnRatio)
	check(c.AmmoSpawnRatio > 0, "ammo_spawn_ratio must be positive, got %d", c.AmmoSpawnRatio)
	check(c.SpawnRetries >= 0, "spawn_retries must not be negative")
	check(c.SpawnBufferLeft >= 0 && c.SpawnBufferRight >= 0, "spawn buffers must not be negative")
	check(c.SpawnBufferLeft+c.SpawnBufferRight <= float64(c.ScreenWidth), "spawn buffers wider than screen")
	check(c.CullMargin >= 0, "cull_margin must not be negative")
	check(c.PlayerSpeed >= 0 && c.ProjectileSpeed >= 0, "player and projectile speeds must not be negative")
	check(c.OrbSpeed >= 0 && c.AmmoSpeed >= 0 && c.BackdropSpeed >= 0, "npc and backdrop speeds must not be negative")

	// a margin of half the size or more shrinks the hitbox to a point that
	// never overlaps anything
	margins := []struct {
		name         string
		margin, size float64
	}{
		{"player_collision_margin", c.PlayerCollisionMargin, min(c.PlayerWidth, c.PlayerHeight)},
		{"orb_margin", c.OrbMargin, c.OrbSize},
		{"ammo_margin", c.AmmoMargin, c.AmmoSize},
	}
	for _, m := range margins {
		check(m.margin >= 0 && (m.size == 0 || m.margin < m.size/2),
			"%s %.1f must be in [0, %.1f)", m.name, m.margin, m.size/2)
	}
	check(c.StartingLives > 0, "starting_lives must be positive")
	check(c.AmmoAmount >= 0, "ammo_amount must not be negative")
	check(c.ShieldTime >= 0, "shield_time must not be negative")
	check(c.ShootCooldown >= 0, "shoot_cooldown must not be negative")

	bindings := []struct {
		name string
		key  Key
	}{
		{"play", c.Keys.Play},
		{"pause", c.Keys.Pause},
		{"resume", c.Keys.Resume},
		{"reset", c.Keys.Reset},
		{"shoot", c.Keys.Shoot},
	}
	for _, b := range bindings {
		check(b.key != "", "keys.%s is not bound", b.name)
	}

	return errors.Join(errs...)
}

// SpawnRange returns the X interval NPCs may spawn in.
func (c Config) SpawnRange() (float64, float64) {
	return c.SpawnBufferLeft, float64(c.ScreenWidth) - c.SpawnBufferRight
}
