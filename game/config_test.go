package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbfall.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\"): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty path should return defaults")
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
starting_lives = 3
shield_time = 1.5
seed = 1234

[keys]
shoot = "X"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StartingLives != 3 || cfg.ShieldTime != 1.5 || cfg.Seed != 1234 {
		t.Errorf("overlay not applied: lives=%d shield=%v seed=%d", cfg.StartingLives, cfg.ShieldTime, cfg.Seed)
	}
	if cfg.Keys.Shoot != "X" {
		t.Errorf("keys.shoot = %q", cfg.Keys.Shoot)
	}
	if cfg.Keys.Play != DefaultConfig().Keys.Play {
		t.Errorf("unset key binding lost its default")
	}
	if cfg.ScreenWidth != DefaultConfig().ScreenWidth {
		t.Errorf("unset field lost its default")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
		msg     string
	}{
		{"unknown key", "lives = 3\n", true, "unknown keys"},
		{"bad value", "starting_lives = 0\n", true, "starting_lives"},
		{"several bad values", "orb_spawn_ratio = 0\nshoot_cooldown = -1\n", true, "shoot_cooldown"},
		{"syntax", "starting_lives = \n", false, "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrInvalidConfig) != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v for %v", !tt.invalid, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestValidateUnboundKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys.Reset = ""
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "keys.reset") {
		t.Fatalf("Validate = %v", err)
	}
}

func TestSpawnRange(t *testing.T) {
	cfg := DefaultConfig()
	lo, hi := cfg.SpawnRange()
	if lo != cfg.SpawnBufferLeft || hi != float64(cfg.ScreenWidth)-cfg.SpawnBufferRight {
		t.Errorf("SpawnRange = [%v,%v]", lo, hi)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		msg    string
	}{
		{"negative left buffer", func(c *Config) { c.SpawnBufferLeft = -10 }, "spawn buffers must not be negative"},
		{"negative right buffer", func(c *Config) { c.SpawnBufferRight = -1 }, "spawn buffers must not be negative"},
		{"negative cull margin", func(c *Config) { c.CullMargin = -5 }, "cull_margin"},
		{"negative orb speed", func(c *Config) { c.OrbSpeed = -160 }, "npc and backdrop speeds"},
		{"negative projectile speed", func(c *Config) { c.ProjectileSpeed = -1 }, "projectile speeds"},
		{"orb margin at half size", func(c *Config) { c.OrbMargin = c.OrbSize / 2 }, "orb_margin"},
		{"player margin past half height", func(c *Config) { c.PlayerHeight = 10; c.PlayerCollisionMargin = 8 }, "player_collision_margin"},
		{"negative ammo margin", func(c *Config) { c.AmmoMargin = -1 }, "ammo_margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestValidateAllowsZeroSizedNPC(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmmoSize = 0
	cfg.AmmoMargin = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero-sized ammo rejected: %v", err)
	}
}
