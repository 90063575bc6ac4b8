package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orbfall/game"
)

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestParseScript(t *testing.T) {
	s, err := ParseScript(`
seed = 9
delta = 0.02

[[step]]
keys = ["Enter"]

[[step]]
repeat = 3
pointer = [100, 200]
click = true
`)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Seed != 9 || s.Delta != 0.02 {
		t.Errorf("Seed = %d, Delta = %v", s.Seed, s.Delta)
	}

	frames := s.Frames()
	if len(frames) != 4 {
		t.Fatalf("len(Frames) = %d, want 4", len(frames))
	}
	if len(frames[0].Keys) != 1 || frames[0].Keys[0] != "Enter" || frames[0].HasPoint {
		t.Errorf("frame 0 = %+v", frames[0])
	}
	last := frames[3]
	if !last.HasPoint || last.X != 100 || last.Y != 200 || !last.Down {
		t.Errorf("frame 3 = %+v", last)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		bad  bool
	}{
		{"syntax", "[[step]\n", false},
		{"unknown key", "[[step]]\nbogus = 1\n", false},
		{"negative repeat", "[[step]]\nrepeat = -1\n", true},
		{"short pointer", "[[step]]\npointer = [1]\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, errBadStep) != tt.bad {
				t.Errorf("errors.Is(err, errBadStep) = %t, err = %v", !tt.bad, err)
			}
		})
	}
}

func calmConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.OrbSpawnRatio = 1 << 30
	cfg.AmmoSpawnRatio = 1 << 30
	cfg.Seed = 1
	return cfg
}

func TestSimulateStartsPlay(t *testing.T) {
	script := Script{Steps: []Step{{Keys: []game.Key{"Enter"}}, {Repeat: 59}}}

	var out bytes.Buffer
	sum := Simulate(calmConfig(), script, 0, 1.0/60, 30, &out, quietLogger())

	if sum.Frames != 60 {
		t.Errorf("Frames = %d, want 60", sum.Frames)
	}
	if sum.Phase != game.PhasePlay {
		t.Errorf("Phase = %s, want PLAY", sum.Phase)
	}
	if sum.Lives != calmConfig().StartingLives {
		t.Errorf("Lives = %d", sum.Lives)
	}
	if n := strings.Count(out.String(), "\n"); n != 2 {
		t.Errorf("progress lines = %d, want 2:\n%s", n, out.String())
	}
}

func TestSimulateQuit(t *testing.T) {
	script := Script{Steps: []Step{{Keys: []game.Key{"Escape"}}}}
	sum := Simulate(calmConfig(), script, 100, 1.0/60, 0, &bytes.Buffer{}, quietLogger())

	if !sum.Quit || sum.Frames != 1 {
		t.Errorf("Quit = %t, Frames = %d; want quit on frame 1", sum.Quit, sum.Frames)
	}
	if sum.Phase != game.PhaseInit {
		t.Errorf("Phase = %s, want INIT", sum.Phase)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 42
	script := Script{Steps: []Step{{Keys: []game.Key{"Enter"}}, {Repeat: 900, Pointer: []float64{240, 600}}}}

	a := Simulate(cfg, script, 0, 1.0/60, 0, &bytes.Buffer{}, quietLogger())
	b := Simulate(cfg, script, 0, 1.0/60, 0, &bytes.Buffer{}, quietLogger())
	if a != b {
		t.Errorf("runs differ:\n%s\n%s", a, b)
	}
}

func TestRunReplaysScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.toml")
	script := "seed = 5\n\n[[step]]\nkeys = [\"Enter\"]\n\n[[step]]\nrepeat = 9\n"
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-script", path}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "frames=10 phase=PLAY") {
		t.Errorf("summary = %q", got)
	}
}

func TestRunMissingScript(t *testing.T) {
	err := run([]string{"-script", filepath.Join(t.TempDir(), "missing.toml")}, &bytes.Buffer{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("run = %v, want ErrNotExist", err)
	}
}
