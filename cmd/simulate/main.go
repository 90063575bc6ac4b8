// Command simulate runs the game headless from a replay script and prints
// the final state. With the same seed and script the output is identical.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"orbfall/applog"
	"orbfall/game"
)

// Summary is the outcome of a simulated run.
type Summary struct {
	Frames    int
	Phase     game.Phase
	PlayState game.PlayState
	Score     int
	Lives     int
	Ammo      int
	NPCs      int
	Quit      bool
}

func (s Summary) String() string {
	return fmt.Sprintf("frames=%d phase=%s play=%s score=%d lives=%d ammo=%d npcs=%d quit=%t",
		s.Frames, s.Phase, s.PlayState, s.Score, s.Lives, s.Ammo, s.NPCs, s.Quit)
}

// Simulate drives a game through frames ticks of delta seconds. When every
// is positive a progress line is written to w every that many frames.
func Simulate(cfg game.Config, script Script, frames int, delta float64, every int, w io.Writer, logger *slog.Logger) Summary {
	in := game.NewScriptInput(script.Frames()...)
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := game.NewGame(cfg, in, game.NopSound(), rng, logger)

	if frames <= 0 {
		frames = len(script.Frames())
	}

	var sum Summary
	for i := range frames {
		in.Advance()
		if err := g.Update(delta); errors.Is(err, game.ErrQuit) {
			sum.Quit = true
			sum.Frames = i + 1
			break
		}
		sum.Frames = i + 1
		if every > 0 && (i+1)%every == 0 {
			st := g.State()
			fmt.Fprintf(w, "frame %d: %s score=%d lives=%d ammo=%d npcs=%d\n",
				i+1, st.Phase, st.Score, st.Lives, st.Ammo, st.NPCs.Len())
		}
	}

	st := g.State()
	sum.Phase = st.Phase
	sum.PlayState = st.Player.PlayState
	sum.Score = st.Score
	sum.Lives = st.Lives
	sum.Ammo = st.Ammo
	sum.NPCs = st.NPCs.Len()
	return sum
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration overrides")
	scriptPath := fs.String("script", "", "TOML replay script")
	seed := fs.Int64("seed", 0, "spawn RNG seed; overrides the script and config")
	frames := fs.Int("frames", 0, "frames to simulate (0 runs the script once)")
	delta := fs.Float64("delta", 0, "seconds per frame (default 1/60)")
	every := fs.Int("every", 0, "print progress every N frames")
	debug := fs.Bool("debug", false, "write a debug log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, closer, err := applog.Setup(*debug, "logs")
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	var script Script
	if *scriptPath != "" {
		script, err = LoadScript(*scriptPath)
		if err != nil {
			return err
		}
	}

	if script.Seed != 0 {
		cfg.Seed = script.Seed
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	step := 1.0 / 60
	if script.Delta > 0 {
		step = script.Delta
	}
	if *delta > 0 {
		step = *delta
	}

	sum := Simulate(cfg, script, *frames, step, *every, stdout, logger)
	fmt.Fprintln(stdout, sum)
	return nil
}
