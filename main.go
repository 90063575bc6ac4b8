package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"

	"orbfall/applog"
	"orbfall/assets"
	"orbfall/audio"
	"orbfall/game"
	"orbfall/input"
	"orbfall/render"
)

// AppGame adapts the simulation to ebiten's Update/Draw/Layout loop.
type AppGame struct {
	game     *game.Game
	input    *input.Ebiten
	renderer *render.Renderer
	monitor  *game.Monitor
	cfg      game.Config

	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	a.lastUpdateTime = now

	st := a.game.State()
	a.monitor.Tick(deltaTime, st.NPCs.Len()+st.Projectiles.Len())

	a.input.Update()
	if err := a.game.Update(deltaTime); errors.Is(err, game.ErrQuit) {
		return ebiten.Termination
	}
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.game.State(), a.monitor.FPS())
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.ScreenWidth, a.cfg.ScreenHeight
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "orbfall:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML file overriding the default configuration")
	assetsDir := flag.String("assets", "", "directory with sprites/*.png and sounds/*.wav overrides")
	debug := flag.Bool("debug", false, "write a debug log and show frame stats")
	logDir := flag.String("logdir", "logs", "directory for the debug log")
	seed := flag.Int64("seed", 0, "spawn RNG seed (0 picks one)")
	mute := flag.Bool("mute", false, "disable sound")
	profileDir := flag.String("profile", "", "capture CPU profiles into this directory when the frame rate drops")
	flag.Parse()

	logger, closer, err := applog.Setup(*debug, *logDir)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sprites := assets.NewLibrary(assets.SpriteDir(*assetsDir), logger)
	loaded := sprites.LoadAsync(ctx)
	go func() {
		if err := <-loaded; err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("sprite loading stopped", "err", err)
		}
	}()

	sfx := setupAudio(*mute, *assetsDir, logger)

	in := input.New(cfg.Keys, logger)
	g := game.NewGame(cfg, in, sfx, nil, logger)

	renderer := render.NewRenderer(cfg, sprites, logger)
	renderer.Debug = *debug

	monitorCfg := game.DefaultMonitorConfig()
	monitorCfg.ProfileDir = *profileDir

	app := &AppGame{
		game:           g,
		input:          in,
		renderer:       renderer,
		monitor:        game.NewMonitor(monitorCfg, logger),
		cfg:            cfg,
		lastUpdateTime: time.Now(),
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Orbfall")
	ebiten.SetWindowResizable(true)

	logger.Info("starting", "seed", cfg.Seed, "config", *configPath, "assets", *assetsDir)
	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// setupAudio builds the sound bank and hands it to the speaker. Without an
// audio device the game runs silent.
func setupAudio(mute bool, assetsDir string, logger *slog.Logger) game.SoundPlayer {
	audioCfg := audio.DefaultConfig()
	audioCfg.Muted = mute
	bank := audio.NewBank(audioCfg, logger)

	if assetsDir != "" {
		if err := bank.LoadOverrides(filepath.Join(assetsDir, "sounds")); err != nil {
			logger.Warn("some sound overrides failed", "err", err)
		}
	}
	if mute {
		return bank
	}

	if err := speaker.Init(audioCfg.SampleRate, audioCfg.BufferSize()); err != nil {
		logger.Warn("audio disabled", "err", err)
		return game.NopSound()
	}
	speaker.Play(bank)
	return bank
}
