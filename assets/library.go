// Package assets rasterises the sprite set and serves it by name.
package assets

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/sync/errgroup"
)

//go:embed sprites/*.svg
var spriteFS embed.FS

// Sprite names. NPC and projectile sprites share the entity name.
const (
	Player       = "player"
	PlayerShield = "player_shield"
	PlayerShoot  = "player_shoot"
	PlayerDeath  = "player_death"
	Orb          = "orb"
	FireAmmo     = "fireAmmo"
	Projectile   = "projectile"
	Backdrop     = "backdrop"
)

// SpriteDir returns the sprite override directory under an assets root, the
// layout shared by the game and cmd/sprites. An empty root disables overrides.
func SpriteDir(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, "sprites")
}

// Sprite is one entry of the sprite set
type Sprite struct {
	Name          string
	Width, Height int
}

// Sprites is the full sprite set with raster sizes
var Sprites = []Sprite{
	{Player, 48, 48},
	{PlayerShield, 48, 48},
	{PlayerShoot, 48, 48},
	{PlayerDeath, 48, 48},
	{Orb, 40, 40},
	{FireAmmo, 32, 32},
	{Projectile, 8, 16},
	{Backdrop, 480, 640},
}

// Library holds rasterised sprites. Lookups are safe while Load runs;
// a sprite that is not ready yet returns nil.
type Library struct {
	overrideDir string
	logger      *slog.Logger

	mu     sync.RWMutex
	images map[string]image.Image
	loaded bool
}

// NewLibrary creates an empty library. PNG files named <sprite>.png in
// overrideDir replace the embedded art; an empty dir disables overrides.
func NewLibrary(overrideDir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		overrideDir: overrideDir,
		logger:      logger,
		images:      make(map[string]image.Image, len(Sprites)),
	}
}

// Image returns the named sprite, or nil if it is unknown or not loaded yet.
func (l *Library) Image(name string) image.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.images[name]
}

// Loaded reports whether a Load pass has finished
func (l *Library) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Names returns the names of every sprite currently available
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.images))
	for name := range l.images {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load rasterises every sprite concurrently. A sprite that fails is logged
// and left missing; only cancellation of ctx is returned as an error.
func (l *Library) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, sp := range Sprites {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := l.load(sp)
			if err != nil {
				l.logger.Warn("sprite unavailable", "name", sp.Name, "err", err)
				return nil
			}

			l.mu.Lock()
			l.images[sp.Name] = img
			l.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	l.mu.Lock()
	l.loaded = true
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}
	l.logger.Debug("sprites loaded", "count", len(l.Names()))
	return nil
}

// LoadAsync runs Load in the background; the channel yields its result once.
func (l *Library) LoadAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- l.Load(ctx)
	}()
	return done
}

func (l *Library) load(sp Sprite) (image.Image, error) {
	if l.overrideDir != "" {
		img, err := loadPNG(filepath.Join(l.overrideDir, sp.Name+".png"))
		if err == nil {
			l.logger.Debug("sprite override", "name", sp.Name)
			return img, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("ignoring sprite override", "name", sp.Name, "err", err)
		}
	}

	data, err := spriteFS.ReadFile("sprites/" + sp.Name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("read embedded sprite %q: %w", sp.Name, err)
	}
	img, err := Rasterize(data, sp.Width, sp.Height)
	if err != nil {
		return nil, fmt.Errorf("rasterize sprite %q: %w", sp.Name, err)
	}
	return img, nil
}

// Rasterize renders SVG data into a width x height RGBA image.
func Rasterize(svg []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
