// Package render draws a game.State with ebiten.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"orbfall/assets"
	"orbfall/game"
)

var (
	colorBackground = color.RGBA{7, 11, 30, 255}
	colorHUDBand    = color.RGBA{0, 0, 0, 160}
	colorText       = color.RGBA{232, 240, 255, 255}
	colorBanner     = color.RGBA{255, 210, 58, 255}
	colorShieldRing = color.RGBA{127, 255, 212, 200}
)

// ImageSource provides sprites by name; nil means not available yet.
// Once Loaded reports true a nil image means the sprite is missing for good.
type ImageSource interface {
	Image(name string) image.Image
	Loaded() bool
}

// Renderer handles rendering of the game state
type Renderer struct {
	cfg     game.Config
	sprites ImageSource
	logger  *slog.Logger
	face    text.Face

	cache   map[string]*ebiten.Image
	missing map[string]bool

	// Debug draws frame statistics in the bottom-left corner
	Debug bool
}

// NewRenderer creates a new renderer. sprites may be nil, in which case
// every entity is drawn as a placeholder.
func NewRenderer(cfg game.Config, sprites ImageSource, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		cfg:     cfg,
		sprites: sprites,
		logger:  logger,
		face:    text.NewGoXFace(basicfont.Face7x13),
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

// Draw renders one frame of st. fps is shown in debug mode only.
func (r *Renderer) Draw(screen *ebiten.Image, st *game.State, fps float64) {
	screen.Fill(colorBackground)

	for _, tile := range st.Backdrop {
		r.drawEntity(screen, tile, assets.Backdrop, 1)
	}

	if st.Phase != game.PhaseInit {
		for _, npc := range st.NPCs.Items() {
			r.drawEntity(screen, npc, npc.Name, 1)
		}
		for _, proj := range st.Projectiles.Items() {
			r.drawEntity(screen, proj, assets.Projectile, 1)
		}
		r.drawPlayer(screen, st)
		r.drawSparks(screen, st.Sparks)
	}

	r.drawHUD(screen, game.HUDFor(st, r.cfg.Keys))

	if r.Debug {
		msg := fmt.Sprintf("FPS %.0f  TPS %.0f  npcs %d  shots %d  %s",
			fps, ebiten.ActualTPS(), st.NPCs.Len(), st.Projectiles.Len(), st.Phase)
		ebitenutil.DebugPrintAt(screen, msg, 6, r.cfg.ScreenHeight-18)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, st *game.State) {
	p := st.Player
	e := p.Entity
	if st.Phase == game.PhasePause || st.Phase == game.PhaseLose {
		e.MoveTo(st.Held.X, st.Held.Y)
	}

	alpha := float32(1)
	if game.ShieldFaded(st) {
		alpha = 0.45
	}
	r.drawEntity(screen, &e, playerSprite(p.PlayState), alpha)

	if p.PlayState == game.PlayShield {
		// the ring shrinks onto the sprite as the shield runs out
		left := 1 - st.Shield.Progress()
		radius := float32(max(e.Width, e.Height)/2 + 2 + 6*left)
		vector.StrokeCircle(screen, float32(e.X), float32(e.Y), radius, 2, colorShieldRing, true)
	}
}

func (r *Renderer) drawSparks(screen *ebiten.Image, sparks *game.Particles) {
	if sparks == nil {
		return
	}
	for _, p := range sparks.Items() {
		clr := p.Color
		clr.A = uint8(float64(clr.A) * 0.8 * p.Alpha())
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), clr, true)
	}
}

// drawEntity draws e centered on its position, scaled to its size. A sprite
// that is not loaded yet falls back to a filled rectangle.
func (r *Renderer) drawEntity(screen *ebiten.Image, e *game.Entity, sprite string, alpha float32) {
	if e.Width <= 0 || e.Height <= 0 {
		return
	}
	img := r.image(sprite)
	if img == nil {
		clr := placeholderColor(e.Kind)
		clr.A = uint8(float32(clr.A) * alpha)
		vector.DrawFilledRect(screen, float32(e.Left()), float32(e.Top()), float32(e.Width), float32(e.Height), clr, false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(e.Width/float64(b.Dx()), e.Height/float64(b.Dy()))
	op.GeoM.Translate(e.Left(), e.Top())
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud game.HUD) {
	w := float64(r.cfg.ScreenWidth)
	h := float64(r.cfg.ScreenHeight)

	if hud.Status != "" {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(r.cfg.HUDBuffer), colorHUDBand, false)
		r.drawText(screen, hud.Status, 8, (r.cfg.HUDBuffer-13)/2, 1, text.AlignStart, colorText)
	}
	if hud.Banner != "" {
		r.drawText(screen, hud.Banner, w/2, h/2-48, 3, text.AlignCenter, colorBanner)
	}
	if hud.Hint != "" {
		y := h/2 + 8
		if hud.Banner == "" {
			y = h - 28
		}
		r.drawText(screen, hud.Hint, w/2, y, 1, text.AlignCenter, colorText)
	}
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y, scale float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, r.face, op)
}

// image returns the cached ebiten image for a sprite, converting it the
// first time the source has it.
func (r *Renderer) image(name string) *ebiten.Image {
	if img, ok := r.cache[name]; ok {
		return img
	}
	if r.sprites == nil {
		return nil
	}
	src := r.sprites.Image(name)
	if src == nil {
		if r.sprites.Loaded() && !r.missing[name] {
			r.missing[name] = true
			r.logger.Warn("sprite missing, drawing placeholder", "name", name)
		}
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.cache[name] = img
	return img
}

func playerSprite(ps game.PlayState) string {
	switch ps {
	case game.PlayShield:
		return assets.PlayerShield
	case game.PlayShoot, game.PlaySuper:
		return assets.PlayerShoot
	case game.PlayDeath:
		return assets.PlayerDeath
	default:
		return assets.Player
	}
}

func placeholderColor(k game.Kind) color.RGBA {
	switch k {
	case game.KindPlayer:
		return color.RGBA{58, 208, 255, 255}
	case game.KindOrb:
		return color.RGBA{178, 58, 255, 255}
	case game.KindFireAmmo:
		return color.RGBA{255, 122, 26, 255}
	case game.KindProjectile:
		return color.RGBA{255, 210, 58, 255}
	default:
		return color.RGBA{12, 18, 44, 255}
	}
}
