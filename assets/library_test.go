package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func opaquePixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterizeEmbedded(t *testing.T) {
	for _, sp := range Sprites {
		t.Run(sp.Name, func(t *testing.T) {
			data, err := spriteFS.ReadFile("sprites/" + sp.Name + ".svg")
			if err != nil {
				t.Fatalf("embedded sprite missing: %v", err)
			}
			img, err := Rasterize(data, sp.Width, sp.Height)
			if err != nil {
				t.Fatalf("Rasterize: %v", err)
			}
			if img.Bounds().Dx() != sp.Width || img.Bounds().Dy() != sp.Height {
				t.Errorf("size = %v, want %dx%d", img.Bounds(), sp.Width, sp.Height)
			}
			if opaquePixels(img) == 0 {
				t.Errorf("sprite rendered fully transparent")
			}
		})
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize([]byte("<svg/>"), 0, 10); err == nil {
		t.Error("zero width should fail")
	}
	if _, err := Rasterize([]byte("<svg><circle"), 10, 10); err == nil {
		t.Error("truncated svg should fail")
	}
}

func TestLibraryLoad(t *testing.T) {
	lib := NewLibrary("", slog.New(slog.DiscardHandler))
	if lib.Image(Player) != nil {
		t.Fatal("sprite available before load")
	}

	if err := <-lib.LoadAsync(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !lib.Loaded() {
		t.Error("Loaded = false after load")
	}
	for _, sp := range Sprites {
		if lib.Image(sp.Name) == nil {
			t.Errorf("%s missing after load", sp.Name)
		}
	}
	if lib.Image("nope") != nil {
		t.Error("unknown sprite should be nil")
	}
	if got := len(lib.Names()); got != len(Sprites) {
		t.Errorf("Names has %d entries, want %d", got, len(Sprites))
	}
}

func TestLibraryOverride(t *testing.T) {
	dir := t.TempDir()
	marker := image.NewRGBA(image.Rect(0, 0, 3, 5))
	marker.Set(1, 1, color.RGBA{R: 255, A: 255})
	if err := SavePNG(marker, filepath.Join(dir, Orb+".png")); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, Projectile+".png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(dir, slog.New(slog.DiscardHandler))
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	orb := lib.Image(Orb)
	if orb == nil || orb.Bounds().Dx() != 3 || orb.Bounds().Dy() != 5 {
		t.Fatalf("override not used, got %v", orb)
	}
	if _, _, _, a := orb.At(1, 1).RGBA(); a == 0 {
		t.Error("override pixels lost")
	}

	proj := lib.Image(Projectile)
	if proj == nil || proj.Bounds().Dx() != 8 {
		t.Errorf("broken override should fall back to the embedded sprite, got %v", proj)
	}
}

func TestLibraryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lib := NewLibrary("", slog.New(slog.DiscardHandler))
	err := lib.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Load = %v, want context.Canceled", err)
	}
	if len(lib.Names()) != 0 {
		t.Errorf("cancelled load produced %d sprites", len(lib.Names()))
	}
}

func TestSpriteDir(t *testing.T) {
	if got := SpriteDir(""); got != "" {
		t.Errorf(`SpriteDir("") = %q, want ""`, got)
	}
	if got, want := SpriteDir("res"), filepath.Join("res", "sprites"); got != want {
		t.Errorf("SpriteDir(res) = %q, want %q", got, want)
	}
}
