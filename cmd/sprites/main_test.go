package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orbfall/assets"
)

func TestDump(t *testing.T) {
	dir := t.TempDir()
	lib := assets.NewLibrary("", slog.New(slog.DiscardHandler))

	written, err := Dump(context.Background(), lib, dir, 2)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(written) != len(assets.Sprites) {
		t.Fatalf("wrote %d files, want %d", len(written), len(assets.Sprites))
	}

	if w, h := pngSize(t, filepath.Join(dir, assets.Orb+".png")); w != 80 || h != 80 {
		t.Errorf("orb.png is %dx%d, want 80x80", w, h)
	}
}

func TestDumpRejectsScale(t *testing.T) {
	lib := assets.NewLibrary("", slog.New(slog.DiscardHandler))
	if _, err := Dump(context.Background(), lib, t.TempDir(), 0); err == nil {
		t.Fatal("expected an error for scale 0")
	}
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestRunUsesSpritesUnderAssetsRoot(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()

	marker := image.NewRGBA(image.Rect(0, 0, 3, 5))
	marker.Set(1, 1, color.RGBA{R: 255, A: 255})
	if err := assets.SavePNG(marker, filepath.Join(assets.SpriteDir(root), assets.Orb+".png")); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"-assets", root, "-out", out}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	if w, h := pngSize(t, filepath.Join(out, assets.Orb+".png")); w != 3 || h != 5 {
		t.Errorf("orb.png is %dx%d, want the 3x5 override", w, h)
	}
	if w, h := pngSize(t, filepath.Join(out, assets.FireAmmo+".png")); w != 32 || h != 32 {
		t.Errorf("fireAmmo.png is %dx%d, want the embedded 32x32", w, h)
	}
	if n := strings.Count(stdout.String(), "\n"); n != len(assets.Sprites) {
		t.Errorf("printed %d paths, want %d", n, len(assets.Sprites))
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	if err := run([]string{"-scale", "0", "-out", t.TempDir()}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for scale 0")
	}
	if err := run([]string{"-nope"}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
