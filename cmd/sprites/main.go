// Command sprites writes the game's sprite set to PNG files, for inspecting
// the rasterised art or as a starting point for -assets overrides.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"orbfall/applog"
	"orbfall/assets"
)

// Dump loads every sprite and saves it as <outDir>/<name>.png, scaled by
// scale. It returns the written paths.
func Dump(ctx context.Context, lib *assets.Library, outDir string, scale int) ([]string, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	if err := lib.Load(ctx); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range lib.Names() {
		img := lib.Image(name)
		if scale > 1 {
			img = upscale(img, scale)
		}
		path := filepath.Join(outDir, name+".png")
		if err := assets.SavePNG(img, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func upscale(src image.Image, scale int) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "sprites:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sprites", flag.ContinueOnError)
	outDir := fs.String("out", "sprites-out", "output directory")
	assetsDir := fs.String("assets", "", "assets root; PNGs in its sprites/ directory replace the embedded art")
	scale := fs.Int("scale", 1, "integer upscale factor")
	debug := fs.Bool("debug", false, "write a debug log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, closer, err := applog.Setup(*debug, "logs")
	if err != nil {
		return err
	}
	defer closer.Close()

	lib := assets.NewLibrary(assets.SpriteDir(*assetsDir), logger)
	written, err := Dump(context.Background(), lib, *outDir, *scale)
	if err != nil {
		logger.Error("dump failed", "err", err)
		return err
	}
	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	logger.Info("sprites written", "count", len(written), "dir", *outDir)
	return nil
}
