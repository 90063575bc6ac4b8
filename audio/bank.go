// Package audio turns named effect requests into mixed sample streams.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Config controls the sound bank
type Config struct {
	// SampleRate of the mixer output
	SampleRate beep.SampleRate

	// Volume is a linear gain applied to every effect, 1 is unchanged
	Volume float64

	// Muted drops every request
	Muted bool
}

// DefaultConfig returns the bank defaults
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Volume:     0.8,
	}
}

// BufferSize is the speaker buffer length to pair with the bank
func (c Config) BufferSize() int {
	return c.SampleRate.N(50 * time.Millisecond)
}

// Bank holds decoded effects and mixes the ones currently playing.
// It is itself a beep.Streamer: hand it to the speaker once.
type Bank struct {
	cfg    Config
	format beep.Format
	logger *slog.Logger

	mu     sync.Mutex
	sounds map[string]*beep.Buffer
	mixer  *beep.Mixer
	warned map[string]bool
}

// NewBank synthesises the built-in effects. A nil logger uses slog.Default().
func NewBank(cfg Config, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}

	b := &Bank{
		cfg:    cfg,
		format: beep.Format{SampleRate: cfg.SampleRate, NumChannels: 2, Precision: 2},
		logger: logger,
		sounds: make(map[string]*beep.Buffer, len(voices)),
		mixer:  &beep.Mixer{},
		warned: make(map[string]bool),
	}
	for name, layers := range voices {
		buf := beep.NewBuffer(b.format)
		buf.Append(synthesize(layers, cfg.SampleRate))
		b.sounds[name] = buf
	}
	return b
}

// Format returns the output format of the bank
func (b *Bank) Format() beep.Format { return b.format }

// Names lists the known effect names in sorted order
func (b *Bank) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.sounds))
	for name := range b.sounds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the length in samples of a named effect, 0 if unknown
func (b *Bank) Len(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.sounds[name]; ok {
		return buf.Len()
	}
	return 0
}

// Playing returns how many effects are currently mixed
func (b *Bank) Playing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len()
}

// PlaySound starts the named effect. Unknown names log a warning once.
func (b *Bank) PlaySound(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.sounds[name]
	if !ok {
		if !b.warned[name] {
			b.warned[name] = true
			b.logger.Warn("unknown sound", "name", name)
		}
		return
	}
	if b.cfg.Muted {
		return
	}
	b.mixer.Add(newVolume(buf.Streamer(0, buf.Len()), b.cfg.Volume))
}

// Stream mixes every playing effect; called from the speaker goroutine.
func (b *Bank) Stream(samples [][2]float64) (n int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Stream(samples)
}

func (b *Bank) Err() error { return nil }

// LoadOverrides replaces built-in effects with <name>.wav files from dir.
// A missing dir is not an error; files that fail to decode are skipped with
// a warning and reported in the joined error.
func (b *Bank) LoadOverrides(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sound dir: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(dir, entry.Name())

		buf, err := b.decodeWAV(path)
		if err != nil {
			b.logger.Warn("skipping sound override", "path", path, "err", err)
			errs = append(errs, err)
			continue
		}

		b.mu.Lock()
		b.sounds[name] = buf
		b.mu.Unlock()
		b.logger.Debug("sound override loaded", "name", name, "samples", buf.Len())
	}
	return errors.Join(errs...)
}

func (b *Bank) decodeWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != b.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, b.format.SampleRate, s)
	}
	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}
