package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"
)

// MonitorConfig tunes the frame-rate watchdog
type MonitorConfig struct {
	// Window is how many seconds of frames make up one FPS sample
	Window float64

	// MinFPS below which a drop is reported
	MinFPS float64

	// Warmup ignores drops during the first seconds after start
	Warmup float64

	// Cooldown is the minimum game time between two drop reports
	Cooldown float64

	// ProfileDir enables CPU profile capture on drops when not empty
	ProfileDir string

	// CaptureDuration is how long a CPU profile runs
	CaptureDuration time.Duration
}

// DefaultMonitorConfig returns the watchdog defaults
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Window:          0.5,
		MinFPS:          45,
		Warmup:          3,
		Cooldown:        10,
		CaptureDuration: 5 * time.Second,
	}
}

// Monitor measures frame rate from the deltas it is fed and reports drops.
// It measures raw host deltas, before any clamping.
type Monitor struct {
	cfg    MonitorConfig
	logger *slog.Logger

	fps        float64
	frames     int
	window     float64
	clock      float64
	lastReport float64
	drops      int

	mu        sync.Mutex
	capturing bool
}

// NewMonitor creates a monitor; a nil logger uses slog.Default().
func NewMonitor(cfg MonitorConfig, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Window <= 0 {
		cfg.Window = 0.5
	}
	return &Monitor{
		cfg:        cfg,
		logger:     logger,
		fps:        60,
		lastReport: -cfg.Cooldown,
	}
}

// Tick records one frame of delta seconds. It returns true when this frame
// closed a window whose rate fell below MinFPS and a report was made.
func (m *Monitor) Tick(delta float64, entities int) bool {
	if delta < 0 {
		delta = 0
	}
	m.clock += delta
	m.window += delta
	m.frames++
	if m.window < m.cfg.Window {
		return false
	}

	m.fps = float64(m.frames) / m.window
	m.frames = 0
	m.window = 0

	if m.fps >= m.cfg.MinFPS || m.clock < m.cfg.Warmup || m.clock-m.lastReport < m.cfg.Cooldown {
		return false
	}
	m.lastReport = m.clock
	m.drops++
	m.logger.Warn("frame rate drop", "fps", fmt.Sprintf("%.1f", m.fps), "entities", entities)

	if m.cfg.ProfileDir != "" {
		m.capture(fmt.Sprintf("fps%.0f-entities%d", m.fps, entities))
	}
	return true
}

// FPS returns the rate of the last completed window
func (m *Monitor) FPS() float64 { return m.fps }

// Drops returns how many drops were reported
func (m *Monitor) Drops() int { return m.drops }

// Capturing reports whether a CPU profile is being written
func (m *Monitor) Capturing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capturing
}

// capture starts a CPU profile in the background; one at a time.
func (m *Monitor) capture(reason string) {
	m.mu.Lock()
	if m.capturing {
		m.mu.Unlock()
		return
	}
	m.capturing = true
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			m.capturing = false
			m.mu.Unlock()
		}()
		path, err := m.captureCPUProfile(reason)
		if err != nil {
			m.logger.Warn("cpu profile capture failed", "err", err)
			return
		}
		m.logger.Info("cpu profile saved", "path", path)
	}()
}

func (m *Monitor) captureCPUProfile(reason string) (string, error) {
	if err := os.MkdirAll(m.cfg.ProfileDir, 0o755); err != nil {
		return "", fmt.Errorf("create profile dir: %w", err)
	}
	name := fmt.Sprintf("fps-drop-%s-%s.cpu.prof", time.Now().Format("20060102-150405"), reason)
	path := filepath.Join(m.cfg.ProfileDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return "", fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(m.cfg.CaptureDuration)
	pprof.StopCPUProfile()
	return path, nil
}
