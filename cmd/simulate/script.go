package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"orbfall/game"
)

// Step is one entry of a replay script: the same input held for Repeat frames.
type Step struct {
	Repeat  int        `toml:"repeat"`
	Keys    []game.Key `toml:"keys"`
	Pointer []float64  `toml:"pointer"`
	Click   bool       `toml:"click"`
}

// Script is the decoded replay file.
//
//	seed = 7
//	[[step]]
//	repeat = 1
//	keys = ["Enter"]
//	[[step]]
//	repeat = 120
//	pointer = [240, 500]
type Script struct {
	Seed  int64   `toml:"seed"`
	Delta float64 `toml:"delta"`
	Steps []Step  `toml:"step"`
}

var errBadStep = errors.New("invalid step")

// LoadScript reads and checks a replay file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(string(data))
}

// ParseScript decodes a replay script from TOML text.
func ParseScript(data string) (Script, error) {
	var s Script
	meta, err := toml.Decode(data, &s)
	if err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Script{}, fmt.Errorf("decode script: unknown key %q", undecoded[0].String())
	}
	for i, st := range s.Steps {
		if st.Repeat < 0 {
			return Script{}, fmt.Errorf("step %d: %w: repeat must not be negative", i+1, errBadStep)
		}
		if len(st.Pointer) != 0 && len(st.Pointer) != 2 {
			return Script{}, fmt.Errorf("step %d: %w: pointer needs two coordinates", i+1, errBadStep)
		}
	}
	return s, nil
}

// Frames expands the steps into one InputFrame per frame. A step without
// repeat counts once.
func (s Script) Frames() []game.InputFrame {
	var frames []game.InputFrame
	for _, st := range s.Steps {
		f := game.InputFrame{Keys: st.Keys, Down: st.Click}
		if len(st.Pointer) == 2 {
			f.X, f.Y, f.HasPoint = st.Pointer[0], st.Pointer[1], true
		}
		n := max(st.Repeat, 1)
		for range n {
			frames = append(frames, f)
		}
	}
	return frames
}
