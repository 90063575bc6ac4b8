package game

// Key is a backend-neutral key name such as "Enter", "P" or "ArrowLeft".
type Key string

// Input is the per-frame input source the state machine polls. The host
// advances it before each Update so edge queries refer to the current frame.
type Input interface {
	// IsKeyDown reports whether the key is held this frame
	IsKeyDown(k Key) bool

	// IsKeyPressed is true only on the frame the key went from up to down
	IsKeyPressed(k Key) bool

	// IsKeyReleased is true only on the frame the key went from down to up
	IsKeyReleased(k Key) bool

	// PointerDown reports whether the primary pointer button is held
	PointerDown() bool

	// Pointer returns the pointer position; ok is false when the pointer
	// should not drive the player this frame
	Pointer() (x, y float64, ok bool)
}

// InputFrame is the raw input of one frame for ScriptInput.
type InputFrame struct {
	Keys     []Key
	Down     bool
	X, Y     float64
	HasPoint bool
}

// ScriptInput replays a fixed sequence of frames. Once the script runs out
// the last frame repeats with no keys held.
type ScriptInput struct {
	frames []InputFrame
	next   int

	cur  map[Key]bool
	prev map[Key]bool

	frame InputFrame
}

// NewScriptInput creates a replay source; call Advance before each Update.
func NewScriptInput(frames ...InputFrame) *ScriptInput {
	return &ScriptInput{
		frames: frames,
		cur:    make(map[Key]bool),
		prev:   make(map[Key]bool),
	}
}

// Push appends frames to the end of the script.
func (s *ScriptInput) Push(frames ...InputFrame) {
	s.frames = append(s.frames, frames...)
}

// Advance moves to the next scripted frame and recomputes key edges.
func (s *ScriptInput) Advance() {
	s.prev, s.cur = s.cur, s.prev
	clear(s.cur)

	if s.next < len(s.frames) {
		s.frame = s.frames[s.next]
		s.next++
	} else {
		s.frame = InputFrame{}
	}
	for _, k := range s.frame.Keys {
		s.cur[k] = true
	}
}

// Remaining returns how many scripted frames have not been consumed
func (s *ScriptInput) Remaining() int {
	return len(s.frames) - s.next
}

func (s *ScriptInput) IsKeyDown(k Key) bool { return s.cur[k] }

func (s *ScriptInput) IsKeyPressed(k Key) bool { return s.cur[k] && !s.prev[k] }

func (s *ScriptInput) IsKeyReleased(k Key) bool { return !s.cur[k] && s.prev[k] }

func (s *ScriptInput) PointerDown() bool { return s.frame.Down }

func (s *ScriptInput) Pointer() (float64, float64, bool) {
	return s.frame.X, s.frame.Y, s.frame.HasPoint
}
