// Package input adapts ebiten's keyboard, mouse and touch state to game.Input.
package input

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"orbfall/game"
)

var keyNames = map[game.Key]ebiten.Key{
	"Enter": ebiten.KeyEnter, "Space": ebiten.KeySpace, "Escape": ebiten.KeyEscape,
	"Tab": ebiten.KeyTab, "Backspace": ebiten.KeyBackspace,
	"ArrowLeft": ebiten.KeyArrowLeft, "ArrowRight": ebiten.KeyArrowRight,
	"ArrowUp": ebiten.KeyArrowUp, "ArrowDown": ebiten.KeyArrowDown,
	"ShiftLeft": ebiten.KeyShiftLeft, "ShiftRight": ebiten.KeyShiftRight,
	"ControlLeft": ebiten.KeyControlLeft, "ControlRight": ebiten.KeyControlRight,
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,
	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7, "8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,
}

// Ebiten reads live input. Call Update once per tick before the game update.
type Ebiten struct {
	bound map[game.Key]ebiten.Key

	touches      []ebiten.TouchID
	cursorX      int
	cursorY      int
	cursorMoved  bool
	pointerX     float64
	pointerY     float64
	pointerReady bool
}

// New resolves the configured bindings; unknown key names are logged and
// never report as down.
func New(keys game.Keys, logger *slog.Logger) *Ebiten {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Ebiten{bound: make(map[game.Key]ebiten.Key)}
	for _, k := range []game.Key{keys.Play, keys.Pause, keys.Resume, keys.Reset, keys.Shoot, keys.Quit, keys.Left, keys.Right, keys.Up, keys.Down} {
		if k == "" {
			continue
		}
		if ek, ok := keyNames[k]; ok {
			e.bound[k] = ek
		} else {
			logger.Warn("unknown key binding", "key", string(k))
		}
	}
	e.cursorX, e.cursorY = ebiten.CursorPosition()
	return e
}

// Update samples pointer state for this tick
func (e *Ebiten) Update() {
	e.touches = ebiten.AppendTouchIDs(e.touches[:0])
	if len(e.touches) > 0 {
		x, y := ebiten.TouchPosition(e.touches[0])
		e.pointerX, e.pointerY = float64(x), float64(y)
		e.pointerReady = true
		return
	}

	x, y := ebiten.CursorPosition()
	e.cursorMoved = x != e.cursorX || y != e.cursorY
	e.cursorX, e.cursorY = x, y
	e.pointerX, e.pointerY = float64(x), float64(y)
	e.pointerReady = e.cursorMoved || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (e *Ebiten) key(k game.Key) (ebiten.Key, bool) {
	ek, ok := e.bound[k]
	return ek, ok
}

func (e *Ebiten) IsKeyDown(k game.Key) bool {
	ek, ok := e.key(k)
	return ok && ebiten.IsKeyPressed(ek)
}

func (e *Ebiten) IsKeyPressed(k game.Key) bool {
	ek, ok := e.key(k)
	return ok && inpututil.IsKeyJustPressed(ek)
}

func (e *Ebiten) IsKeyReleased(k game.Key) bool {
	ek, ok := e.key(k)
	return ok && inpututil.IsKeyJustReleased(ek)
}

// PointerDown is the left mouse button or any touch
func (e *Ebiten) PointerDown() bool {
	return len(e.touches) > 0 || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Pointer drives the player only while the mouse moves, a button is held
// or a finger is down, so the arrow keys keep working otherwise.
func (e *Ebiten) Pointer() (float64, float64, bool) {
	return e.pointerX, e.pointerY, e.pointerReady
}
