package game

// Hitbox is an axis-aligned rectangle in screen coordinates (Y grows downward).
type Hitbox struct {
	Left, Right, Top, Bottom float64
}

// Hitbox returns the entity's box shrunk by its collision margin on every side.
// Half extents never go below zero. A margin of half the size or more leaves a
// point, which the strict overlap test never matches, so Config.Validate keeps
// configured margins below half the size.
func (e *Entity) Hitbox() Hitbox {
	halfW := max(e.Width/2-e.CollisionMargin, 0)
	halfH := max(e.Height/2-e.CollisionMargin, 0)
	return Hitbox{
		Left:   e.X - halfW,
		Right:  e.X + halfW,
		Top:    e.Y - halfH,
		Bottom: e.Y + halfH,
	}
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func Overlaps(a, b Hitbox) bool {
	return a.Left < b.Right && a.Right > b.Left && a.Top < b.Bottom && a.Bottom > b.Top
}

// Collides checks if two entities' margin-adjusted boxes intersect
func Collides(a, b *Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return Overlaps(a.Hitbox(), b.Hitbox())
}

// OverlapFunc handles one colliding pair. Returning false stops matching a
// against further entities of the second collection.
type OverlapFunc func(a, b *Entity) bool

// ForEachOverlap checks every live pairing of as and bs.
// No spatial index: entity counts stay in the tens.
// A nil fn means no collision handling this frame.
func ForEachOverlap(as, bs *Collection, fn OverlapFunc) {
	if fn == nil || as == nil || bs == nil {
		return
	}
	for _, a := range as.Items() {
		if !a.Alive {
			continue
		}
		for _, b := range bs.Items() {
			if !b.Alive || !a.Alive {
				continue
			}
			if Collides(a, b) && !fn(a, b) {
				break
			}
		}
	}
}

// FirstOverlap returns the first live entity in c that collides with e
func FirstOverlap(e *Entity, c *Collection) *Entity {
	for _, other := range c.Items() {
		if other.Alive && other != e && Collides(e, other) {
			return other
		}
	}
	return nil
}
