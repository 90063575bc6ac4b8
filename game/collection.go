package game

import (
	"slices"

	"github.com/google/uuid"
)

// Collection is an ordered, mutable set of entities of one role
// (projectiles or npcs). Iteration order is insertion order.
type Collection struct {
	items []*Entity
}

// NewCollection creates an empty collection with room for capacity entities
func NewCollection(capacity int) *Collection {
	return &Collection{items: make([]*Entity, 0, capacity)}
}

// Add appends an entity; nil is ignored
func (c *Collection) Add(e *Entity) {
	if e == nil {
		return
	}
	c.items = append(c.items, e)
}

// Remove deletes e and reports whether it was present
func (c *Collection) Remove(e *Entity) bool {
	for i, item := range c.items {
		if item == e {
			c.RemoveAt(i)
			return true
		}
	}
	return false
}

// RemoveAt deletes the entity at index i
func (c *Collection) RemoveAt(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items = slices.Delete(c.items, i, i+1)
}

// FindByName returns the first entity with the given name
func (c *Collection) FindByName(name string) *Entity {
	for _, e := range c.items {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindByID returns the entity with the given id
func (c *Collection) FindByID(id uuid.UUID) *Entity {
	for _, e := range c.items {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// CountByName returns how many entities carry the given name
func (c *Collection) CountByName(name string) int {
	n := 0
	for _, e := range c.items {
		if e.Name == name {
			n++
		}
	}
	return n
}

func (c *Collection) Len() int { return len(c.items) }

func (c *Collection) At(i int) *Entity { return c.items[i] }

// Items exposes the backing slice for read-only iteration
func (c *Collection) Items() []*Entity { return c.items }

// Clear removes all entities but keeps capacity
func (c *Collection) Clear() {
	clear(c.items)
	c.items = c.items[:0]
}

// Compact drops every entity that is no longer alive, keeping order
func (c *Collection) Compact() int {
	kept := c.items[:0]
	for _, e := range c.items {
		if e.Alive {
			kept = append(kept, e)
		}
	}
	removed := len(c.items) - len(kept)
	clear(c.items[len(kept):])
	c.items = kept
	return removed
}
