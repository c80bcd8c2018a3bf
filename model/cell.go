package model

import "github.com/sheikhrachel/golcore/rules"

// Cell holds one binary state plus the staged state computed for the next generation.
// Outside of a generation transition staged always equals current.
type Cell struct {
	current bool
	staged  bool
}

// NewCell creates a cell with the given initial state
func NewCell(alive bool) Cell {
	return Cell{current: alive, staged: alive}
}

// ComputeNext stages the next state from the number of live neighbors.
// The current state is left untouched until Commit.
func (c *Cell) ComputeNext(aliveNeighbors int) {
	c.staged = rules.ApplyConwayRules(aliveNeighbors, c.current)
}

// Commit applies the staged state and reports whether the cell changed
func (c *Cell) Commit() bool {
	changed := c.current != c.staged
	c.current = c.staged
	return changed
}

// IsAlive returns the committed state of the cell
func (c *Cell) IsAlive() bool {
	return c.current
}
