package primitives

import "fmt"

// CellSet efficiently represents a set of cell indexes on a board.
//
// It is backed by a slice of booleans sized to the board's padded layout, so
// membership checks are a single index. A search adds a cell before descending
// and removes it on the way back up.
type CellSet struct {
	present []bool
	count   int
}

func NewCellSet(capacity int) *CellSet {
	return &CellSet{
		present: make([]bool, capacity),
	}
}

// Add adds a cell to the set.
func (c *CellSet) Add(id int) error {
	if id < 0 || id >= len(c.present) {
		return fmt.Errorf("cell %d is out of range [0, %d)", id, len(c.present))
	}

	if c.present[id] {
		return nil
	}

	c.count++
	c.present[id] = true
	return nil
}

// Remove removes a cell from the set. Cells that are not present, or out of
// range, are ignored.
func (c *CellSet) Remove(id int) {
	if id < 0 || id >= len(c.present) || !c.present[id] {
		return
	}
	c.present[id] = false
	c.count--
}

// Contains checks if a cell is in the set.
func (c *CellSet) Contains(id int) bool {
	if c == nil || id < 0 || id >= len(c.present) {
		return false
	}
	return c.present[id]
}

// Clone returns an independent copy of the set.
func (c *CellSet) Clone() *CellSet {
	present := make([]bool, len(c.present))
	copy(present, c.present)
	return &CellSet{present: present, count: c.count}
}

// Capacity returns the number of cells that can be added to the set.
func (c *CellSet) Capacity() int {
	return len(c.present)
}

// Count returns the number of cells in the set.
func (c *CellSet) Count() int {
	return c.count
}
