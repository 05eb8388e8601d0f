package param

// Cursor walks a table's parameters round-robin, matching the order in which an
// encoder wrote them.
type Cursor struct {
	table *Table
	index int
}

// NextParameter advances to the next parameter, wrapping after the last one.
//
// Returns the new index, or InvalidIndex if the table is empty.
func (c *Cursor) NextParameter() int {
	c.index = c.table.NextIndex(c.index)

	return c.index
}

// Index returns the current index; InvalidIndex before the first advance.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the definition at the current index.
func (c *Cursor) Current() (Definition, bool) {
	if c.index < 0 || c.index >= c.table.Len() {
		return Definition{}, false
	}

	return c.table.defs[c.index], true
}

// Reset positions the cursor before the first parameter.
func (c *Cursor) Reset() {
	c.index = InvalidIndex
}

// Table returns the table the cursor walks.
func (c *Cursor) Table() *Table {
	return c.table
}

// Seek positions the cursor at index, so that the next NextParameter returns the
// parameter after it. Seek(InvalidIndex) is the same as Reset.
func (c *Cursor) Seek(index int) bool {
	if index == InvalidIndex {
		c.Reset()
		return true
	}
	if index < 0 || index >= c.table.Len() {
		return false
	}
	c.index = index

	return true
}
