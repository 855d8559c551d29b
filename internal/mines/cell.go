package mines

// toggleFlag flips a covered cell between hidden and flagged and returns the
// change to the flag budget. Revealed cells are left alone.
func (c *Cell) toggleFlag() (budget int) {
	switch c.Status {
	case Hidden:
		c.Status = Flagged
		return -1
	case Flagged:
		c.Status = Hidden
		return 1
	default:
		return 0
	}
}

// open reveals the cell. A flag on the cell is dropped first, which is
// reported through unflagged so the caller can refund it.
func (c *Cell) open() (opened, unflagged bool) {
	if c.Status == Revealed {
		return false, false
	}
	unflagged = c.Status == Flagged
	c.Status = Revealed
	return true, unflagged
}
