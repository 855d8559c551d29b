package mines

// cascade opens the connected region of zero-valued cells reachable from
// start, along with the numbered cells bordering it. start must already be
// revealed. onOpen is called once for every cell the cascade opens.
//
// A cell joins the queue only on its transition to revealed, so every cell is
// expanded at most once.
func (b *Board) cascade(start Point, onOpen func(p Point, unflagged bool)) (opened int) {
	todo := newCellTodo(len(b.Cells))
	todo.add(b.index(start.X, start.Y))

	for i, ok := todo.pop(); ok; i, ok = todo.pop() {
		p := b.point(i)
		for n := range b.Neighbors(p.X, p.Y) {
			c := b.At(n.X, n.Y)
			// a zero cell never borders a mine; the check keeps a flagged
			// mine shut should that ever change
			if c.IsMine() {
				continue
			}
			changed, unflagged := c.open()
			if !changed {
				continue
			}
			opened++
			if onOpen != nil {
				onOpen(n, unflagged)
			}
			if c.Value == 0 {
				todo.add(b.index(n.X, n.Y))
			}
		}
	}
	return opened
}
