package rules

// pool hands out cells for spawning and takes back removed ones. Every
// handout starts a new lifecycle with a fresh ID.
type pool struct {
	free   []*Cell
	nextID CellID
}

func newPool(capacity int, nextID CellID) *pool {
	p := &pool{
		free:   make([]*Cell, 0, max(capacity, 0)),
		nextID: nextID,
	}
	for range capacity {
		p.free = append(p.free, &Cell{})
	}
	return p
}

func (p *pool) acquire(color Color) (*Cell, error) {
	n := len(p.free)
	if n == 0 {
		return nil, ErrPoolExhausted
	}
	c := p.free[n-1]
	p.free = p.free[:n-1]
	*c = Cell{ID: p.nextID, Color: color}
	p.nextID++
	return c, nil
}

func (p *pool) release(c *Cell) {
	p.free = append(p.free, c)
}

func (p *pool) available() int {
	return len(p.free)
}
