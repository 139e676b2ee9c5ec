package branches

// bump increments the cell behind p.
func bump(p *int) {
	*p = *p + 1
}

// Route writes one of two values into the cell behind p depending on
// cond, then bumps it. The bump call joins two predecessor blocks that
// each wrote the cell.
func Route(p *int, cond bool) {
	if cond {
		*p = 1
	} else {
		*p = 2
	}
	bump(p)
}
