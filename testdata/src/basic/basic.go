package basic

// Answer touches no memory at all.
func Answer() int {
	return 42
}

// Put stores v into the cell behind p.
func Put(p *int, v int) {
	*p = v
}

// Get reads the cell behind p.
func Get(p *int) int {
	return *p
}

// PutGet stores v behind p and immediately reads it back, a
// read-after-write on the same cell within one block.
func PutGet(p *int, v int) int {
	*p = v
	return *p
}
