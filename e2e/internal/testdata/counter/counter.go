package counter

// Total is the running total cell.
var Total int

// Add accumulates v into Total.
func Add(v int) {
	Total = Total + v
}

// Reset clears Total.
func Reset() {
	Total = 0
}

// Snapshot stores the current total behind p and reads it back.
func Snapshot(p *int) int {
	*p = Total
	return *p
}
