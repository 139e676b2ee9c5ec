package vars

// Scale keeps a named local whose address escapes through f, so the
// local stays in memory and every access goes through its cell.
func Scale(f func(*int)) int {
	n := 10
	f(&n)
	n++
	return n
}
