package srcvar

import (
	"golang.org/x/tools/go/ssa"
)

// Export unexported methods for testing.

// Put exports put for external tests.
func (t *Table) Put(v ssa.Value, rec Record) {
	t.put(v, rec)
}
