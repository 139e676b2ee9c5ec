package memssa

import (
	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/memdep"
)

// Export unexported functions for testing.

var (
	Interacts   = interacts
	AddressRoot = addressRoot
	IndexIn     = indexIn
	IsEntry     = isEntry
)

// ScanBlock exports scanBlock for external tests.
func (o *Oracle) ScanBlock(dependent ssa.Instruction, block *ssa.BasicBlock, from int) (memdep.Result, bool) {
	return o.scanBlock(dependent, block, from)
}

// Resolve exports resolve for external tests.
func (o *Oracle) Resolve(dependent, prior ssa.Instruction) memdep.Result {
	return o.resolve(dependent, prior)
}
