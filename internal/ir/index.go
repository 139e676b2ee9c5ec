package ir

import (
	"fmt"

	"golang.org/x/tools/go/ssa"
)

// ============================================================================
// Instruction index
// ============================================================================

// Index assigns every real instruction of one function a stable ordinal.
// Ordinals follow block order and, within a block, instruction order, so
// two walks over an unchanged function agree on every ordinal.
//
// Debug pseudo-instructions carry no runtime semantics and are skipped;
// they never receive an ordinal and never appear in reports.
type Index struct {
	fn   *ssa.Function
	ords map[ssa.Instruction]int
}

// NewIndex numbers the instructions of fn.
func NewIndex(fn *ssa.Function) *Index {
	idx := &Index{
		fn:   fn,
		ords: make(map[ssa.Instruction]int),
	}
	n := 0
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			if _, ok := instr.(*ssa.DebugRef); ok {
				continue
			}
			idx.ords[instr] = n
			n++
		}
	}
	return idx
}

// Of returns the ordinal of instr. Asking for an instruction outside the
// indexed function is a caller bug and panics.
func (idx *Index) Of(instr ssa.Instruction) int {
	ord, ok := idx.ords[instr]
	if !ok {
		panic(fmt.Sprintf("ir: %s instruction not in current index", Mnemonic(instr)))
	}
	return ord
}

// Len returns the number of indexed instructions.
func (idx *Index) Len() int { return len(idx.ords) }

// Fn returns the function the index was built for.
func (idx *Index) Fn() *ssa.Function { return idx.fn }
