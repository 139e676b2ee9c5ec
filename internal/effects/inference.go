// Package effects infers whole-function memory access summaries.
//
// The summary of a function is the union of the access modes of its
// instructions, with callee bodies folded in transitively. Bodiless
// functions and unresolvable call targets summarize as readwrite.
package effects

import (
	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/ir"
)

// Inference computes and caches function summaries. It is not safe for
// concurrent use; the report pipeline runs single-threaded.
type Inference struct {
	cache    map[*ssa.Function]ir.Mode
	visiting map[*ssa.Function]bool
}

// New creates a new Inference with empty caches.
func New() *Inference {
	return &Inference{
		cache:    make(map[*ssa.Function]ir.Mode),
		visiting: make(map[*ssa.Function]bool),
	}
}

var _ ir.CalleeModes = (*Inference)(nil)

// CallMode resolves the summary of a call's static callee. Dynamic calls
// have no static callee and summarize as readwrite.
func (inf *Inference) CallMode(call ssa.CallInstruction) ir.Mode {
	callee := call.Common().StaticCallee()
	if callee == nil {
		return ir.ModeReadWrite
	}
	return inf.Of(callee)
}

// Of returns the memory summary of fn.
func (inf *Inference) Of(fn *ssa.Function) ir.Mode {
	if fn == nil || len(fn.Blocks) == 0 {
		// No body to inspect.
		return ir.ModeReadWrite
	}
	if mode, ok := inf.cache[fn]; ok {
		return mode
	}
	if inf.visiting[fn] {
		// Recursion cycle; the result is not cached here because the
		// caller on the stack still owns this function's summary.
		return ir.ModeReadWrite
	}
	inf.visiting[fn] = true
	defer delete(inf.visiting, fn)

	mode := ir.ModeNone
scan:
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			mode |= ir.ModeOf(instr, inf)
			if mode == ir.ModeReadWrite {
				break scan
			}
		}
	}

	inf.cache[fn] = mode
	return mode
}
