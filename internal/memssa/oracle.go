// Package memssa resolves memory dependency queries against SSA form.
//
// Resolution scans backwards over the instruction stream: first through
// the dependent's own block, then breadth-first through predecessor
// blocks. The first interacting access on each path wins. A path that
// runs off the function entry resolves to live-on-entry state.
package memssa

import (
	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/cfg"
	"github.com/checkmerge/checkmerge/internal/ir"
	"github.com/checkmerge/checkmerge/internal/memdep"
)

// Oracle answers memdep queries for one SSA program. It is stateless
// apart from its mode resolver and can serve any number of functions.
type Oracle struct {
	modes ir.CalleeModes
	cfg   *cfg.Analyzer
}

// New creates an Oracle that resolves call modes through modes.
func New(modes ir.CalleeModes) *Oracle {
	return &Oracle{
		modes: modes,
		cfg:   cfg.New(),
	}
}

var _ memdep.Oracle = (*Oracle)(nil)

// DependencyOf resolves instr against its own block. Detached
// instructions resolve to an unclassified local result; instructions in
// the entry block whose scan misses resolve to live-on-entry state.
func (o *Oracle) DependencyOf(instr ssa.Instruction) (memdep.Result, bool) {
	block := instr.Block()
	if block == nil {
		return memdep.Unclassified(), true
	}
	if res, ok := o.scanBlock(instr, block, indexIn(block, instr)); ok {
		return res, true
	}
	if isEntry(block) {
		return memdep.NonFuncLocal(), true
	}
	return memdep.Unclassified(), false
}

// NonLocalCallDependencies walks predecessor blocks for a call whose
// local scan missed.
func (o *Oracle) NonLocalCallDependencies(call ssa.CallInstruction) []memdep.BlockResult {
	return o.nonLocal(call)
}

// NonLocalPointerDependencies walks predecessor blocks for a memory
// access whose local scan missed.
func (o *Oracle) NonLocalPointerDependencies(instr ssa.Instruction) []memdep.BlockResult {
	return o.nonLocal(instr)
}

func (o *Oracle) nonLocal(instr ssa.Instruction) []memdep.BlockResult {
	start := instr.Block()
	if start == nil {
		return nil
	}

	var results []memdep.BlockResult
	o.cfg.WalkPreds(start, func(block *ssa.BasicBlock) bool {
		if res, ok := o.scanBlock(instr, block, len(block.Instrs)); ok {
			results = append(results, memdep.BlockResult{Result: res, Block: block})
			// A hit satisfies this path; blocks behind it are shadowed.
			return false
		}
		if isEntry(block) {
			results = append(results, memdep.BlockResult{Result: memdep.NonFuncLocal(), Block: block})
		}
		return true
	})
	return results
}

// scanBlock searches block for the nearest instruction before from that
// the dependent interacts with.
func (o *Oracle) scanBlock(dependent ssa.Instruction, block *ssa.BasicBlock, from int) (memdep.Result, bool) {
	depMode := ir.ModeOf(dependent, o.modes)
	for i := from - 1; i >= 0; i-- {
		prior := block.Instrs[i]
		if !interacts(depMode, ir.ModeOf(prior, o.modes)) {
			continue
		}
		return o.resolve(dependent, prior), true
	}
	return memdep.Unclassified(), false
}

// interacts reports whether a prior access can conflict with the
// dependent. Any prior write conflicts; a prior read conflicts only with
// a dependent write. Two reads never conflict.
func interacts(dependent, prior ir.Mode) bool {
	if prior.Writes() {
		return true
	}
	return dependent.Writes() && prior.Reads()
}

// resolve decides whether prior is the defining write of the location
// the dependent accesses or merely a clobbering access. Only stores and
// allocations of the identical address define; calls never do.
func (o *Oracle) resolve(dependent, prior ssa.Instruction) memdep.Result {
	addr, ok := ir.AddressOf(dependent)
	if !ok {
		return memdep.Clobber(prior)
	}
	root := addressRoot(addr)

	switch p := prior.(type) {
	case *ssa.Store:
		if addressRoot(p.Addr) == root {
			return memdep.Def(prior)
		}
	case *ssa.Alloc:
		if ssa.Value(p) == root {
			return memdep.Def(prior)
		}
	}
	return memdep.Clobber(prior)
}

// addressRoot unwraps type-preserving conversions so two spellings of
// the same address compare equal.
func addressRoot(v ssa.Value) ssa.Value {
	for {
		ct, ok := v.(*ssa.ChangeType)
		if !ok {
			return v
		}
		v = ct.X
	}
}

// indexIn locates instr inside block. Instructions not present scan the
// whole block, which is what the predecessor walk wants.
func indexIn(block *ssa.BasicBlock, instr ssa.Instruction) int {
	for i, in := range block.Instrs {
		if in == instr {
			return i
		}
	}
	return len(block.Instrs)
}

func isEntry(block *ssa.BasicBlock) bool {
	fn := block.Parent()
	return fn != nil && len(fn.Blocks) > 0 && fn.Blocks[0] == block
}
