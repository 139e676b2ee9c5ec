// Package memdep builds per-function memory dependency graphs.
//
// For every instruction that touches memory, the prior accesses it may
// conflict with are resolved through an Oracle and recorded as a set of
// dependency edges. Edges point at instructions when the oracle can name
// one and at basic blocks when it cannot.
package memdep

import (
	"golang.org/x/tools/go/ssa"
)

// ============================================================================
// Dependency kinds
// ============================================================================

// Kind describes what a resolved dependency target is.
type Kind int

const (
	// KindClobber marks a prior access that may overlap the dependent's
	// location without being its definition.
	KindClobber Kind = iota
	// KindDef marks the defining write of the dependent's location.
	KindDef
	// KindNonFuncLocal marks state that is live on entry to the function.
	KindNonFuncLocal
	// KindUnknown marks a dependency that could not be resolved to an
	// instruction.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindClobber:
		return "Clobber"
	case KindDef:
		return "Def"
	case KindNonFuncLocal:
		return "NonFuncLocal"
	default:
		return "Unknown"
	}
}

// ============================================================================
// Oracle results
// ============================================================================

// Result is one resolved dependency. Inst is nil when the dependency is
// not anchored to an instruction, as for state live on function entry.
type Result struct {
	Inst ssa.Instruction

	clobber      bool
	def          bool
	nonFuncLocal bool
}

// Clobber marks instr as a potentially overlapping prior access.
func Clobber(instr ssa.Instruction) Result {
	return Result{Inst: instr, clobber: true}
}

// Def marks instr as the defining write of the queried location.
func Def(instr ssa.Instruction) Result {
	return Result{Inst: instr, def: true}
}

// NonFuncLocal marks the dependency as state live on function entry.
func NonFuncLocal() Result {
	return Result{nonFuncLocal: true}
}

// Unclassified is a dependency the oracle could not characterize at all.
func Unclassified() Result {
	return Result{}
}

// IsClobber reports whether the result is a clobbering access.
func (r Result) IsClobber() bool { return r.clobber }

// IsDef reports whether the result is a defining write.
func (r Result) IsDef() bool { return r.def }

// IsNonFuncLocal reports whether the result is live-on-entry state.
func (r Result) IsNonFuncLocal() bool { return r.nonFuncLocal }

// KindOf collapses a result into its dependency kind.
func KindOf(r Result) Kind {
	switch {
	case r.clobber:
		return KindClobber
	case r.def:
		return KindDef
	case r.nonFuncLocal:
		return KindNonFuncLocal
	default:
		return KindUnknown
	}
}

// BlockResult is a Result found while walking predecessor blocks; Block
// names the block the walk stopped in.
type BlockResult struct {
	Result
	Block *ssa.BasicBlock
}

// ============================================================================
// Oracle
// ============================================================================

// Oracle answers dependency queries for single instructions.
//
// DependencyOf resolves within the instruction's own block; local reports
// whether that resolution is conclusive. When it is not, the caller asks
// one of the non-local variants, which walk predecessor blocks and may
// return several results, one per independent control flow path.
type Oracle interface {
	DependencyOf(instr ssa.Instruction) (res Result, local bool)
	NonLocalCallDependencies(call ssa.CallInstruction) []BlockResult
	NonLocalPointerDependencies(instr ssa.Instruction) []BlockResult
}
