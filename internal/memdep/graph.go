package memdep

import (
	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/ir"
)

// ============================================================================
// Edges and edge sets
// ============================================================================

// Edge is one dependency of an instruction. Exactly one of Inst and Block
// is set: instruction-anchored edges carry the prior instruction, block
// anchored edges carry the block the resolution stopped in and are always
// KindUnknown.
type Edge struct {
	Inst  ssa.Instruction
	Block *ssa.BasicBlock
	Kind  Kind
}

// Set is an insertion-ordered set of edges. Adding an edge that is
// already present leaves the set unchanged.
type Set struct {
	edges []Edge
	seen  map[Edge]bool
}

// NewSet creates an empty edge set.
func NewSet() *Set {
	return &Set{seen: make(map[Edge]bool)}
}

// Add records a dependency on inst, or on block when inst is nil. A
// result with neither anchor is dropped: there is nothing to point the
// edge at.
func (s *Set) Add(inst ssa.Instruction, block *ssa.BasicBlock, kind Kind) {
	if inst == nil && block == nil {
		return
	}

	edge := Edge{Inst: inst, Kind: kind}
	if inst == nil {
		edge.Block = block
		edge.Kind = KindUnknown
	}

	if s.seen[edge] {
		return
	}
	s.seen[edge] = true
	s.edges = append(s.edges, edge)
}

// Edges returns the edges in insertion order.
func (s *Set) Edges() []Edge { return s.edges }

// Len returns the number of distinct edges.
func (s *Set) Len() int { return len(s.edges) }

// ============================================================================
// Graph construction
// ============================================================================

// Map holds the dependency sets of one function, keyed by instruction.
// Instructions without memory behavior, and memory instructions whose
// every resolved dependency was dropped, have no entry.
type Map map[ssa.Instruction]*Set

// Build resolves the dependencies of every memory-touching instruction
// of fn through the oracle.
func Build(fn *ssa.Function, modes ir.CalleeModes, oracle Oracle) Map {
	deps := make(Map)
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			if !ir.ModeOf(instr, modes).Touches() {
				continue
			}
			set := collect(instr, oracle)
			if set.Len() > 0 {
				deps[instr] = set
			}
		}
	}
	return deps
}

func collect(instr ssa.Instruction, oracle Oracle) *Set {
	set := NewSet()

	if res, local := oracle.DependencyOf(instr); local {
		set.Add(res.Inst, nil, KindOf(res))
		return set
	}

	var results []BlockResult
	if call, ok := instr.(ssa.CallInstruction); ok {
		results = oracle.NonLocalCallDependencies(call)
	} else {
		results = oracle.NonLocalPointerDependencies(instr)
	}
	for _, r := range results {
		set.Add(r.Inst, r.Block, KindOf(r.Result))
	}
	return set
}
