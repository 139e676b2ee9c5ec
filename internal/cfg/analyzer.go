// Package cfg provides control flow graph traversal for checkmerge.
package cfg

import (
	"golang.org/x/tools/go/ssa"
)

// Analyzer walks control flow graphs of SSA functions.
// It is stateless and can be reused across multiple analyses.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Visit is called once per block reached by a walk. Returning false stops
// the walk from expanding past the visited block; its predecessors are
// not enqueued.
type Visit func(block *ssa.BasicBlock) (expand bool)

// WalkPreds traverses the predecessors of start in breadth-first order,
// calling visit once per reachable block. The start block itself is not
// visited. Traversal order is fixed by each block's Preds slice, so two
// walks over an unchanged function visit blocks in the same order.
func (a *Analyzer) WalkPreds(start *ssa.BasicBlock, visit Visit) {
	if start == nil || visit == nil {
		return
	}

	visited := make(map[*ssa.BasicBlock]bool)
	queue := make([]*ssa.BasicBlock, 0, len(start.Preds))
	visited[start] = true

	for _, pred := range start.Preds {
		if !visited[pred] {
			visited[pred] = true
			queue = append(queue, pred)
		}
	}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		if !visit(block) {
			continue
		}
		for _, pred := range block.Preds {
			if !visited[pred] {
				visited[pred] = true
				queue = append(queue, pred)
			}
		}
	}
}
