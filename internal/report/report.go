// Package report assembles and serializes per-function memory dependence
// reports.
//
// A report is rebuilt from scratch for every analyzed function and
// rendered into an indentation-based text format that a downstream
// merge checker diffs across two versions of the same function. The
// rendering is deterministic: unchanged inputs produce byte-identical
// output.
package report

import (
	"fmt"
	"go/token"
	"sort"
	"strconv"

	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/ir"
	"github.com/checkmerge/checkmerge/internal/memdep"
	"github.com/checkmerge/checkmerge/internal/srcvar"
)

// ============================================================================
// Report model
// ============================================================================

// Variable is the source-variable annotation of one instruction.
type Variable struct {
	Name     string
	Location string
}

// Dependency is one rendered dependency line: the identifier of the
// target (an instruction ordinal or a block identifier) and the opaque
// dependency code the merge checker compares.
type Dependency struct {
	Target string
	Code   string
}

// Instruction is the report entry of one instruction.
type Instruction struct {
	Ordinal      int
	Opcode       string
	Location     string
	Variable     *Variable
	Dependencies []Dependency
}

// Block is the report entry of one basic block, in IR order.
type Block struct {
	Name         string
	Instructions []Instruction
}

// Function is the complete report of one function.
type Function struct {
	Ident    string
	Name     string
	Module   string
	Location string
	Blocks   []Block
	Digest   Digest
}

// Module aggregates the function reports of one analyzed module, in
// analysis order.
type Module struct {
	Name      string
	Functions []*Function
	Digest    Digest
}

// Digest is the advisory per-function summary. It is logging output for
// humans; the machine-consumed report does not contain it.
type Digest struct {
	Instructions int
	Variables    int
	Edges        int
	Dependents   int
}

// Add folds another digest into d.
func (d *Digest) Add(other Digest) {
	d.Instructions += other.Instructions
	d.Variables += other.Variables
	d.Edges += other.Edges
	d.Dependents += other.Dependents
}

// Correlator resolves SSA values to source variable records.
type Correlator interface {
	Lookup(v ssa.Value) (srcvar.Record, bool)
}

// ============================================================================
// Report construction
// ============================================================================

// BuildFunction assembles the report of fn from the instruction index,
// the dependency map, and the variable correlation table. Missing
// positions, missing correlations, and missing dependency entries render
// as absent fields, never as failures.
func BuildFunction(fn *ssa.Function, idx *ir.Index, deps memdep.Map, vars Correlator, modes ir.CalleeModes) *Function {
	fset := fileSet(fn)
	out := &Function{
		Ident:    functionIdent(fn),
		Name:     fn.Name(),
		Module:   modulePath(fn),
		Location: declLocation(fset, fn),
	}

	for _, block := range fn.Blocks {
		rep := Block{Name: strconv.Itoa(block.Index)}
		for _, instr := range block.Instrs {
			if _, ok := instr.(*ssa.DebugRef); ok {
				continue
			}

			entry := Instruction{
				Ordinal:  idx.Of(instr),
				Opcode:   ir.Mnemonic(instr),
				Location: instrLocation(fset, instr),
			}
			out.Digest.Instructions++

			if addr, ok := ir.AddressOf(instr); ok && vars != nil {
				if rec, ok := vars.Lookup(addr); ok {
					entry.Variable = &Variable{
						Name:     rec.Name,
						Location: positionString(rec.DeclaredAt),
					}
					out.Digest.Variables++
				}
			}

			if set, ok := deps[instr]; ok {
				entry.Dependencies = dependencyLines(instr, set, idx, modes)
				out.Digest.Edges += len(entry.Dependencies)
				out.Digest.Dependents++
			}

			rep.Instructions = append(rep.Instructions, entry)
		}
		out.Blocks = append(out.Blocks, rep)
	}
	return out
}

// dependencyLines renders the edge set of instr in deterministic order:
// instruction-anchored edges first, ascending by target ordinal, then
// block-anchored edges in first-appearance order.
func dependencyLines(instr ssa.Instruction, set *memdep.Set, idx *ir.Index, modes ir.CalleeModes) []Dependency {
	edges := append([]memdep.Edge(nil), set.Edges()...)
	sort.SliceStable(edges, func(i, j int) bool {
		ri, rj := edgeRank(edges[i], idx), edgeRank(edges[j], idx)
		if ri != rj {
			return ri < rj
		}
		if bi, bj := blockIndex(edges[i]), blockIndex(edges[j]); bi != bj {
			return bi < bj
		}
		return edges[i].Kind < edges[j].Kind
	})

	depMode := ir.ModeOf(instr, modes)
	lines := make([]Dependency, 0, len(edges))
	for _, e := range edges {
		if e.Inst != nil {
			lines = append(lines, Dependency{
				Target: strconv.Itoa(idx.Of(e.Inst)),
				Code:   memdep.Classify(depMode, ir.ModeOf(e.Inst, modes)),
			})
			continue
		}
		lines = append(lines, Dependency{
			Target: strconv.Itoa(e.Block.Index),
			Code:   e.Kind.String(),
		})
	}
	return lines
}

// edgeRank orders instruction edges by ordinal and pushes block edges
// behind them.
func edgeRank(e memdep.Edge, idx *ir.Index) int {
	if e.Inst != nil {
		return idx.Of(e.Inst)
	}
	return int(^uint(0) >> 1)
}

// blockIndex breaks rank ties between block edges by block order.
func blockIndex(e memdep.Edge) int {
	if e.Block == nil {
		return -1
	}
	return e.Block.Index
}

// ============================================================================
// Identity and position helpers
// ============================================================================

func fileSet(fn *ssa.Function) *token.FileSet {
	if fn.Prog == nil {
		return nil
	}
	return fn.Prog.Fset
}

func functionIdent(fn *ssa.Function) string {
	if fn.Pkg != nil {
		return fn.RelString(fn.Pkg.Pkg)
	}
	return fn.RelString(nil)
}

func modulePath(fn *ssa.Function) string {
	if fn.Pkg == nil || fn.Pkg.Pkg == nil {
		return ""
	}
	return fn.Pkg.Pkg.Path()
}

// declLocation renders a function declaration site as "file:line", or
// "~" when the site is unknown.
func declLocation(fset *token.FileSet, fn *ssa.Function) string {
	if fset == nil || !fn.Pos().IsValid() {
		return "~"
	}
	pos := fset.Position(fn.Pos())
	return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
}

func instrLocation(fset *token.FileSet, instr ssa.Instruction) string {
	if fset == nil || !instr.Pos().IsValid() {
		return ""
	}
	return positionString(fset.Position(instr.Pos()))
}

// positionString renders "file:line:col", or the empty string for the
// zero position.
func positionString(pos token.Position) string {
	if !pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}
