// Package srcvar correlates SSA address values with the source variables
// they belong to.
//
// The correlation comes from debug references, so the SSA program must be
// built with debug information. Without it every lookup misses, which
// callers treat as an instruction with no variable annotation.
package srcvar

import (
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// Record names one source variable and where it was declared. DeclaredAt
// is the zero Position when the declaration site is unknown.
type Record struct {
	Name       string
	DeclaredAt token.Position
}

// Table maps SSA address values to source variable records.
type Table struct {
	vars map[ssa.Value]Record
}

// Collect scans the debug references of fn and records, for every value
// that holds the address of a named source variable, the variable's name
// and declaration position. When one value carries several references the
// latest one in instruction order wins.
func Collect(fn *ssa.Function, fset *token.FileSet) *Table {
	t := &Table{vars: make(map[ssa.Value]Record)}
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			ref, ok := instr.(*ssa.DebugRef)
			if !ok || !ref.IsAddr {
				continue
			}
			obj := ref.Object()
			if obj == nil {
				continue
			}

			rec := Record{Name: obj.Name()}
			if fset != nil && obj.Pos().IsValid() {
				rec.DeclaredAt = fset.Position(obj.Pos())
			}
			t.put(ref.X, rec)
		}
	}
	return t
}

func (t *Table) put(v ssa.Value, rec Record) {
	if v == nil || rec.Name == "" {
		return
	}
	t.vars[v] = rec
}

// Lookup returns the record attached to v.
func (t *Table) Lookup(v ssa.Value) (Record, bool) {
	rec, ok := t.vars[v]
	return rec, ok
}

// Len returns the number of correlated values.
func (t *Table) Len() int { return len(t.vars) }
