package memssa

import (
	"go/token"
	"testing"

	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/ir"
)

var (
	addrP = &ssa.Parameter{}
	addrQ = &ssa.Parameter{}
)

func loadOf(addr ssa.Value) *ssa.UnOp {
	return &ssa.UnOp{Op: token.MUL, X: addr}
}

func storeTo(addr ssa.Value) *ssa.Store {
	return &ssa.Store{Addr: addr}
}

func TestInteracts(t *testing.T) {
	tests := []struct {
		name      string
		dependent ir.Mode
		prior     ir.Mode
		want      bool
	}{
		{"read after write", ir.ModeRead, ir.ModeWrite, true},
		{"write after write", ir.ModeWrite, ir.ModeWrite, true},
		{"write after read", ir.ModeWrite, ir.ModeRead, true},
		{"read after read", ir.ModeRead, ir.ModeRead, false},
		{"read after nothing", ir.ModeRead, ir.ModeNone, false},
		{"write after nothing", ir.ModeWrite, ir.ModeNone, false},
		{"anything after readwrite", ir.ModeRead, ir.ModeReadWrite, true},
		{"readwrite after read", ir.ModeReadWrite, ir.ModeRead, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interacts(tt.dependent, tt.prior); got != tt.want {
				t.Errorf("interacts(%v, %v) = %v, want %v", tt.dependent, tt.prior, got, tt.want)
			}
		})
	}
}

func TestAddressRoot(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		if got := AddressRoot(addrP); got != ssa.Value(addrP) {
			t.Error("addressRoot should return unwrapped values as-is")
		}
	})

	t.Run("unwraps changetype chains", func(t *testing.T) {
		wrapped := &ssa.ChangeType{X: &ssa.ChangeType{X: addrP}}
		if got := AddressRoot(wrapped); got != ssa.Value(addrP) {
			t.Error("addressRoot should unwrap nested changetype conversions")
		}
	})
}

func TestScanBlock_NearestInteractingAccessWins(t *testing.T) {
	oracle := New(nil)

	older := storeTo(addrP)
	newer := storeTo(addrP)
	load := loadOf(addrP)
	block := &ssa.BasicBlock{Instrs: []ssa.Instruction{older, newer, load}}

	res, ok := oracle.ScanBlock(load, block, 2)
	if !ok {
		t.Fatal("scan should hit a prior store")
	}
	if res.Inst != ssa.Instruction(newer) {
		t.Error("scan should stop at the nearest prior store")
	}
	if !res.IsDef() {
		t.Error("a store to the loaded address should resolve as a definition")
	}
}

func TestScanBlock_ReadsDoNotConflict(t *testing.T) {
	oracle := New(nil)

	first := loadOf(addrP)
	second := loadOf(addrP)
	block := &ssa.BasicBlock{Instrs: []ssa.Instruction{first, second}}

	if _, ok := oracle.ScanBlock(second, block, 1); ok {
		t.Error("a load should not depend on a prior load")
	}
}

func TestScanBlock_WriteAfterReadClobbers(t *testing.T) {
	oracle := New(nil)

	load := loadOf(addrP)
	store := storeTo(addrP)
	block := &ssa.BasicBlock{Instrs: []ssa.Instruction{load, store}}

	res, ok := oracle.ScanBlock(store, block, 1)
	if !ok {
		t.Fatal("a store should depend on a prior load of the same address")
	}
	if !res.IsClobber() {
		t.Error("a prior read never defines; the result should be a clobber")
	}
}

func TestScanBlock_CallsClobber(t *testing.T) {
	oracle := New(nil)

	call := &ssa.Call{}
	load := loadOf(addrP)
	block := &ssa.BasicBlock{Instrs: []ssa.Instruction{call, load}}

	res, ok := oracle.ScanBlock(load, block, 1)
	if !ok {
		t.Fatal("an unresolved call should interact with any access")
	}
	if !res.IsClobber() || res.IsDef() {
		t.Error("calls never define a location, only clobber it")
	}
}

func TestResolve_DefDetection(t *testing.T) {
	oracle := New(nil)

	t.Run("store to same address defines", func(t *testing.T) {
		res := oracle.Resolve(loadOf(addrP), storeTo(addrP))
		if !res.IsDef() {
			t.Error("store to the loaded address should be a def")
		}
	})

	t.Run("store to other address clobbers", func(t *testing.T) {
		res := oracle.Resolve(loadOf(addrP), storeTo(addrQ))
		if !res.IsClobber() {
			t.Error("store to a different address should be a clobber")
		}
	})

	t.Run("alloc of the address defines", func(t *testing.T) {
		alloc := &ssa.Alloc{}
		res := oracle.Resolve(loadOf(alloc), alloc)
		if !res.IsDef() {
			t.Error("the allocation of a cell defines it")
		}
	})

	t.Run("changetype spellings compare equal", func(t *testing.T) {
		wrapped := &ssa.ChangeType{X: addrP}
		res := oracle.Resolve(loadOf(addrP), &ssa.Store{Addr: wrapped})
		if !res.IsDef() {
			t.Error("a store through a changetype of the address should still define")
		}
	})

	t.Run("addressless dependent clobbers", func(t *testing.T) {
		res := oracle.Resolve(&ssa.Call{}, storeTo(addrP))
		if !res.IsClobber() {
			t.Error("dependents without a single address resolve as clobbers")
		}
	})
}

func TestDependencyOf_DetachedInstruction(t *testing.T) {
	oracle := New(nil)

	// A synthetic instruction has no enclosing block.
	res, local := oracle.DependencyOf(&ssa.Call{})
	if !local {
		t.Fatal("detached instructions must resolve locally")
	}
	if res.Inst != nil || res.IsDef() || res.IsClobber() || res.IsNonFuncLocal() {
		t.Error("detached instructions resolve as unclassified")
	}
}

func TestNonLocal_DetachedInstruction(t *testing.T) {
	oracle := New(nil)

	if got := oracle.NonLocalPointerDependencies(&ssa.Call{}); got != nil {
		t.Errorf("detached instruction should have no non-local results, got %d", len(got))
	}
	if got := oracle.NonLocalCallDependencies(&ssa.Call{}); got != nil {
		t.Errorf("detached call should have no non-local results, got %d", len(got))
	}
}

func TestIndexIn(t *testing.T) {
	store := storeTo(addrP)
	load := loadOf(addrP)
	block := &ssa.BasicBlock{Instrs: []ssa.Instruction{store, load}}

	if got := IndexIn(block, load); got != 1 {
		t.Errorf("indexIn(load) = %d, want 1", got)
	}
	if got := IndexIn(block, &ssa.Return{}); got != 2 {
		t.Errorf("indexIn(missing) = %d, want block length", got)
	}
}

func TestIsEntry_SyntheticBlocks(t *testing.T) {
	// Synthetic blocks have no parent function and are never the entry.
	if IsEntry(&ssa.BasicBlock{}) {
		t.Error("a parentless block should not count as the entry")
	}
}
