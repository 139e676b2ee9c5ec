package checkmerge_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/checkmerge/checkmerge"
)

// runModule analyzes one testdata package and returns its module report.
func runModule(t *testing.T, pkg string) *checkmerge.Module {
	t.Helper()

	results := analysistest.Run(t, analysistest.TestData(), checkmerge.Analyzer, pkg)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	mod, ok := results[0].Result.(*checkmerge.Module)
	require.True(t, ok, "analyzer result is %T, want *checkmerge.Module", results[0].Result)
	require.NotNil(t, mod)
	return mod
}

func findFunction(t *testing.T, mod *checkmerge.Module, name string) *checkmerge.Function {
	t.Helper()
	for _, fn := range mod.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not found in module %q", name, mod.Name)
	return nil
}

func instructions(fn *checkmerge.Function) []checkmerge.Instruction {
	var out []checkmerge.Instruction
	for _, block := range fn.Blocks {
		out = append(out, block.Instructions...)
	}
	return out
}

func findInstructions(fn *checkmerge.Function, opcode string) []checkmerge.Instruction {
	var out []checkmerge.Instruction
	for _, instr := range instructions(fn) {
		if instr.Opcode == opcode {
			out = append(out, instr)
		}
	}
	return out
}

func findInstruction(t *testing.T, fn *checkmerge.Function, opcode string) checkmerge.Instruction {
	t.Helper()
	matches := findInstructions(fn, opcode)
	if len(matches) == 0 {
		t.Fatalf("no %q instruction in function %q", opcode, fn.Name)
	}
	return matches[0]
}

func functionNames(mod *checkmerge.Module) []string {
	names := make([]string, 0, len(mod.Functions))
	for _, fn := range mod.Functions {
		names = append(names, fn.Name)
	}
	return names
}

func TestAnalyzer_ReadAfterWrite(t *testing.T) {
	mod := runModule(t, "basic")
	assert.Equal(t, "basic", mod.Name)

	// PutGet stores then loads the same cell: the load carries exactly
	// one edge, a RAW targeting the store.
	fn := findFunction(t, mod, "PutGet")
	store := findInstruction(t, fn, "store")
	load := findInstruction(t, fn, "load")

	require.Len(t, load.Dependencies, 1)
	assert.Equal(t, strconv.Itoa(store.Ordinal), load.Dependencies[0].Target)
	assert.Equal(t, "RAW", load.Dependencies[0].Code)
	assert.Empty(t, store.Dependencies)
}

func TestAnalyzer_MemoryFreeFunction(t *testing.T) {
	mod := runModule(t, "basic")

	fn := findFunction(t, mod, "Answer")
	for _, instr := range instructions(fn) {
		assert.Empty(t, instr.Dependencies, "instruction %d", instr.Ordinal)
	}
	assert.NotZero(t, fn.Digest.Instructions)
	assert.Zero(t, fn.Digest.Dependents)
	assert.Zero(t, fn.Digest.Edges)
}

func TestAnalyzer_BranchJoinDependencies(t *testing.T) {
	mod := runModule(t, "branches")

	// The bump call joins two predecessor blocks that each stored the
	// cell it accesses: one edge per predecessor store.
	fn := findFunction(t, mod, "Route")
	call := findInstruction(t, fn, "call")
	require.Len(t, call.Dependencies, 2)
	assert.NotEqual(t, call.Dependencies[0].Target, call.Dependencies[1].Target)
	for _, dep := range call.Dependencies {
		assert.Equal(t, "RAW", dep.Code)
	}

	// The stores themselves see nothing in their own blocks; the search
	// runs dry at the entry block and reports it as a block-level edge.
	stores := findInstructions(fn, "store")
	require.Len(t, stores, 2)
	for _, store := range stores {
		require.Len(t, store.Dependencies, 1)
		assert.Equal(t, "0", store.Dependencies[0].Target)
		assert.Equal(t, "Unknown", store.Dependencies[0].Code)
	}
}

func TestAnalyzer_WriteAfterRead(t *testing.T) {
	mod := runModule(t, "branches")

	// bump loads, increments, stores: the store depends on the load.
	fn := findFunction(t, mod, "bump")
	store := findInstruction(t, fn, "store")
	load := findInstruction(t, fn, "load")

	require.Len(t, store.Dependencies, 1)
	assert.Equal(t, strconv.Itoa(load.Ordinal), store.Dependencies[0].Target)
	assert.Equal(t, "WAR", store.Dependencies[0].Code)
}

func TestAnalyzer_VariableCorrelation(t *testing.T) {
	mod := runModule(t, "vars")

	fn := findFunction(t, mod, "Scale")
	var annotated int
	for _, instr := range instructions(fn) {
		if instr.Variable == nil {
			continue
		}
		annotated++
		assert.Equal(t, "n", instr.Variable.Name)
		assert.NotEmpty(t, instr.Variable.Location)
	}
	assert.NotZero(t, annotated)
	assert.Equal(t, annotated, fn.Digest.Variables)

	codes := make(map[string]bool)
	for _, instr := range instructions(fn) {
		for _, dep := range instr.Dependencies {
			codes[dep.Code] = true
		}
	}
	for _, want := range []string{"RAW", "WAR", "WAW", "RAR"} {
		assert.True(t, codes[want], "missing dependency code %s", want)
	}
}

func TestAnalyzer_DeterministicRendering(t *testing.T) {
	first := runModule(t, "vars").Bytes()
	second := runModule(t, "vars").Bytes()
	assert.Equal(t, string(first), string(second))
}

func TestAnalyzer_IgnoreDirectives(t *testing.T) {
	mod := runModule(t, "ignored")

	names := functionNames(mod)
	assert.Contains(t, names, "Kept")
	assert.NotContains(t, names, "Scratch", "function-level ignore")
	assert.NotContains(t, names, "Hidden", "file-level ignore")
}

func TestAnalyzer_GeneratedFilesSkipped(t *testing.T) {
	mod := runModule(t, "filefilter")

	names := functionNames(mod)
	assert.Contains(t, names, "Real")
	assert.NotContains(t, names, "Machine")
}
