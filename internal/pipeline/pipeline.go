// Package pipeline orchestrates per-function report generation.
//
// The stages run strictly in sequence for one function at a time: build
// the instruction index, build the dependency map, collect the variable
// table, then assemble the report record. Nothing is shared between two
// functions' analyses except the callee summary cache and the output
// stream the caller appends records to.
package pipeline

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"
	"tlog.app/go/tlog"

	"github.com/checkmerge/checkmerge/internal/directive"
	"github.com/checkmerge/checkmerge/internal/effects"
	"github.com/checkmerge/checkmerge/internal/ir"
	"github.com/checkmerge/checkmerge/internal/memdep"
	"github.com/checkmerge/checkmerge/internal/memssa"
	"github.com/checkmerge/checkmerge/internal/report"
	"github.com/checkmerge/checkmerge/internal/srcvar"
)

// Runner wires the analysis stages together. One Runner serves a whole
// run; the callee summary cache inside it is shared across functions and
// modules.
type Runner struct {
	modes  *effects.Inference
	oracle memdep.Oracle
}

// New creates a Runner with a fresh summary cache.
func New() *Runner {
	modes := effects.New()
	return &Runner{
		modes:  modes,
		oracle: memssa.New(modes),
	}
}

// AnalyzeFunction produces the report record of one function. The index,
// dependency map, and variable table are rebuilt from scratch and
// discarded when the record is done.
func (r *Runner) AnalyzeFunction(ctx context.Context, fn *ssa.Function) *report.Function {
	idx := ir.NewIndex(fn)
	deps := memdep.Build(fn, r.modes, r.oracle)
	vars := srcvar.Collect(fn, fileSet(fn))

	rep := report.BuildFunction(fn, idx, deps, vars, r.modes)

	if tr := tlog.SpanFromContext(ctx); tr.If("fn") {
		tr.Printw("function digest",
			"fn", rep.Ident,
			"instructions", rep.Digest.Instructions,
			"variables", rep.Digest.Variables,
			"edges", rep.Digest.Edges,
			"dependents", rep.Digest.Dependents)
	}

	return rep
}

// AnalyzeModule analyzes fns in order and aggregates their records into
// one module report.
func (r *Runner) AnalyzeModule(ctx context.Context, name string, fns []*ssa.Function) *report.Module {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "analyze module", "module", name)
	defer tr.Finish()

	mod := &report.Module{Name: name}
	for _, fn := range fns {
		rep := r.AnalyzeFunction(ctx, fn)
		mod.Functions = append(mod.Functions, rep)
		mod.Digest.Add(rep.Digest)
	}

	tr.Printw("module digest",
		"functions", len(mod.Functions),
		"instructions", mod.Digest.Instructions,
		"variables", mod.Digest.Variables,
		"edges", mod.Digest.Edges,
		"dependents", mod.Digest.Dependents)

	return mod
}

// SourceFunctions lists the functions of pkg to analyze, in source
// order: declared functions file by file, each followed depth-first by
// its anonymous functions. Blank functions and functions excluded by
// directive are left out; file filtering is the caller's concern.
func SourceFunctions(pkg *ssa.Package, files []*ast.File, info *types.Info, ignored directive.IgnoreSet) []*ssa.Function {
	var fns []*ssa.Function
	for _, file := range files {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Name.Name == "_" {
				continue
			}
			if ignored.Ignored(fd.Name.Pos()) {
				tlog.V("skip").Printw("function excluded by directive", "fn", fd.Name.Name)
				continue
			}
			obj, ok := info.Defs[fd.Name].(*types.Func)
			if !ok {
				continue
			}
			fn := pkg.Prog.FuncValue(obj)
			if fn == nil {
				continue
			}
			fns = collectFunc(fns, fn)
		}
	}
	return fns
}

func collectFunc(fns []*ssa.Function, fn *ssa.Function) []*ssa.Function {
	fns = append(fns, fn)
	for _, anon := range fn.AnonFuncs {
		fns = collectFunc(fns, anon)
	}
	return fns
}

func fileSet(fn *ssa.Function) *token.FileSet {
	if fn.Prog == nil {
		return nil
	}
	return fn.Prog.Fset
}
