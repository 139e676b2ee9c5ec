// Package checkmerge builds per-function memory dependence reports for
// Go packages.
//
// The analyzer assigns every instruction of a function a stable ordinal
// and asks a memory SSA oracle which prior accesses each memory-touching
// instruction may depend on. Each dependence is tagged with a code
// derived from the access modes of both ends, such as "RAW" for a read
// observing a prior write. Function records aggregate into one module
// report per package and render to a stable text artifact, so re-running
// the analysis over unchanged input produces byte-identical output.
//
// Functions and files opt out of report generation with the
// //checkmerge:ignore directive. Generated files are never analyzed.
package checkmerge

import (
	"context"
	"go/ast"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"

	"github.com/checkmerge/checkmerge/internal/directive"
	"github.com/checkmerge/checkmerge/internal/pipeline"
)

// Analyzer is the main analyzer for checkmerge.
//
// It emits no diagnostics; the module report is returned as the
// analyzer result.
var Analyzer = &analysis.Analyzer{
	Name:       "checkmerge",
	Doc:        "builds per-function memory dependence reports",
	Run:        run,
	ResultType: reflect.TypeOf((*Module)(nil)),
}

func run(pass *analysis.Pass) (any, error) {
	ssapkg := buildSSA(pass)

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Union the function-level ignore sets (excluding skipped files)
	ignored := make(directive.IgnoreSet)
	var files []*ast.File
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		files = append(files, file)
		for pos := range directive.BuildIgnoreSet(file) {
			ignored[pos] = true
		}
	}

	fns := pipeline.SourceFunctions(ssapkg, files, pass.TypesInfo, ignored)

	return pipeline.New().AnalyzeModule(context.Background(), pass.Pkg.Path(), fns), nil
}

// AnalyzePackage builds the module report for one loaded package.
// ssapkg must be the SSA form of pkg, built with debug info. Filtering
// matches the Analyzer entry point, except that generated files are
// analyzed when includeGenerated is set; ignore directives are always
// honored.
func AnalyzePackage(ctx context.Context, pkg *packages.Package, ssapkg *ssa.Package, includeGenerated bool) *Module {
	ignored := make(directive.IgnoreSet)
	var files []*ast.File
	for _, file := range pkg.Syntax {
		if !includeGenerated && ast.IsGenerated(file) {
			continue
		}
		if directive.FileIgnored(file) {
			continue
		}
		files = append(files, file)
		for pos := range directive.BuildIgnoreSet(file) {
			ignored[pos] = true
		}
	}

	fns := pipeline.SourceFunctions(ssapkg, files, pkg.TypesInfo, ignored)

	return pipeline.New().AnalyzeModule(ctx, pkg.PkgPath, fns)
}

// buildSSA constructs SSA form for the package under analysis. Debug
// info is enabled so that function bodies carry the DebugRef
// instructions the variable correlator reads; the driver-built SSA
// behind the buildssa pass lacks them.
func buildSSA(pass *analysis.Pass) *ssa.Package {
	prog := ssa.NewProgram(pass.Fset, ssa.GlobalDebug)

	// Create SSA packages for the whole dependency closure first.
	created := make(map[*types.Package]bool)
	var createAll func(pkgs []*types.Package)
	createAll = func(pkgs []*types.Package) {
		for _, p := range pkgs {
			if !created[p] {
				created[p] = true
				prog.CreatePackage(p, nil, nil, true)
				createAll(p.Imports())
			}
		}
	}
	createAll(pass.Pkg.Imports())

	ssapkg := prog.CreatePackage(pass.Pkg, pass.Files, pass.TypesInfo, false)
	ssapkg.Build()

	return ssapkg
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files and files whose doc comment carries an ignore
// directive are always skipped.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		if ast.IsGenerated(file) || directive.FileIgnored(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}
