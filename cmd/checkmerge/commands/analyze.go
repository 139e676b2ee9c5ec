package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/checkmerge/checkmerge"
	"github.com/checkmerge/checkmerge/internal/cache"
	"github.com/checkmerge/checkmerge/internal/config"
	"github.com/checkmerge/checkmerge/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [packages]",
	Short: "Analyze packages and write report artifacts",
	Long: `Analyze loads the named packages, builds one memory dependence report
per package, and writes each report to <module>.ll.cm in the output
directory. Package patterns follow go build syntax (./...).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return runAnalyze(args, output)
	},
}

func init() {
	analyzeCmd.Flags().StringP("output", "o", "", "Output directory for report artifacts (overrides config)")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(patterns []string, output string) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if output == "" {
		output = cfg.Output
	}
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := loadPackages(patterns, cfg)
	if err != nil {
		return err
	}

	prog, ssapkgs := ssautil.Packages(pkgs, ssa.GlobalDebug)
	prog.Build()

	var store *cache.Cache
	if cfg.Cache.Enabled {
		store = cache.New(cfg.Cache.Dir)
	}

	tr := tlog.SpanFromContext(ctx)

	// Two modules whose paths share a base name land in the same file;
	// the later one wins.
	artifacts := make(map[string]string)

	for i, pkg := range pkgs {
		if ssapkgs[i] == nil {
			tr.Printw("skip package", "path", pkg.PkgPath, "reason", "not well typed")
			continue
		}

		name := report.FileName(pkg.PkgPath)
		if earlier, ok := artifacts[name]; ok {
			tr.Printw("artifact overwrites earlier module", "file", name, "module", pkg.PkgPath, "earlier", earlier)
		}
		artifacts[name] = pkg.PkgPath

		analyzePackage(ctx, pkg, ssapkgs[i], output, cfg, store)
	}

	return nil
}

// analyzePackage writes one module's report artifact. Output failures
// lose that module's artifact but never abort the run.
func analyzePackage(ctx context.Context, pkg *packages.Package, ssapkg *ssa.Package, output string, cfg *config.Config, store *cache.Cache) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "analyze package", "path", pkg.PkgPath)
	defer tr.Finish()

	var hash string
	if store != nil {
		var err error
		hash, err = cache.HashFiles(pkg.CompiledGoFiles)
		if err != nil {
			tr.Printw("cache skipped", "err", err)
		}
	}

	if hash != "" {
		e, err := store.Load(pkg.PkgPath, hash)
		if err != nil {
			tr.Printw("cache read failed", "err", err)
		} else if e != nil {
			path := filepath.Join(output, report.FileName(pkg.PkgPath))
			if err := os.WriteFile(path, e.Artifact, 0644); err != nil {
				tr.Printw("write report failed", "err", err)
				return
			}
			tr.Printw("cache hit", "artifact", path, "instructions", e.Digest.Instructions, "edges", e.Digest.Edges)
			return
		}
	}

	mod := checkmerge.AnalyzePackage(ctx, pkg, ssapkg, cfg.Generated)

	w, err := report.NewWriter(output, mod.Name)
	if err != nil {
		tr.Printw("open report failed", "err", err)
		return
	}

	for _, fn := range mod.Functions {
		if err := w.Append(fn); err != nil {
			tr.Printw("append report failed", "fn", fn.Ident, "err", err)
			break
		}
	}

	if err := w.Close(); err != nil {
		tr.Printw("close report failed", "err", err)
		return
	}

	if hash != "" {
		e := &cache.Entry{Hash: hash, Artifact: mod.Bytes(), Digest: mod.Digest}
		if err := store.Store(pkg.PkgPath, e); err != nil {
			tr.Printw("cache write failed", "err", err)
		}
	}
}

func loadPackages(patterns []string, cfg *config.Config) ([]*packages.Package, error) {
	loadCfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedTypesSizes,
		Tests:      cfg.Tests,
		BuildFlags: cfg.BuildFlags,
	}

	pkgs, err := packages.Load(loadCfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "load packages")
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.New("packages contain errors")
	}
	if len(pkgs) == 0 {
		return nil, errors.New("no packages matched")
	}

	return pkgs, nil
}
