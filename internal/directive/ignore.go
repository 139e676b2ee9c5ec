package directive

import (
	"go/ast"
	"go/token"
)

// IgnoreSet records functions excluded from report generation, keyed by
// the position of the function's name. Name.Pos() is used because SSA's
// Function.Pos() returns the name position.
type IgnoreSet map[token.Pos]bool

// Ignored reports whether the function whose name sits at pos is
// excluded.
func (s IgnoreSet) Ignored(pos token.Pos) bool {
	return s[pos]
}

// FileIgnored reports whether the file's doc comment excludes the whole
// file from report generation.
func FileIgnored(file *ast.File) bool {
	if file.Doc == nil {
		return false
	}
	for _, c := range file.Doc.List {
		if IsIgnoreDirective(c.Text) {
			return true
		}
	}
	return false
}

// BuildIgnoreSet collects the functions whose doc comments carry an
// ignore directive.
//
// Only FuncDecl nodes are inspected; function literals cannot carry doc
// comments in Go.
func BuildIgnoreSet(file *ast.File) IgnoreSet {
	set := make(IgnoreSet)

	ast.Inspect(file, func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			return true
		}
		for _, c := range fd.Doc.List {
			if IsIgnoreDirective(c.Text) {
				set[fd.Name.Pos()] = true
				break
			}
		}
		return true
	})

	return set
}
