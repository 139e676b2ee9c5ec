package checkmerge

import (
	"github.com/checkmerge/checkmerge/internal/report"
)

// =============================================================================
// Re-exports from the report package
// =============================================================================
//
// The analyzer result is a *Module; consumers of the result navigate it
// through these aliases without importing internal packages.

// Module is an alias for report.Module.
type Module = report.Module

// Function is an alias for report.Function.
type Function = report.Function

// Block is an alias for report.Block.
type Block = report.Block

// Instruction is an alias for report.Instruction.
type Instruction = report.Instruction

// Dependency is an alias for report.Dependency.
type Dependency = report.Dependency

// Variable is an alias for report.Variable.
type Variable = report.Variable

// Digest is an alias for report.Digest.
type Digest = report.Digest

// Suffix is the report artifact file suffix.
const Suffix = report.Suffix

// FileName derives the report artifact file name for a module.
func FileName(module string) string {
	return report.FileName(module)
}
