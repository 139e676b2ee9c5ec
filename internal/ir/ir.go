// Package ir classifies SSA instructions by the way they touch memory.
//
// Every other analysis layer works in terms of the access Mode defined
// here rather than on concrete instruction types, so the type switches
// that know the SSA instruction set are concentrated in this package.
package ir

import (
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// ============================================================================
// Access modes
// ============================================================================

// Mode is a bitmask describing how an instruction accesses memory.
type Mode uint8

const (
	// ModeNone marks instructions that neither read nor write memory.
	ModeNone Mode = 0
	// ModeRead marks instructions that may read memory.
	ModeRead Mode = 1 << 0
	// ModeWrite marks instructions that may write memory.
	ModeWrite Mode = 1 << 1
	// ModeReadWrite marks instructions that may both read and write memory.
	ModeReadWrite = ModeRead | ModeWrite
)

// Reads reports whether the mode includes a potential read.
func (m Mode) Reads() bool { return m&ModeRead != 0 }

// Writes reports whether the mode includes a potential write.
func (m Mode) Writes() bool { return m&ModeWrite != 0 }

// Touches reports whether the mode includes any memory access at all.
func (m Mode) Touches() bool { return m != ModeNone }

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "readwrite"
	default:
		return "none"
	}
}

// CalleeModes resolves the access mode of call instructions whose effect
// depends on the callee body rather than on the instruction itself.
type CalleeModes interface {
	CallMode(call ssa.CallInstruction) Mode
}

// builtinModes fixes the access mode of Go builtins that reach SSA as
// *ssa.Builtin callees. Builtins absent from the table get ModeReadWrite.
var builtinModes = map[string]Mode{
	"append":  ModeReadWrite,
	"copy":    ModeReadWrite,
	"close":   ModeWrite,
	"delete":  ModeWrite,
	"print":   ModeRead,
	"println": ModeRead,
	"recover": ModeRead,

	"len":     ModeNone,
	"cap":     ModeNone,
	"complex": ModeNone,
	"real":    ModeNone,
	"imag":    ModeNone,
	"min":     ModeNone,
	"max":     ModeNone,

	"ssa:wrapnilchk": ModeNone,
}

// ModeOf derives the access mode of a single instruction. Calls delegate
// to callees, which may be nil; unresolvable callees count as readwrite.
func ModeOf(instr ssa.Instruction, callees CalleeModes) Mode {
	switch v := instr.(type) {
	case *ssa.UnOp:
		switch v.Op {
		case token.MUL, token.ARROW:
			return ModeRead
		}
		return ModeNone

	case *ssa.Store:
		return ModeWrite
	case *ssa.MapUpdate:
		return ModeWrite
	case *ssa.Send:
		return ModeWrite

	case *ssa.Lookup:
		return ModeRead
	case *ssa.Range:
		return ModeRead
	case *ssa.Next:
		return ModeRead

	case *ssa.Select:
		return ModeReadWrite

	case *ssa.Alloc:
		// Allocation zeroes the cell, which makes it the defining
		// write for everything stored there later.
		return ModeWrite

	case *ssa.RunDefers:
		return ModeReadWrite
	case *ssa.Panic:
		return ModeNone

	case ssa.CallInstruction:
		return callMode(v, callees)
	}

	return ModeNone
}

func callMode(call ssa.CallInstruction, callees CalleeModes) Mode {
	common := call.Common()
	if !common.IsInvoke() {
		if builtin, ok := common.Value.(*ssa.Builtin); ok {
			if mode, ok := builtinModes[builtin.Name()]; ok {
				return mode
			}
			return ModeReadWrite
		}
	}
	if callees == nil {
		return ModeReadWrite
	}
	return callees.CallMode(call)
}

// ============================================================================
// Accessed addresses
// ============================================================================

// AddressOf extracts the address value an instruction accesses, when the
// instruction names one directly. An allocation addresses the cell it
// creates, which is the allocation value itself. Calls and other opaque
// accessors report false: their footprint is not a single address.
func AddressOf(instr ssa.Instruction) (ssa.Value, bool) {
	switch v := instr.(type) {
	case *ssa.Store:
		return v.Addr, true
	case *ssa.UnOp:
		switch v.Op {
		case token.MUL, token.ARROW:
			return v.X, true
		}
	case *ssa.Alloc:
		return v, true
	case *ssa.MapUpdate:
		return v.Map, true
	case *ssa.Lookup:
		if _, ok := v.X.Type().Underlying().(*types.Map); ok {
			return v.X, true
		}
	case *ssa.Send:
		return v.Chan, true
	}
	return nil, false
}
