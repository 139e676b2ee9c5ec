package ir

import (
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// Mnemonic names an instruction's opcode the way the report format spells
// it. Register assignments and operand lists are deliberately absent: the
// mnemonic identifies the operation, not the instruction instance.
func Mnemonic(instr ssa.Instruction) string {
	switch v := instr.(type) {
	case *ssa.UnOp:
		switch v.Op {
		case token.MUL:
			return "load"
		case token.ARROW:
			return "recv"
		}
		return "unop"
	case *ssa.BinOp:
		return "binop"

	case *ssa.Call:
		return "call"
	case *ssa.Go:
		return "go"
	case *ssa.Defer:
		return "defer"

	case *ssa.Store:
		return "store"
	case *ssa.Alloc:
		return "alloc"
	case *ssa.MapUpdate:
		return "mapupdate"
	case *ssa.Lookup:
		return "lookup"
	case *ssa.Send:
		return "send"
	case *ssa.Select:
		return "select"
	case *ssa.Range:
		return "range"
	case *ssa.Next:
		return "next"

	case *ssa.Phi:
		return "phi"
	case *ssa.Extract:
		return "extract"

	case *ssa.Jump:
		return "jump"
	case *ssa.If:
		return "if"
	case *ssa.Return:
		return "return"
	case *ssa.Panic:
		return "panic"
	case *ssa.RunDefers:
		return "rundefers"

	case *ssa.MakeChan:
		return "makechan"
	case *ssa.MakeMap:
		return "makemap"
	case *ssa.MakeSlice:
		return "makeslice"
	case *ssa.MakeClosure:
		return "makeclosure"
	case *ssa.MakeInterface:
		return "makeinterface"

	case *ssa.ChangeType:
		return "changetype"
	case *ssa.Convert:
		return "convert"
	case *ssa.MultiConvert:
		return "multiconvert"
	case *ssa.ChangeInterface:
		return "changeinterface"
	case *ssa.SliceToArrayPointer:
		return "slicetoarrayptr"
	case *ssa.TypeAssert:
		return "typeassert"

	case *ssa.Field:
		return "field"
	case *ssa.FieldAddr:
		return "fieldaddr"
	case *ssa.Index:
		return "index"
	case *ssa.IndexAddr:
		return "indexaddr"
	case *ssa.Slice:
		return "slice"

	case *ssa.DebugRef:
		return "debugref"
	}
	return "unknown"
}
