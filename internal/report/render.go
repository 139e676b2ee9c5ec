package report

import (
	"bytes"
	"fmt"
	"io"
)

// ============================================================================
// Serialization
// ============================================================================

// Bytes renders one function record. The layout is fixed; the downstream
// merge checker parses it by indentation and compares dependency codes
// byte for byte.
func (f *Function) Bytes() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "function.%s:\n", f.Ident)
	fmt.Fprintf(&buf, "  name: \"%s\"\n", f.Name)
	fmt.Fprintf(&buf, "  module: \"%s\"\n", f.Module)
	fmt.Fprintf(&buf, "  location: \"%s\"\n", f.Location)

	for _, block := range f.Blocks {
		fmt.Fprintf(&buf, "  block.%s:\n", block.Name)
		for _, instr := range block.Instructions {
			fmt.Fprintf(&buf, "    - instruction.%d:\n", instr.Ordinal)
			fmt.Fprintf(&buf, "        opcode: %s\n", instr.Opcode)
			fmt.Fprintf(&buf, "        location: \"%s\"\n", instr.Location)

			if v := instr.Variable; v != nil {
				fmt.Fprintf(&buf, "        variable:\n")
				fmt.Fprintf(&buf, "          name: \"%s\"\n", v.Name)
				fmt.Fprintf(&buf, "          location: \"%s\"\n", v.Location)
			}

			if len(instr.Dependencies) > 0 {
				fmt.Fprintf(&buf, "        dependencies:\n")
				for _, dep := range instr.Dependencies {
					fmt.Fprintf(&buf, "          \"*%s\": \"%s\"\n", dep.Target, dep.Code)
				}
			}
		}
	}
	return buf.Bytes()
}

// Bytes renders every function record of the module in analysis order.
func (m *Module) Bytes() []byte {
	var buf bytes.Buffer
	for _, fn := range m.Functions {
		buf.Write(fn.Bytes())
	}
	return buf.Bytes()
}

// Render writes one function record to w.
func Render(w io.Writer, f *Function) error {
	_, err := w.Write(f.Bytes())
	return err
}
