package memdep

import (
	"github.com/checkmerge/checkmerge/internal/ir"
)

// Classify encodes a dependency as "<dependent>A<dependency>", where each
// side is the access letter of the instruction's mode: R when it may
// read, otherwise W when it may write, otherwise U. A load depending on
// a store therefore classifies as "RAW".
//
// Instructions that may both read and write take the letter R on either
// side; the read possibility dominates the encoding.
func Classify(dependent, dependency ir.Mode) string {
	return accessLetter(dependent) + "A" + accessLetter(dependency)
}

func accessLetter(m ir.Mode) string {
	switch {
	case m.Reads():
		return "R"
	case m.Writes():
		return "W"
	default:
		return "U"
	}
}
