// Package directive handles checkmerge comment directives.
//
// # Supported Directives
//
//	//checkmerge:ignore - Exclude a function or a whole file from report
//	generation
//
// # Directive Placement
//
// Directives are read from doc comments:
//   - On a function declaration, the function is excluded
//   - Before the package declaration, the whole file is excluded
//
// # Examples
//
// Function-level ignore:
//
//	//checkmerge:ignore
//	func scratch() {
//	    // No report record is produced for this function
//	}
package directive

import "strings"

const directivePrefix = "checkmerge:"

// hasDirective checks if a comment contains the specified directive.
// Supports both "//checkmerge:name" and "// checkmerge:name".
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, directivePrefix+name)
}

// IsIgnoreDirective checks if a comment is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }
