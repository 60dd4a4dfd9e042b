// Package rules provides the built-in tree rules for razorlint.
//
// Parser diagnostics (RZ1000-RZ2005) are reported by the engine directly;
// the rules here inspect the finished syntax tree:
//
//   - RZL001: empty-code-block - A @{ } block holds only whitespace
//   - RZL002: duplicate-section - Two @section directives share a name
//   - RZL003: unquoted-dynamic-attribute - An attribute value holding code is not quoted
//   - RZL004: inline-markup-line - A line uses @: single-line markup (off by default)
//
// Rules are registered with the default registry via RegisterAll.
package rules
