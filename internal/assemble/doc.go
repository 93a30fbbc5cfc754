// Package assemble classifies a generic value tree into the typed model
// document, accumulating every structural violation found in one pass.
//
// Assembly is a pure function from an immutable input tree to either a
// validated ast.Document or a non-empty list of ValidationErrors. No shape's
// outcome depends on another's, so shapes may be checked in any order,
// including concurrently (see Options.Workers).
package assemble
