// Package ast provides the typed representation of a Smithy model document:
// shape identifiers, the generic value tree, and the closed set of shape
// variants.
//
// This package contains type definitions and pure parsing helpers only. All
// other internal packages import ast; ast imports nothing internal. This keeps
// the model layer foundational with no circular dependencies.
//
// Key design constraints:
//   - Identifier-shaped strings are validated wrapper types, parsed once at
//     the document boundary and never re-checked downstream
//   - Shape is a sealed interface; exactly one concrete type per "type" tag
//   - Values are immutable after construction; there is no update lifecycle
package ast
