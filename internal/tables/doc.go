// Package tables edits Confluence tables structurally. Callers address
// tables, rows, and columns by zero-based index; each operation either
// applies fully or reports a typed error and leaves the body untouched.
// Cell spans never get rewritten by guesswork: an edit that would have to
// split or widen a span fails with ErrAmbiguousStructure instead.
package tables
