// Package course defines requirement expressions for course prerequisites
// and the parser that produces them from free-form catalog text.
//
// # Requirement Expressions
//
// A prerequisite is modeled as a boolean tree over three variants:
//
//   - [Leaf]: a single required course ("CS201")
//   - [AllOf]: a conjunction ("CS201 and MATH114")
//   - [AnyOf]: a disjunction ("one of CS301 or CS302")
//
// An empty [AllOf] means "no prerequisites" and is trivially satisfied.
// [Eval] evaluates a tree against a set of completed courses.
//
// # Grammar
//
// [ParseRequirement] recognizes a flat two-level grammar with
// case-insensitive keywords:
//
//	CS201 and MATH114            → AllOf(Leaf(CS201), Leaf(MATH114))
//	one of CS301, CS302 or CS303 → AnyOf(CS301, CS302, CS303)
//	CHEM 102/SCI 100             → AnyOf(CHEM 102, SCI 100)
//	CS201                        → Leaf(CS201)
//
// "and" binds looser than "or": the raw text is split on "and" first, and
// each conjunct is then parsed for alternatives. Parenthetical nesting is
// not supported and fails with a MALFORMED_PREREQUISITE error, as does any
// fragment that is not a course token. A trailing "consent of ..." clause
// is discarded before parsing; it annotates a course rather than naming one.
//
// All functions in this package are pure and safe for concurrent use.
package course
