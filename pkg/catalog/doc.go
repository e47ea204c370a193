// Package catalog builds and queries the course dependency graph.
//
// # Building
//
// [Build] consumes the input collaborator's contract — a mapping from course
// ID to raw prerequisite text — parses every entry with [course.ParseRequirement],
// and produces an immutable [Graph]. Problems are batched: every malformed
// prerequisite and every reference to a course missing from the catalog is
// collected into a single [*BuildError] so one pass surfaces all catalog-wide
// defects.
//
// # Querying
//
// A built Graph is read-only. [Graph.TopologicalOrder] returns a deterministic
// ordering with prerequisites before dependents, or a [*CycleError] naming one
// witness cycle. [Graph.Eligible] returns the not-yet-completed courses whose
// requirement expression is satisfied by a completed set.
//
// Because nothing mutates a Graph after Build, concurrent orders and
// eligibility queries against the same Graph are safe without coordination.
package catalog
