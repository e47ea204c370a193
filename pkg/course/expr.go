package course

import (
	"strings"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

// Requirement is a boolean expression tree describing what must be completed
// before a course can be taken. The three implementations are [Leaf],
// [AllOf], and [AnyOf]; no other types satisfy the interface.
//
// Requirement values are immutable after construction and safe for
// concurrent reads.
type Requirement interface {
	// Leaves returns the course IDs referenced by the expression, in
	// first-appearance order with duplicates removed.
	Leaves() []string

	// String renders the expression in the grammar's surface syntax.
	String() string

	isRequirement()
}

// Leaf is a single required course.
type Leaf struct {
	Course string
}

// AllOf is satisfied when every child is satisfied.
// An empty AllOf means "no prerequisites" and is vacuously true.
type AllOf []Requirement

// AnyOf is satisfied when at least one child is satisfied.
// An empty AnyOf is structurally invalid; Eval rejects it.
type AnyOf []Requirement

func (Leaf) isRequirement()  {}
func (AllOf) isRequirement() {}
func (AnyOf) isRequirement() {}

// None returns the empty requirement (a zero-child AllOf).
func None() Requirement { return AllOf{} }

// Leaves returns the single referenced course.
func (l Leaf) Leaves() []string { return []string{l.Course} }

// Leaves returns the union of all child leaves in first-appearance order.
func (a AllOf) Leaves() []string { return childLeaves(a) }

// Leaves returns the union of all child leaves in first-appearance order.
func (a AnyOf) Leaves() []string { return childLeaves(a) }

func childLeaves(children []Requirement) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range children {
		for _, id := range c.Leaves() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (l Leaf) String() string { return l.Course }

func (a AllOf) String() string {
	if len(a) == 0 {
		return "none"
	}
	return joinChildren(a, " and ")
}

func (a AnyOf) String() string {
	if len(a) == 0 {
		return "one of ()"
	}
	return "one of " + joinChildren(a, " or ")
}

func joinChildren(children []Requirement, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// Set is a set of course IDs, typically the courses a student has completed.
// Membership is exact: IDs are case-sensitive and whitespace-normalized.
type Set map[string]struct{}

// NewSet builds a Set from course IDs, normalizing each with [NormalizeID].
// Empty IDs are skipped.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id = NormalizeID(id); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether the set contains id.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set after normalizing it.
func (s Set) Add(id string) {
	if id = NormalizeID(id); id != "" {
		s[id] = struct{}{}
	}
}

// Eval evaluates a requirement against a set of completed courses.
//
// A Leaf is true iff the course is in completed. An AllOf is true iff every
// child is true (vacuously true when empty). An AnyOf is true iff at least
// one child is true; an empty AnyOf returns an INVALID_EXPRESSION error
// rather than evaluating to false, since a zero-alternative disjunction can
// only arise from a defective catalog build.
//
// Eval is pure: it never mutates r or completed.
func Eval(r Requirement, completed Set) (bool, error) {
	switch expr := r.(type) {
	case Leaf:
		return completed.Has(expr.Course), nil
	case AllOf:
		for _, child := range expr {
			ok, err := Eval(child, completed)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case AnyOf:
		if len(expr) == 0 {
			return false, errors.New(errors.ErrCodeInvalidExpression, "empty disjunction cannot be satisfied")
		}
		for _, child := range expr {
			ok, err := Eval(child, completed)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errors.New(errors.ErrCodeInvalidExpression, "unknown requirement type %T", r)
	}
}
