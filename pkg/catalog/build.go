package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/coursegraph/coursegraph/pkg/course"
	"github.com/coursegraph/coursegraph/pkg/errors"
)

// BuildError is the batched failure report for a catalog build. It collects
// every malformed prerequisite and every unknown course reference found in
// one pass, so the caller sees all catalog-wide problems at once instead of
// stopping at the first bad entry.
type BuildError struct {
	// Malformed maps a course ID to the parse failure for its prerequisite
	// text.
	Malformed map[string]error

	// Unknown maps a missing course ID to the courses whose requirements
	// reference it.
	Unknown map[string][]string
}

// Error implements the error interface with a sorted, per-course summary.
func (e *BuildError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "catalog build failed: %d malformed prerequisite(s), %d unknown reference(s)",
		len(e.Malformed), len(e.Unknown))
	for _, id := range slices.Sorted(maps.Keys(e.Malformed)) {
		fmt.Fprintf(&b, "\n  %s: %v", id, e.Malformed[id])
	}
	for _, id := range slices.Sorted(maps.Keys(e.Unknown)) {
		fmt.Fprintf(&b, "\n  %s: referenced by %s but not in catalog", id, strings.Join(e.Unknown[id], ", "))
	}
	return b.String()
}

// Code returns the error code for this report: the specific code when only
// one kind of problem occurred, INVALID_CATALOG when both did.
func (e *BuildError) Code() errors.Code {
	switch {
	case len(e.Malformed) > 0 && len(e.Unknown) > 0:
		return errors.ErrCodeInvalidCatalog
	case len(e.Unknown) > 0:
		return errors.ErrCodeUnknownCourse
	default:
		return errors.ErrCodeMalformedPrerequisite
	}
}

// MissingCourses returns the unknown course IDs in ascending order.
func (e *BuildError) MissingCourses() []string {
	return slices.Sorted(maps.Keys(e.Unknown))
}

// Build constructs a dependency graph from a full catalog snapshot: a mapping
// from course ID to raw prerequisite text.
//
// Every entry's text is parsed with [course.ParseRequirement]; edges are
// derived from the requirement leaves, course → prerequisite, deduplicated.
// Course IDs (keys) are whitespace-normalized before use.
//
// Build never returns a partial graph. All parse failures and all references
// to courses absent from the catalog are accumulated and returned together as
// a [*BuildError]. On success the returned Graph is complete and immutable;
// Build has no side effects beyond constructing it.
func Build(entries map[string]string) (*Graph, error) {
	g := New()
	parsed := make(map[string]course.Requirement, len(entries))
	report := &BuildError{
		Malformed: make(map[string]error),
		Unknown:   make(map[string][]string),
	}

	// Sorted iteration keeps the report (and edge insertion order)
	// deterministic across runs.
	ids := make([]string, 0, len(entries))
	index := make(map[string]string, len(entries)) // normalized ID -> raw key
	for raw := range entries {
		id := course.NormalizeID(raw)
		if id == "" {
			continue
		}
		ids = append(ids, id)
		index[id] = raw
	}
	slices.Sort(ids)

	for _, id := range ids {
		req, err := course.ParseRequirement(entries[index[id]])
		if err != nil {
			report.Malformed[id] = err
			continue
		}
		parsed[id] = req
		for _, leaf := range req.Leaves() {
			if _, ok := index[leaf]; ok {
				continue
			}
			if !slices.Contains(report.Unknown[leaf], id) {
				report.Unknown[leaf] = append(report.Unknown[leaf], id)
			}
		}
	}

	if len(report.Malformed) > 0 || len(report.Unknown) > 0 {
		return nil, report
	}

	for _, id := range ids {
		if err := g.AddCourse(Course{ID: id, Requirement: parsed[id]}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "add course %s", id)
		}
	}
	for _, id := range ids {
		for _, leaf := range parsed[id].Leaves() {
			if err := g.AddPrereqEdge(id, leaf); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "add edge %s→%s", id, leaf)
			}
		}
	}

	return g, nil
}
