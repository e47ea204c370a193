package catalog

import (
	"errors"
	"slices"

	"github.com/coursegraph/coursegraph/pkg/course"
)

var (
	// ErrInvalidCourseID is returned by [Graph.AddCourse] when the course ID
	// is empty. All courses must have non-empty identifiers.
	ErrInvalidCourseID = errors.New("course ID must not be empty")

	// ErrDuplicateCourse is returned by [Graph.AddCourse] when a course with
	// the same ID already exists in the graph.
	ErrDuplicateCourse = errors.New("duplicate course ID")

	// ErrUnknownSourceCourse is returned by [Graph.AddPrereqEdge] when the
	// dependent course does not exist in the graph.
	ErrUnknownSourceCourse = errors.New("unknown source course")

	// ErrUnknownTargetCourse is returned by [Graph.AddPrereqEdge] when the
	// prerequisite course does not exist in the graph. A requirement leaf
	// naming a course absent from the catalog is an error, never silently
	// dropped.
	ErrUnknownTargetCourse = errors.New("unknown target course")
)

// Course is a node in the dependency graph: a catalog course together with
// its parsed requirement expression. Identity is the course ID; Course values
// are owned by the Graph that holds them.
type Course struct {
	ID          string             // Unique catalog identifier (e.g. "CS201")
	Requirement course.Requirement // Parsed prerequisite expression (never nil)
}

// Edge is a directed dependency: From requires To — the target must be
// satisfied before or for the source.
type Edge struct {
	From string // Dependent course ID
	To   string // Prerequisite course ID
}

// CompletedSet is the set of courses a student has already finished.
// It is supplied per eligibility query and never stored in the graph.
type CompletedSet = course.Set

// Graph is the course dependency graph: courses keyed by ID plus directed
// edges derived from requirement leaves. Use [Build] to construct one from a
// catalog snapshot; a Graph is treated as immutable once built, so all query
// methods are safe for concurrent use.
//
// The zero value is not usable - use [New] to create an empty Graph.
type Graph struct {
	courses    map[string]*Course
	edges      []Edge
	prereqs    map[string][]string // course ID -> prerequisite IDs (deduped)
	dependents map[string][]string // course ID -> dependent IDs
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		courses:    make(map[string]*Course),
		prereqs:    make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// AddCourse adds a course to the graph. A nil requirement is replaced with
// the empty requirement ("no prerequisites"). Returns ErrInvalidCourseID for
// an empty ID and ErrDuplicateCourse when the ID is already present.
func (g *Graph) AddCourse(c Course) error {
	if c.ID == "" {
		return ErrInvalidCourseID
	}
	if _, exists := g.courses[c.ID]; exists {
		return ErrDuplicateCourse
	}
	if c.Requirement == nil {
		c.Requirement = course.None()
	}
	g.courses[c.ID] = &c
	return nil
}

// AddPrereqEdge records that from requires to. Both endpoints must already
// exist as courses; an edge whose target is missing from the catalog is the
// UnknownCourseReference condition and is rejected, not dropped. Duplicate
// edges between the same pair are ignored.
func (g *Graph) AddPrereqEdge(from, to string) error {
	if _, ok := g.courses[from]; !ok {
		return ErrUnknownSourceCourse
	}
	if _, ok := g.courses[to]; !ok {
		return ErrUnknownTargetCourse
	}
	if slices.Contains(g.prereqs[from], to) {
		return nil
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.prereqs[from] = append(g.prereqs[from], to)
	g.dependents[to] = append(g.dependents[to], from)
	return nil
}

// Course returns the course with the given ID and true, or nil and false.
func (g *Graph) Course(id string) (*Course, bool) {
	c, ok := g.courses[id]
	return c, ok
}

// Has reports whether the graph contains the given course ID.
func (g *Graph) Has(id string) bool {
	_, ok := g.courses[id]
	return ok
}

// Courses returns all courses in the graph in unspecified order.
func (g *Graph) Courses() []*Course {
	out := make([]*Course, 0, len(g.courses))
	for _, c := range g.courses {
		out = append(out, c)
	}
	return out
}

// IDs returns all course IDs in ascending order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.courses))
	for id := range g.courses {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns a copy of all dependency edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Prereqs returns the prerequisite IDs of a course (edge targets).
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Prereqs(id string) []string { return g.prereqs[id] }

// Dependents returns the IDs of courses that list id as a prerequisite.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Dependents(id string) []string { return g.dependents[id] }

// Len returns the number of courses in the graph.
func (g *Graph) Len() int { return len(g.courses) }

// EdgeCount returns the number of dependency edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }
