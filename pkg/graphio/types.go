package graphio

import (
	"fmt"
	"slices"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/course"
	"github.com/coursegraph/coursegraph/pkg/errors"
)

// Catalog is the canonical serialization format for a built dependency graph.
type Catalog struct {
	Courses []Course `json:"courses" bson:"courses"`
	Edges   []Edge   `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Course is a serialized graph node: an ID plus its requirement tree.
type Course struct {
	ID          string      `json:"id" bson:"id"`
	Requirement Requirement `json:"requirement" bson:"requirement"`
}

// Edge is a serialized dependency edge: From requires To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Requirement is the wire form of a requirement tree, discriminated by which
// field is set: Course for a leaf, AnyOf for a disjunction, and AllOf (or
// nothing at all — the empty object) for a conjunction.
type Requirement struct {
	Course string        `json:"course,omitempty" bson:"course,omitempty"`
	AllOf  []Requirement `json:"all_of,omitempty" bson:"all_of,omitempty"`
	AnyOf  []Requirement `json:"any_of,omitempty" bson:"any_of,omitempty"`
}

// FromGraph converts a built graph to its serialization format.
// Courses are sorted by ID for deterministic output; edge order follows the
// graph's insertion order.
func FromGraph(g *catalog.Graph) Catalog {
	out := Catalog{
		Courses: make([]Course, 0, g.Len()),
		Edges:   make([]Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.IDs() {
		c, _ := g.Course(id)
		out.Courses = append(out.Courses, Course{
			ID:          c.ID,
			Requirement: fromRequirement(c.Requirement),
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// ToGraph converts serialized form back to a graph.
// Edges are re-derived from the requirement trees rather than trusted from
// the wire, so a hand-edited file cannot desynchronize the two; the Edges
// field is accepted for readability but not required.
func ToGraph(c Catalog) (*catalog.Graph, error) {
	g := catalog.New()
	for _, wc := range c.Courses {
		req, err := toRequirement(wc.Requirement)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "course %s", wc.ID)
		}
		if err := g.AddCourse(catalog.Course{ID: wc.ID, Requirement: req}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "add course %s", wc.ID)
		}
	}
	for _, wc := range c.Courses {
		c, _ := g.Course(wc.ID)
		for _, leaf := range c.Requirement.Leaves() {
			if err := g.AddPrereqEdge(wc.ID, leaf); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s→%s", wc.ID, leaf)
			}
		}
	}
	return g, nil
}

func fromRequirement(r course.Requirement) Requirement {
	switch expr := r.(type) {
	case course.Leaf:
		return Requirement{Course: expr.Course}
	case course.AllOf:
		return Requirement{AllOf: fromChildren(expr)}
	case course.AnyOf:
		return Requirement{AnyOf: fromChildren(expr)}
	default:
		return Requirement{}
	}
}

func fromChildren(children []course.Requirement) []Requirement {
	if len(children) == 0 {
		return nil
	}
	out := make([]Requirement, len(children))
	for i, c := range children {
		out[i] = fromRequirement(c)
	}
	return out
}

func toRequirement(w Requirement) (course.Requirement, error) {
	set := 0
	if w.Course != "" {
		set++
	}
	if w.AllOf != nil {
		set++
	}
	if w.AnyOf != nil {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("requirement sets multiple variants")
	}

	switch {
	case w.Course != "":
		return course.Leaf{Course: w.Course}, nil
	case w.AnyOf != nil:
		if len(w.AnyOf) == 0 {
			return nil, fmt.Errorf("empty any_of")
		}
		children, err := toChildren(w.AnyOf)
		if err != nil {
			return nil, err
		}
		return course.AnyOf(children), nil
	default:
		// An absent or empty all_of is "no prerequisites".
		children, err := toChildren(w.AllOf)
		if err != nil {
			return nil, err
		}
		return course.AllOf(children), nil
	}
}

func toChildren(wire []Requirement) ([]course.Requirement, error) {
	children := make([]course.Requirement, 0, len(wire))
	for _, w := range wire {
		c, err := toRequirement(w)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return slices.Clip(children), nil
}
