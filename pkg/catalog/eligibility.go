package catalog

import (
	"github.com/coursegraph/coursegraph/pkg/course"
)

// Eligible returns every course in the graph that the student has not yet
// completed and whose requirement expression is satisfied by the completed
// set. Results are in ascending course-ID order.
//
// Completed IDs that are not in the graph are ignored rather than rejected; a
// student may hold transfer credit for courses outside this catalog. Courses
// already completed are excluded even when their requirement is satisfied.
//
// Eligible is pure and safe to call concurrently with other queries on the
// same graph. An INVALID_EXPRESSION error is only possible for a graph that
// bypassed [Build] with a structurally empty disjunction; it signals a
// catalog-construction defect, not a recoverable query failure.
func (g *Graph) Eligible(completed CompletedSet) ([]string, error) {
	var eligible []string
	for _, id := range g.IDs() {
		if completed.Has(id) {
			continue
		}
		c := g.courses[id]
		ok, err := course.Eval(c.Requirement, completed)
		if err != nil {
			return nil, err
		}
		if ok {
			eligible = append(eligible, id)
		}
	}
	return eligible, nil
}
