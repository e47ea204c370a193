package catalog

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

func TestBuild_Simple(t *testing.T) {
	g, err := Build(map[string]string{
		"CS201": "",
		"CS301": "CS201",
		"CS401": "CS201 and CS301",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if got := g.Prereqs("CS301"); !reflect.DeepEqual(got, []string{"CS201"}) {
		t.Errorf("Prereqs(CS301) = %v, want [CS201]", got)
	}
	if got := g.Dependents("CS201"); !reflect.DeepEqual(got, []string{"CS301", "CS401"}) {
		t.Errorf("Dependents(CS201) = %v, want [CS301 CS401]", got)
	}
}

func TestBuild_EdgesAreDeduplicated(t *testing.T) {
	// CS201 appears twice in the requirement but yields one edge.
	g, err := Build(map[string]string{
		"CS201": "",
		"CS202": "",
		"CS401": "CS201 and one of CS201 or CS202",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := g.Prereqs("CS401"); !reflect.DeepEqual(got, []string{"CS201", "CS202"}) {
		t.Errorf("Prereqs(CS401) = %v, want [CS201 CS202]", got)
	}
}

func TestBuild_UnknownReference(t *testing.T) {
	// Scenario from the catalog validation contract: CS302 is referenced
	// inside a disjunction but never defined.
	_, err := Build(map[string]string{
		"CS201": "",
		"CS301": "CS201",
		"CS401": "one of CS301 or CS302",
	})
	if err == nil {
		t.Fatal("Build() error = nil, want *BuildError")
	}

	var report *BuildError
	if !stderrors.As(err, &report) {
		t.Fatalf("Build() error = %T, want *BuildError", err)
	}
	if got := report.MissingCourses(); !reflect.DeepEqual(got, []string{"CS302"}) {
		t.Errorf("MissingCourses() = %v, want [CS302]", got)
	}
	if got := report.Unknown["CS302"]; !reflect.DeepEqual(got, []string{"CS401"}) {
		t.Errorf("Unknown[CS302] = %v, want [CS401]", got)
	}
	if code := report.Code(); code != errors.ErrCodeUnknownCourse {
		t.Errorf("Code() = %v, want %v", code, errors.ErrCodeUnknownCourse)
	}
}

func TestBuild_AccumulatesAllProblems(t *testing.T) {
	_, err := Build(map[string]string{
		"A": "60 units",      // malformed
		"B": "third year",    // malformed
		"C": "X",             // unknown reference
		"D": "one of X or Y", // two unknown references
		"E": "",
	})
	if err == nil {
		t.Fatal("Build() error = nil, want *BuildError")
	}

	var report *BuildError
	if !stderrors.As(err, &report) {
		t.Fatalf("Build() error = %T, want *BuildError", err)
	}
	if len(report.Malformed) != 2 {
		t.Errorf("len(Malformed) = %d, want 2", len(report.Malformed))
	}
	if got := report.MissingCourses(); !reflect.DeepEqual(got, []string{"X", "Y"}) {
		t.Errorf("MissingCourses() = %v, want [X Y]", got)
	}
	if got := report.Unknown["X"]; !reflect.DeepEqual(got, []string{"C", "D"}) {
		t.Errorf("Unknown[X] = %v, want [C D]", got)
	}
	if code := report.Code(); code != errors.ErrCodeInvalidCatalog {
		t.Errorf("Code() = %v, want %v", code, errors.ErrCodeInvalidCatalog)
	}
}

func TestBuild_NormalizesCourseIDs(t *testing.T) {
	g, err := Build(map[string]string{
		"  BIOCH   200 ": "",
		"BIOCH 310":      "BIOCH 200",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !g.Has("BIOCH 200") {
		t.Error("Has(BIOCH 200) = false, want true")
	}
	if g.Has("  BIOCH   200 ") {
		t.Error("raw un-normalized key survived the build")
	}
}

func TestBuild_EmptyCatalog(t *testing.T) {
	g, err := Build(map[string]string{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestGraph_AddCourse(t *testing.T) {
	g := New()

	if err := g.AddCourse(Course{ID: ""}); !stderrors.Is(err, ErrInvalidCourseID) {
		t.Errorf("AddCourse(empty) error = %v, want ErrInvalidCourseID", err)
	}
	if err := g.AddCourse(Course{ID: "CS201"}); err != nil {
		t.Fatalf("AddCourse() error = %v", err)
	}
	if err := g.AddCourse(Course{ID: "CS201"}); !stderrors.Is(err, ErrDuplicateCourse) {
		t.Errorf("AddCourse(dup) error = %v, want ErrDuplicateCourse", err)
	}

	// nil requirement defaults to "no prerequisites"
	c, ok := g.Course("CS201")
	if !ok {
		t.Fatal("Course(CS201) not found")
	}
	if c.Requirement == nil {
		t.Error("Requirement = nil, want empty AllOf")
	}
}

func TestGraph_AddPrereqEdge(t *testing.T) {
	g := New()
	g.AddCourse(Course{ID: "A"})
	g.AddCourse(Course{ID: "B"})

	if err := g.AddPrereqEdge("missing", "A"); !stderrors.Is(err, ErrUnknownSourceCourse) {
		t.Errorf("AddPrereqEdge() error = %v, want ErrUnknownSourceCourse", err)
	}
	if err := g.AddPrereqEdge("A", "missing"); !stderrors.Is(err, ErrUnknownTargetCourse) {
		t.Errorf("AddPrereqEdge() error = %v, want ErrUnknownTargetCourse", err)
	}

	if err := g.AddPrereqEdge("A", "B"); err != nil {
		t.Fatalf("AddPrereqEdge() error = %v", err)
	}
	if err := g.AddPrereqEdge("A", "B"); err != nil {
		t.Fatalf("AddPrereqEdge(dup) error = %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 (duplicate ignored)", g.EdgeCount())
	}
}
