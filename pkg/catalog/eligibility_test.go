package catalog

import (
	"reflect"
	"testing"

	"github.com/coursegraph/coursegraph/pkg/course"
	"github.com/coursegraph/coursegraph/pkg/errors"
)

func TestEligible_NothingCompleted(t *testing.T) {
	// Only courses with no prerequisites are eligible against the empty set.
	g := mustBuild(t, map[string]string{
		"A": "",
		"B": "A",
		"C": "one of A or B",
	})

	got, err := g.Eligible(course.NewSet())
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	if want := []string{"A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eligible(∅) = %v, want %v", got, want)
	}
}

func TestEligible_DisjunctionUnlocks(t *testing.T) {
	g := mustBuild(t, map[string]string{
		"CS201": "",
		"CS301": "CS201",
		"CS302": "CS201",
		"CS401": "one of CS301 or CS302",
	})

	got, err := g.Eligible(course.NewSet("CS201", "CS302"))
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	// CS301 unlocked by CS201; CS401 unlocked by CS302.
	if want := []string{"CS301", "CS401"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eligible() = %v, want %v", got, want)
	}
}

func TestEligible_ExcludesCompleted(t *testing.T) {
	g := mustBuild(t, map[string]string{
		"A": "",
		"B": "A",
	})

	got, err := g.Eligible(course.NewSet("A"))
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	for _, id := range got {
		if id == "A" {
			t.Error("Eligible() includes completed course A")
		}
	}
	if want := []string{"B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eligible() = %v, want %v", got, want)
	}
}

func TestEligible_IgnoresTransferCredit(t *testing.T) {
	// Completed courses outside the catalog are ignored, not errors.
	g := mustBuild(t, map[string]string{
		"A": "",
		"B": "A",
	})

	got, err := g.Eligible(course.NewSet("A", "TRANSFER 101"))
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	if want := []string{"B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Eligible() = %v, want %v", got, want)
	}
}

func TestEligible_AllCompleted(t *testing.T) {
	g := mustBuild(t, map[string]string{
		"A": "",
		"B": "A",
	})

	got, err := g.Eligible(course.NewSet("A", "B"))
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Eligible(everything) = %v, want empty", got)
	}
}

func TestEligible_EmptyAnyOfIsCatalogDefect(t *testing.T) {
	// Build rejects empty disjunctions at parse time, so reaching one at
	// evaluation requires bypassing Build.
	g := New()
	if err := g.AddCourse(Course{ID: "X", Requirement: course.AnyOf{}}); err != nil {
		t.Fatalf("AddCourse() error = %v", err)
	}

	_, err := g.Eligible(course.NewSet())
	if err == nil {
		t.Fatal("Eligible() error = nil, want INVALID_EXPRESSION")
	}
	if !errors.Is(err, errors.ErrCodeInvalidExpression) {
		t.Errorf("GetCode() = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidExpression)
	}
}

func TestEligible_ConcurrentQueriesAreSafe(t *testing.T) {
	g := mustBuild(t, map[string]string{
		"A": "", "B": "A", "C": "B", "D": "one of B or C",
	})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if _, err := g.Eligible(course.NewSet("A")); err != nil {
					t.Errorf("Eligible() error = %v", err)
					return
				}
				if _, err := g.TopologicalOrder(); err != nil {
					t.Errorf("TopologicalOrder() error = %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
