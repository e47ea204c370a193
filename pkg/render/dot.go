package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/course"
)

// Options configures DOT rendering.
type Options struct {
	// Completed courses are rendered with grey fill and struck-out borders.
	Completed course.Set

	// Eligible courses are rendered with a green fill so the student sees
	// what they can take next.
	Eligible course.Set

	// Detailed includes the prerequisite expression in node labels.
	// When false, only the course ID is shown.
	Detailed bool
}

// ToDOT converts a catalog graph to Graphviz DOT format.
// Edges point from a course to its prerequisite, so with rankdir=BT the
// introductory courses appear at the bottom of the rendered diagram.
//
// The output is deterministic: nodes and edges are emitted in sorted order.
func ToDOT(g *catalog.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph prerequisites {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.IDs() {
		c, _ := g.Course(id)
		label := fmtLabel(c, opts.Detailed)
		attrs := fmtAttrs(id, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *catalog.Course, detailed bool) string {
	if !detailed {
		return c.ID
	}
	req := c.Requirement.String()
	if req == "none" {
		return c.ID
	}
	return c.ID + "\nrequires: " + req
}

func fmtAttrs(id, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case opts.Completed.Has(id):
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey25")
	case opts.Eligible.Has(id):
		attrs = append(attrs, "fillcolor=palegreen", "penwidth=2")
	}
	return attrs
}
