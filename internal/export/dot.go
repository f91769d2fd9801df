package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// GenerateDOT produces a Graphviz digraph of a view, following the same
// conventions as GenerateMermaid.
func GenerateDOT[K comparable](v *horizon.View[K]) string {
	ids := newNodeIDs[K]("n")

	var sb strings.Builder
	sb.WriteString("digraph horizon {\n")

	declared := make(map[K]bool, len(v.Nodes))
	for _, n := range v.Nodes {
		if declared[n.ID] {
			continue
		}
		declared[n.ID] = true
		sb.WriteString(fmt.Sprintf("  %s [label=%s];\n", ids.get(n.ID), strconv.Quote(n.Label)))
	}

	for _, e := range v.Edges {
		if !declared[e.To] {
			declared[e.To] = true
			sb.WriteString(fmt.Sprintf("  %s [label=%s, style=dashed];\n", ids.get(e.To), strconv.Quote(fmt.Sprint(e.To))))
		}
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", ids.get(e.From), ids.get(e.To)))
	}

	for i, id := range v.Truncated {
		sb.WriteString(fmt.Sprintf("  t%d [label=\"...\", shape=plaintext];\n", i))
		sb.WriteString(fmt.Sprintf("  %s -> t%d [style=dotted, arrowhead=none];\n", ids.get(id), i))
	}

	sb.WriteString("}\n")
	return sb.String()
}
