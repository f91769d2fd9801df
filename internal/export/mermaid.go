package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// GenerateMermaid produces a Mermaid graph TD diagram of a view. Repeated
// nodes are declared once. Edge targets outside the view are drawn with their
// id as label, and truncated nodes get a dotted stub so readers can tell the
// horizon was cut there.
func GenerateMermaid[K comparable](v *horizon.View[K]) string {
	ids := newNodeIDs[K]("N")

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[K]bool, len(v.Nodes))
	for _, n := range v.Nodes {
		if declared[n.ID] {
			continue
		}
		declared[n.ID] = true
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids.get(n.ID), mermaidLabel(n.Label)))
	}

	for _, e := range v.Edges {
		if !declared[e.To] {
			declared[e.To] = true
			sb.WriteString(fmt.Sprintf("  %s[\"%v\"]\n", ids.get(e.To), e.To))
		}
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", ids.get(e.From), ids.get(e.To)))
	}

	for i, id := range v.Truncated {
		sb.WriteString(fmt.Sprintf("  %s -.- T%d((\"...\"))\n", ids.get(id), i))
	}

	return sb.String()
}

// mermaidLabel escapes characters Mermaid treats specially inside quotes.
func mermaidLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", " ")
}

// nodeIDs hands out stable alphanumeric identifiers for record keys.
type nodeIDs[K comparable] struct {
	prefix string
	ids    map[K]string
}

func newNodeIDs[K comparable](prefix string) *nodeIDs[K] {
	return &nodeIDs[K]{prefix: prefix, ids: make(map[K]string)}
}

func (n *nodeIDs[K]) get(key K) string {
	if id, ok := n.ids[key]; ok {
		return id
	}
	id := fmt.Sprintf("%s%d", n.prefix, len(n.ids))
	n.ids[key] = id
	return id
}
