package horizon

import (
	"encoding/json"
	"fmt"
)

// Limits bounds the traversal depth of a view.
type Limits struct {
	MaxAncestorLevel   int `json:"maxAncestorLevel"`
	MaxDescendantLevel int `json:"maxDescendantLevel"`
}

// Node is a record annotated for display. It is a copy; building a view
// never touches the index.
type Node[K comparable] struct {
	Record[K]
	Label string
}

// MarshalJSON encodes the flattened record with an extra "label" key.
func (n Node[K]) MarshalJSON() ([]byte, error) {
	obj := n.Record.flatten()
	obj[fieldLabel] = n.Label
	return json.Marshal(obj)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (n *Node[K]) UnmarshalJSON(data []byte) error {
	var rec Record[K]
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	var label string
	if v, ok := rec.Fields[fieldLabel]; ok {
		s, isString := v.(string)
		if !isString {
			return fmt.Errorf("node %v: label is %T, want string", rec.ID, v)
		}
		label = s
		delete(rec.Fields, fieldLabel)
		if len(rec.Fields) == 0 {
			rec.Fields = nil
		}
	}
	*n = Node[K]{Record: rec, Label: label}
	return nil
}

// Edge links a parent to one of its children.
type Edge[K comparable] struct {
	From K `json:"from"`
	To   K `json:"to"`
}

// View is the {nodes, edges} document handed to a graph renderer.
type View[K comparable] struct {
	Nodes []Node[K] `json:"nodes"`
	Edges []Edge[K] `json:"edges"`

	// Truncated lists, in first-seen order, the ids of nodes that have a
	// parent or child outside Nodes. It is not part of the encoded document.
	Truncated []K `json:"-"`
}

// View assembles the horizon around center using the index's limits.
func (ix *Index[K]) View(center K) (*View[K], error) {
	return ix.ViewWithLimits(center, ix.limits)
}

// ViewWithLimits assembles the horizon around center: the ancestor horizon
// followed by the descendants, each labelled with its title, plus one edge
// from every node to each of its children. Nodes are not deduplicated, so
// overlapping horizons repeat nodes and edges.
func (ix *Index[K]) ViewWithLimits(center K, limits Limits) (*View[K], error) {
	pos, ok := ix.byID[center]
	if !ok {
		return nil, &NotFoundError[K]{ID: center}
	}

	positions := ix.ancestors(pos, limits.MaxAncestorLevel)
	positions = ix.descendants(pos, limits.MaxDescendantLevel, 0, positions)

	v := &View[K]{
		Nodes: make([]Node[K], len(positions)),
		Edges: []Edge[K]{},
	}
	inView := make(map[K]bool, len(positions))
	for i, p := range positions {
		r := ix.records[p].clone()
		v.Nodes[i] = Node[K]{Record: r, Label: r.Title}
		inView[r.ID] = true
	}

	for _, p := range positions {
		parentID := ix.records[p].ID
		for _, c := range ix.children[parentID] {
			v.Edges = append(v.Edges, Edge[K]{From: parentID, To: ix.records[c].ID})
		}
	}

	v.Truncated = ix.truncated(positions, inView)
	return v, nil
}

// truncated returns ids of nodes at positions with a relative outside inView.
func (ix *Index[K]) truncated(positions []int, inView map[K]bool) []K {
	var out []K
	seen := make(map[K]bool, len(positions))
	for _, p := range positions {
		id := ix.records[p].ID
		if seen[id] {
			continue
		}
		seen[id] = true

		cut := false
		if parent, ok := ix.parentPos(p); ok && !inView[ix.records[parent].ID] {
			cut = true
		}
		for _, c := range ix.children[id] {
			if !inView[ix.records[c].ID] {
				cut = true
				break
			}
		}
		if cut {
			out = append(out, id)
		}
	}
	return out
}
