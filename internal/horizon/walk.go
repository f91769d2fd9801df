package horizon

// Ancestors returns the bounded upward horizon of center: for each of up to
// limit steps, the children of the next ancestor (the siblings of the node
// just left, that node included). When a root or orphan is reached it is
// appended and the walk stops; if limit runs out first no top node is added.
// Results are not deduplicated.
func (ix *Index[K]) Ancestors(center K, limit int) ([]Record[K], error) {
	pos, ok := ix.byID[center]
	if !ok {
		return nil, &NotFoundError[K]{ID: center}
	}
	return ix.at(ix.ancestors(pos, limit)), nil
}

func (ix *Index[K]) ancestors(pos, limit int) []int {
	var out []int
	for i := 0; i < limit; i++ {
		parent, ok := ix.parentPos(pos)
		if !ok {
			out = append(out, pos)
			break
		}
		pos = parent
		out = append(out, ix.children[ix.records[pos].ID]...)
	}
	return out
}

// Descendants returns the descendants of center down to limit levels, in
// depth-first pre-order. The center itself is never included, so limit <= 0
// yields an empty slice and limit == 1 yields the direct children.
func (ix *Index[K]) Descendants(center K, limit int) ([]Record[K], error) {
	pos, ok := ix.byID[center]
	if !ok {
		return nil, &NotFoundError[K]{ID: center}
	}
	return ix.at(ix.descendants(pos, limit, 0, nil)), nil
}

func (ix *Index[K]) descendants(pos, limit, level int, out []int) []int {
	if level > 0 {
		out = append(out, pos)
	}
	if level < limit {
		for _, child := range ix.children[ix.records[pos].ID] {
			out = ix.descendants(child, limit, level+1, out)
		}
	}
	return out
}
