package horizon

import (
	"golang.org/x/sync/errgroup"
)

// Default traversal limits for View.
const (
	DefaultMaxAncestorLevel   = 3
	DefaultMaxDescendantLevel = 3
)

// Options controls Build.
type Options struct {
	// StrictParents rejects records whose parent id is not in the input.
	// By default such records are kept and treated as roots.
	StrictParents bool

	// Workers > 1 partitions the input and indexes the partitions
	// concurrently before merging them.
	Workers int

	// Limits used by View. Zero values fall back to the defaults.
	MaxAncestorLevel   int
	MaxDescendantLevel int
}

// Index is the immutable id and parent→children index over a record set.
// It owns copies of the records it was built from and is safe for concurrent
// readers once Build returns.
type Index[K comparable] struct {
	records  []Record[K]
	byID     map[K]int
	children map[K][]int
	roots    []int
	limits   Limits
}

// Build indexes records. The input is copied; later changes to the caller's
// slice or records are not observed by the index. No index is returned on
// error.
func Build[K comparable](records []Record[K], opts Options) (*Index[K], error) {
	owned := make([]Record[K], len(records))
	for i, r := range records {
		owned[i] = r.clone()
	}

	var (
		part *partial[K]
		err  error
	)
	if opts.Workers > 1 && len(owned) > opts.Workers {
		part, err = indexParallel(owned, opts.Workers)
	} else {
		part, err = indexRange(owned, 0, len(owned))
	}
	if err != nil {
		return nil, err
	}

	ix := &Index[K]{
		records:  owned,
		byID:     part.byID,
		children: part.children,
		limits: Limits{
			MaxAncestorLevel:   orDefault(opts.MaxAncestorLevel, DefaultMaxAncestorLevel),
			MaxDescendantLevel: orDefault(opts.MaxDescendantLevel, DefaultMaxDescendantLevel),
		},
	}

	// Roots are the effective roots: records under the root sentinel and
	// orphans whose parent id is not indexed, in input order.
	for pos, r := range ix.records {
		if r.ParentID == nil {
			ix.roots = append(ix.roots, pos)
			continue
		}
		if _, ok := ix.byID[*r.ParentID]; !ok {
			if opts.StrictParents {
				return nil, &InvalidParentError[K]{ID: r.ID, ParentID: *r.ParentID}
			}
			ix.roots = append(ix.roots, pos)
		}
	}

	return ix, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// partial is the index over a contiguous range of the input.
type partial[K comparable] struct {
	byID     map[K]int
	children map[K][]int
}

// indexRange indexes records[lo:hi]. Positions stay global.
func indexRange[K comparable](records []Record[K], lo, hi int) (*partial[K], error) {
	p := &partial[K]{
		byID:     make(map[K]int, hi-lo),
		children: make(map[K][]int),
	}
	for i := lo; i < hi; i++ {
		r := records[i]
		if first, dup := p.byID[r.ID]; dup {
			return nil, &DuplicateIDError[K]{ID: r.ID, First: first, Second: i}
		}
		p.byID[r.ID] = i
		if r.ParentID != nil {
			p.children[*r.ParentID] = append(p.children[*r.ParentID], i)
		}
	}
	return p, nil
}

// indexParallel splits records into one contiguous chunk per worker, indexes
// the chunks concurrently and merges them in chunk order, which keeps child
// lists in input order.
func indexParallel[K comparable](records []Record[K], workers int) (*partial[K], error) {
	n := len(records)
	size := (n + workers - 1) / workers
	parts := make([]*partial[K], 0, workers)
	for lo := 0; lo < n; lo += size {
		parts = append(parts, nil)
	}

	var g errgroup.Group
	for w := range parts {
		lo := w * size
		hi := min(lo+size, n)
		g.Go(func() error {
			p, err := indexRange(records, lo, hi)
			if err != nil {
				return err
			}
			parts[w] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Several chunks may fail at once; rescan so the reported pair is
		// the same one a sequential build reports.
		return indexRange(records, 0, n)
	}

	merged := &partial[K]{
		byID:     make(map[K]int, n),
		children: make(map[K][]int),
	}
	for _, p := range parts {
		for id, pos := range p.byID {
			if _, dup := merged.byID[id]; dup {
				return indexRange(records, 0, n)
			}
			merged.byID[id] = pos
		}
		for parent, kids := range p.children {
			merged.children[parent] = append(merged.children[parent], kids...)
		}
	}
	return merged, nil
}

// Len returns the number of indexed records.
func (ix *Index[K]) Len() int {
	return len(ix.records)
}

// Limits returns the traversal limits View uses.
func (ix *Index[K]) Limits() Limits {
	return ix.limits
}

// Lookup returns a copy of the record with the given id.
func (ix *Index[K]) Lookup(id K) (Record[K], error) {
	pos, ok := ix.byID[id]
	if !ok {
		return Record[K]{}, &NotFoundError[K]{ID: id}
	}
	return ix.records[pos].clone(), nil
}

// Has reports whether id is indexed.
func (ix *Index[K]) Has(id K) bool {
	_, ok := ix.byID[id]
	return ok
}

// Records returns copies of all records in input order.
func (ix *Index[K]) Records() []Record[K] {
	out := make([]Record[K], len(ix.records))
	for i, r := range ix.records {
		out[i] = r.clone()
	}
	return out
}

// Roots returns the effective roots in input order: records under the root
// sentinel and orphans whose parent id is not indexed. Together with
// Children of every indexed id it reaches each record exactly once.
func (ix *Index[K]) Roots() []Record[K] {
	return ix.at(ix.roots)
}

// Children returns the direct children of id in input order. An unknown or
// childless id yields an empty slice, even when orphans name id as their
// parent.
func (ix *Index[K]) Children(id K) []Record[K] {
	return ix.at(ix.childPositions(id))
}

// ChildrenOf is Children keyed by rec.ID.
func (ix *Index[K]) ChildrenOf(rec Record[K]) []Record[K] {
	return ix.Children(rec.ID)
}

// CountChildren returns len(Children(id)).
func (ix *Index[K]) CountChildren(id K) int {
	return len(ix.childPositions(id))
}

// CountChildrenOf is CountChildren keyed by rec.ID.
func (ix *Index[K]) CountChildrenOf(rec Record[K]) int {
	return ix.CountChildren(rec.ID)
}

// Parent returns the parent key of id. ok is false when the record sits
// under the root sentinel. A dangling parent id is returned as is; use Has
// to tell orphans apart.
func (ix *Index[K]) Parent(id K) (parent K, ok bool, err error) {
	pos, found := ix.byID[id]
	if !found {
		return parent, false, &NotFoundError[K]{ID: id}
	}
	r := ix.records[pos]
	if r.ParentID == nil {
		return parent, false, nil
	}
	return *r.ParentID, true, nil
}

// ParentOf is Parent keyed by rec.ID. The index's copy of the record is
// authoritative, not rec.ParentID.
func (ix *Index[K]) ParentOf(rec Record[K]) (K, bool, error) {
	return ix.Parent(rec.ID)
}

func (ix *Index[K]) childPositions(id K) []int {
	if _, ok := ix.byID[id]; !ok {
		return nil
	}
	return ix.children[id]
}

// parentPos returns the position of the indexed parent of the record at
// pos. ok is false for roots and orphans.
func (ix *Index[K]) parentPos(pos int) (int, bool) {
	r := ix.records[pos]
	if r.ParentID == nil {
		return 0, false
	}
	p, ok := ix.byID[*r.ParentID]
	return p, ok
}

// at copies the records at the given positions. Never nil.
func (ix *Index[K]) at(positions []int) []Record[K] {
	out := make([]Record[K], len(positions))
	for i, pos := range positions {
		out[i] = ix.records[pos].clone()
	}
	return out
}

// Stats summarizes the shape of an index.
type Stats struct {
	Records int `json:"records"`
	Roots   int `json:"roots"`
	Orphans int `json:"orphans"`
	Leaves  int `json:"leaves"`
}

// Stats counts effective roots, orphans (dangling parent ids, a subset of
// the roots) and leaves.
func (ix *Index[K]) Stats() Stats {
	s := Stats{Records: len(ix.records), Roots: len(ix.roots)}
	for pos, r := range ix.records {
		if r.ParentID != nil {
			if _, ok := ix.parentPos(pos); !ok {
				s.Orphans++
			}
		}
		if len(ix.children[r.ID]) == 0 {
			s.Leaves++
		}
	}
	return s
}
