package horizon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescendants(t *testing.T) {
	ix := buildSample(t)

	tests := []struct {
		name   string
		center int
		limit  int
		want   []int
	}{
		{name: "limit zero is empty", center: 1, limit: 0, want: []int{}},
		{name: "negative limit is empty", center: 1, limit: -1, want: []int{}},
		{name: "limit one is direct children", center: 1, limit: 1, want: []int{2, 3}},
		{name: "limit two reaches grandchildren", center: 1, limit: 2, want: []int{2, 4, 3}},
		{name: "limit beyond depth", center: 1, limit: 10, want: []int{2, 4, 3}},
		{name: "leaf has none", center: 4, limit: 3, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.Descendants(tt.center, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDescendants_ExcludesCenter(t *testing.T) {
	ix := buildSample(t)
	got, err := ix.Descendants(1, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 3, 4}, ids(got))
	assert.NotContains(t, ids(got), 1)
}

func TestDescendants_StopsAtLimit(t *testing.T) {
	ix, err := Build(chainRecords(8), Options{})
	require.NoError(t, err)

	got, err := ix.Descendants(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, ids(got))
}

func TestDescendants_UnknownCenter(t *testing.T) {
	ix := buildSample(t)
	_, err := ix.Descendants(999, 3)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAncestors(t *testing.T) {
	ix := buildSample(t)

	tests := []struct {
		name   string
		center int
		limit  int
		want   []int
	}{
		{name: "root appends itself", center: 1, limit: 3, want: []int{1}},
		{name: "child collects siblings then root", center: 2, limit: 3, want: []int{2, 3, 1}},
		{name: "grandchild", center: 4, limit: 3, want: []int{4, 2, 3, 1}},
		{name: "limit exhausted before root", center: 4, limit: 1, want: []int{4}},
		{name: "limit exhausted one below root", center: 4, limit: 2, want: []int{4, 2, 3}},
		{name: "limit zero is empty", center: 4, limit: 0, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.Ancestors(tt.center, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAncestors_LongChainHasNoTopNode(t *testing.T) {
	ix, err := Build(chainRecords(8), Options{})
	require.NoError(t, err)

	got, err := ix.Ancestors(6, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 5, 4}, ids(got))
}

func TestAncestors_OrphanIsEffectiveRoot(t *testing.T) {
	records := []Record[int]{
		NewRecord(1, Parent(77), "orphan"),
		NewRecord(2, Parent(1), "child"),
		NewRecord(3, Parent(77), "other orphan"),
	}
	ix, err := Build(records, Options{})
	require.NoError(t, err)

	got, err := ix.Ancestors(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))

	got, err = ix.Ancestors(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
}

func TestAncestors_SiblingsIncluded(t *testing.T) {
	records := []Record[int]{
		NewRecord(1, nil, "root"),
		NewRecord(2, Parent(1), "a"),
		NewRecord(3, Parent(1), "b"),
		NewRecord(4, Parent(1), "c"),
		NewRecord(5, Parent(3), "b1"),
		NewRecord(6, Parent(3), "b2"),
	}
	ix, err := Build(records, Options{})
	require.NoError(t, err)

	got, err := ix.Ancestors(6, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 2, 3, 4, 1}, ids(got))
}

func TestAncestors_UnknownCenter(t *testing.T) {
	ix := buildSample(t)
	_, err := ix.Ancestors(999, 3)
	assert.True(t, errors.Is(err, ErrNotFound))
}
