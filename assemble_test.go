package neighborjoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidpointRoot_LongestEdge(t *testing.T) {
	d := mustDistances(t, fiveLeaves)
	j, err := Join(d, nil)
	require.NoError(t, err)

	r, err := MidpointRoot(j.Edges, d)
	require.NoError(t, err)

	assert.Equal(t, 8, r.Root)
	assert.Equal(t, Edge{2, 6}, r.Split)
	assert.Equal(t, 4.0, r.Length)
	assert.Zero(t, r.Ties)
	assert.Equal(t, []Edge{{0, 5}, {1, 5}, {5, 6}, {3, 7}, {4, 7}, {6, 7}, {2, 8}, {6, 8}}, r.Edges)

	// Input is left alone.
	assert.Equal(t, Edge{2, 6}, j.Edges[2])
	assert.Len(t, j.Edges, 7)
}

func TestMidpointRoot_TieKeepsFirst(t *testing.T) {
	d := mustDistances(t, equidistant4)
	j, err := Join(d, nil)
	require.NoError(t, err)

	r, err := MidpointRoot(j.Edges, d)
	require.NoError(t, err)

	// Four leaf edges of length 1 tie; the first one wins.
	assert.Equal(t, Edge{0, 4}, r.Split)
	assert.Equal(t, 3, r.Ties)
	assert.Equal(t, 6, r.Root)
	assert.Equal(t, []Edge{{1, 4}, {2, 5}, {3, 5}, {4, 5}, {0, 6}, {4, 6}}, r.Edges)
}

func TestMidpointRoot_NonPositiveWeights(t *testing.T) {
	d := mustDistances(t, [][]float64{
		{0, -1, -1},
		{-1, 0, -1},
		{-1, -1, 0},
	})
	j, err := Join(d, nil)
	require.NoError(t, err)

	r, err := MidpointRoot(j.Edges, d)
	require.NoError(t, err)
	assert.Equal(t, Edge{0, 3}, r.Split)
	assert.Equal(t, -0.5, r.Length)
	assert.Equal(t, 2, r.Ties)
}

func TestMidpointRoot_Errors(t *testing.T) {
	d := NewDistances(3)

	_, err := MidpointRoot(nil, d)
	assert.ErrorIs(t, err, ErrMalformedTree)

	_, err = MidpointRoot([]Edge{{0, 1}}, d)
	assert.ErrorIs(t, err, ErrInconsistentMatrix)
}

func TestMidpointRoot_RootPastHighestEdgeID(t *testing.T) {
	d := NewDistances(2)
	require.NoError(t, d.Set(0, 1, 3))

	r, err := MidpointRoot([]Edge{{0, 1}}, d)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Root)
	assert.Equal(t, []Edge{{0, 2}, {1, 2}}, r.Edges)
}

func TestAssemble_FiveLeaves(t *testing.T) {
	edges := []Edge{{0, 5}, {1, 5}, {5, 6}, {3, 7}, {4, 7}, {6, 7}, {2, 8}, {6, 8}}

	tree, err := Assemble(8, edges)
	require.NoError(t, err)

	assert.Equal(t, 8, tree.Root())
	assert.Equal(t, 9, tree.Len())
	assert.Equal(t, tree.Len()-1, tree.EdgeCount())

	want := map[int][]int{
		8: {2, 6},
		6: {5, 7},
		5: {0, 1},
		7: {3, 4},
	}
	for id := 0; id <= 8; id++ {
		assert.Equal(t, want[id], tree.Children(id), "children of %d", id)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tree.Leaves())
}

func TestAssemble_ChildOrderFollowsEdgeList(t *testing.T) {
	// Node 9's parent edge (8, 9) comes last; its children keep list order.
	edges := []Edge{{4, 6}, {5, 6}, {2, 7}, {6, 7}, {1, 8}, {3, 9}, {7, 9}, {8, 9}, {0, 10}, {8, 10}}

	tree, err := Assemble(10, edges)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 8}, tree.Children(10))
	assert.Equal(t, []int{1, 9}, tree.Children(8))
	assert.Equal(t, []int{3, 7}, tree.Children(9))
	assert.Equal(t, []int{2, 6}, tree.Children(7))
	assert.Equal(t, []int{4, 5}, tree.Children(6))
}

func TestAssemble_SingleNode(t *testing.T) {
	tree, err := Assemble(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, []int{0}, tree.Leaves())
	assert.Zero(t, tree.EdgeCount())
}

func TestAssemble_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		root  int
		edges []Edge
	}{
		{name: "three children", root: 0, edges: []Edge{{0, 1}, {0, 2}, {0, 3}}},
		{name: "one child", root: 0, edges: []Edge{{0, 1}, {1, 2}, {1, 3}}},
		{name: "chain", root: 3, edges: []Edge{{3, 0}, {3, 1}, {1, 2}}},
		{name: "cycle", root: 3, edges: []Edge{{3, 0}, {3, 1}, {0, 1}, {0, 4}, {1, 5}}},
		{name: "self loop", root: 2, edges: []Edge{{2, 2}, {2, 0}}},
		{name: "disconnected", root: 2, edges: []Edge{{2, 0}, {2, 1}, {3, 4}}},
		{name: "negative id", root: 0, edges: []Edge{{0, -1}, {0, 1}}},
		{name: "negative root", root: -1, edges: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Assemble(tt.root, tt.edges)
			assert.ErrorIs(t, err, ErrMalformedTree)
			assert.Nil(t, tree)
		})
	}
}

func TestValidateEdges(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		ok    bool
	}{
		{name: "single edge", edges: []Edge{{0, 1}}, ok: true},
		{name: "unrooted tree", edges: []Edge{{0, 3}, {1, 3}, {2, 3}}, ok: true},
		{name: "empty", edges: nil},
		{name: "cycle", edges: []Edge{{0, 1}, {1, 2}, {2, 0}}},
		{name: "self loop", edges: []Edge{{0, 0}}},
		{name: "disconnected", edges: []Edge{{0, 1}, {2, 3}}},
		{name: "negative", edges: []Edge{{0, -2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdges(tt.edges)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedTree)
			}
		})
	}
}

func TestTree_NodeAccessors(t *testing.T) {
	tree, err := Assemble(4, []Edge{{0, 3}, {1, 3}, {2, 4}, {3, 4}})
	require.NoError(t, err)

	n, ok := tree.Node(3)
	require.True(t, ok)
	assert.Equal(t, Node{ID: 3, Left: 0, Right: 1}, n)

	n, ok = tree.Node(2)
	require.True(t, ok)
	assert.True(t, n.Leaf)
	assert.Nil(t, tree.Children(2))

	_, ok = tree.Node(9)
	assert.False(t, ok)
	_, ok = tree.Node(-1)
	assert.False(t, ok)
	assert.Nil(t, tree.Children(9))

	assert.Equal(t, []Edge{{4, 2}, {4, 3}, {3, 0}, {3, 1}}, tree.Edges())
}
