package neighborjoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFS_Order(t *testing.T) {
	tests := []struct {
		name  string
		root  int
		edges []Edge
		want  []int
	}{
		{
			name:  "three leaves",
			root:  4,
			edges: []Edge{{0, 3}, {1, 3}, {2, 4}, {3, 4}},
			want:  []int{4, 2, 3, 0, 1},
		},
		{
			name:  "five leaves",
			root:  8,
			edges: []Edge{{0, 5}, {1, 5}, {5, 6}, {3, 7}, {4, 7}, {6, 7}, {2, 8}, {6, 8}},
			want:  []int{8, 2, 6, 5, 7, 0, 1, 3, 4},
		},
		{
			name:  "single leaf",
			root:  0,
			edges: nil,
			want:  []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Assemble(tt.root, tt.edges)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.BFS())
		})
	}
}

func TestBFS_VisitsEveryNodeOnce(t *testing.T) {
	for _, n := range []int{3, 6, 17, 40} {
		res, err := BuildRows(euclideanRows(randomPoints(n, 2, int64(100+n))), DefaultConfig())
		require.NoError(t, err)

		order := res.Tree.BFS()
		require.Len(t, order, 2*n-1, "n=%d", n)
		assert.Equal(t, res.Root, order[0])

		seen := make(map[int]bool, len(order))
		for _, id := range order {
			assert.False(t, seen[id], "node %d visited twice", id)
			seen[id] = true
		}
		for id := 0; id <= res.Root; id++ {
			assert.True(t, seen[id], "node %d never visited", id)
		}
	}
}
