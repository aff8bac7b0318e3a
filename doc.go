// Package neighborjoin builds rooted binary trees from pairwise distances
// with the neighbor-joining algorithm and serializes them in Newick format.
//
// Neighbor joining repeatedly merges the pair of active nodes with the
// smallest divergence-adjusted distance into a new internal node, until two
// nodes remain. The resulting unrooted tree is rooted at the midpoint of its
// longest edge, oriented away from the root, and written out with six-digit
// branch lengths.
//
// Basic usage:
//
//	d, err := neighborjoin.DistancesFromRows([][]float64{
//		{0, 2, 3},
//		{2, 0, 3},
//		{3, 3, 0},
//	})
//	result, err := neighborjoin.Build(d, neighborjoin.DefaultConfig())
//	// result.Newick is "(2:1.000000,(0:1.000000,1:1.000000):1.000000);"
//	// result.Order is the breadth-first visit order, starting at result.Root
//
// For a flat row-major matrix or a gonum matrix:
//
//	result, err := neighborjoin.BuildPrecomputed(distMatrix, n, cfg)
//	result, err := neighborjoin.BuildSymmetric(symDense, cfg)
//
// # Node ids
//
// Leaves are 0..n-1. Join allocates internal nodes n..2n-3, one per merge,
// and the root inserted by MidpointRoot is 2n-2. The individual stages
// (Join, MidpointRoot, Assemble, Tree.BFS, Newick) are exported for callers
// that need the intermediate edge lists.
//
// The input must be symmetric with a zero diagonal. Other metric properties
// such as the triangle inequality or non-negativity are not checked;
// violating them yields a tree with meaningless branch lengths.
package neighborjoin
