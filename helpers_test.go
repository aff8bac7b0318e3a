package neighborjoin

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Small matrices shared across tests. Expected trees were produced by the
// reference algorithm.
var (
	// threeLeaves has a single merge; every pair ties on Q.
	threeLeaves = [][]float64{
		{0, 2, 3},
		{2, 0, 3},
		{3, 3, 0},
	}

	// twoPairs is two tight pairs far from each other.
	twoPairs = [][]float64{
		{0, 1, 10, 10},
		{1, 0, 10, 10},
		{10, 10, 0, 1},
		{10, 10, 1, 0},
	}

	// fiveLeaves is the textbook additive example.
	fiveLeaves = [][]float64{
		{0, 5, 9, 9, 8},
		{5, 0, 10, 10, 9},
		{9, 10, 0, 8, 7},
		{9, 10, 8, 0, 3},
		{8, 9, 7, 3, 0},
	}

	// equidistant4 makes every score and every leaf edge tie.
	equidistant4 = [][]float64{
		{0, 2, 2, 2},
		{2, 0, 2, 2},
		{2, 2, 0, 2},
		{2, 2, 2, 0},
	}
)

func mustDistances(t testing.TB, rows [][]float64) *Distances {
	t.Helper()
	d, err := DistancesFromRows(rows)
	require.NoError(t, err)
	return d
}

// randomPoints returns n seeded points in [0,100)^dims.
func randomPoints(n, dims int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dims)
		for j := range pts[i] {
			pts[i][j] = rng.Float64() * 100
		}
	}
	return pts
}

// euclideanRows builds the pairwise Euclidean matrix for pts.
func euclideanRows(pts [][]float64) [][]float64 {
	n := len(pts)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for k := range pts[i] {
				diff := pts[i][k] - pts[j][k]
				sum += diff * diff
			}
			rows[i][j] = math.Sqrt(sum)
			rows[j][i] = rows[i][j]
		}
	}
	return rows
}
