package neighborjoin

import (
	"fmt"

	"go.uber.org/zap"
)

// Edge is an undirected edge between two node ids. Its weight is the
// distance stored for the pair.
type Edge struct {
	A, B int
}

// Weight looks up the edge weight in d.
func (e Edge) Weight(d *Distances) (float64, error) {
	return d.At(e.A, e.B)
}

// Merge records one agglomeration step of the reducer: Left and Right were
// joined under the new internal node Node.
type Merge struct {
	Left, Right int
	Node        int
	// LeftLength and RightLength are the branch lengths D[Left][Node] and
	// D[Right][Node].
	LeftLength, RightLength float64
	// Score is the minimal transformed distance Q[Left][Right] that selected
	// the pair.
	Score float64
}

// Joining is the output of Join.
type Joining struct {
	// Edges is the unrooted tree in creation order: two edges per merge,
	// then the edge joining the last two active nodes. len(Edges) == 2n-3.
	Edges []Edge
	// Merges has one entry per internal node, n-2 in total.
	Merges []Merge
	// Leaves is the number of input leaves n.
	Leaves int
}

// Join runs neighbor joining over every node in d, which must hold a complete
// matrix for leaves 0..n-1 with n >= 3. d is extended in place with the n-2
// internal nodes n..2n-3; each gets a distance to every node created before
// it. logger may be nil.
//
// Pairs are scanned in active-set order (ascending ids) and the minimum is
// replaced only by a strictly smaller score, so the first of several tied
// pairs wins.
func Join(d *Distances, logger *zap.Logger) (*Joining, error) {
	n := len(d.Leaves())
	if d.Len() != n {
		return nil, fmt.Errorf("%w: store already holds %d nodes beyond its %d leaves", ErrInconsistentMatrix, d.Len()-n, n)
	}
	if n < 3 {
		return nil, fmt.Errorf("%w: neighbor joining needs at least 3 leaves, got %d", ErrInvalidInputSize, n)
	}
	if err := d.checkComplete(n); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	active := d.Leaves()

	edges := make([]Edge, 0, 2*n-3)
	merges := make([]Merge, 0, n-2)
	// Divergence indexed by node id; ids never exceed 2n-3.
	r := make([]float64, 2*n-2)

	k := n
	for len(active) > 2 {
		denom := float64(len(active) - 2)
		for _, i := range active {
			var sum float64
			for _, j := range active {
				sum += d.at(i, j) / denom
			}
			r[i] = sum
		}

		iMin, jMin := active[0], active[1]
		minQ := d.at(iMin, jMin) - (r[iMin] + r[jMin])
		for _, i := range active {
			for _, j := range active {
				if i == j {
					continue
				}
				if q := d.at(i, j) - (r[i] + r[j]); q < minQ {
					minQ = q
					iMin, jMin = i, j
				}
			}
		}

		if err := d.AddNode(k); err != nil {
			return nil, err
		}
		dij := d.at(iMin, jMin)
		for m := 0; m < k; m++ {
			d.set(k, m, 0.5*(d.at(iMin, m)+d.at(jMin, m)-dij))
		}
		li := 0.5 * (dij + r[iMin] - r[jMin])
		lj := dij - li
		d.set(iMin, k, li)
		d.set(jMin, k, lj)

		edges = append(edges, Edge{A: iMin, B: k}, Edge{A: jMin, B: k})
		merges = append(merges, Merge{
			Left:        iMin,
			Right:       jMin,
			Node:        k,
			LeftLength:  li,
			RightLength: lj,
			Score:       minQ,
		})
		logger.Debug("joined pair",
			zap.Int("left", iMin),
			zap.Int("right", jMin),
			zap.Int("node", k),
			zap.Float64("q", minQ),
			zap.Float64("left_length", li),
			zap.Float64("right_length", lj),
		)

		active = removeJoined(active, iMin, jMin)
		active = append(active, k)
		k++
	}

	edges = append(edges, Edge{A: active[0], B: active[1]})

	return &Joining{Edges: edges, Merges: merges, Leaves: n}, nil
}

// removeJoined drops a and b from active, keeping the order of the rest.
func removeJoined(active []int, a, b int) []int {
	out := active[:0]
	for _, id := range active {
		if id != a && id != b {
			out = append(out, id)
		}
	}
	return out
}
