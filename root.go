package neighborjoin

import "fmt"

// Rooting is the result of MidpointRoot.
type Rooting struct {
	// Root is the new synthetic root id.
	Root int
	// Split is the maximum-weight edge that was replaced by the root.
	Split Edge
	// Length is the weight of Split; the root sits at its midpoint.
	Length float64
	// Edges is the input edge list without Split, followed by
	// (Split.A, Root) and (Split.B, Root).
	Edges []Edge
	// Ties counts later edges whose weight equals Length.
	Ties int
}

// MidpointRoot inserts a root on the longest edge. The first edge of
// maximum weight in list order is chosen. The root id is one past the
// highest id in d or in edges. edges is not modified.
func MidpointRoot(edges []Edge, d *Distances) (*Rooting, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("%w: no edges to root", ErrMalformedTree)
	}

	best := 0
	bestWeight, err := edges[0].Weight(d)
	if err != nil {
		return nil, err
	}
	root := d.Len()
	ties := 0
	for idx, e := range edges {
		root = max(root, e.A+1, e.B+1)
		if idx == 0 {
			continue
		}
		w, err := e.Weight(d)
		if err != nil {
			return nil, err
		}
		switch {
		case w > bestWeight:
			best, bestWeight, ties = idx, w, 0
		case w == bestWeight:
			ties++
		}
	}

	split := edges[best]
	rooted := make([]Edge, 0, len(edges)+1)
	rooted = append(rooted, edges[:best]...)
	rooted = append(rooted, edges[best+1:]...)
	rooted = append(rooted, Edge{A: split.A, B: root}, Edge{A: split.B, B: root})

	return &Rooting{
		Root:   root,
		Split:  split,
		Length: bestWeight,
		Edges:  rooted,
		Ties:   ties,
	}, nil
}
