package neighborjoin

import "fmt"

// Assemble orients an undirected edge list away from root and returns the
// rooted tree. The children of a node are the endpoints of its incident
// edges, excluding the edge to its parent, in edge-list order.
//
// Every node must end up with zero or two children. Assemble fails with
// ErrMalformedTree on any other branching degree, on a node reached twice
// (a cycle), and on edges not reachable from root.
func Assemble(root int, edges []Edge) (*Tree, error) {
	if root < 0 {
		return nil, fmt.Errorf("%w: negative root id %d", ErrMalformedTree, root)
	}
	maxID := root
	for _, e := range edges {
		if e.A < 0 || e.B < 0 {
			return nil, fmt.Errorf("%w: negative id in edge (%d, %d)", ErrMalformedTree, e.A, e.B)
		}
		maxID = max(maxID, e.A, e.B)
	}

	// incident[id] lists the indices of edges touching id, in list order.
	incident := make([][]int, maxID+1)
	for idx, e := range edges {
		incident[e.A] = append(incident[e.A], idx)
		if e.B != e.A {
			incident[e.B] = append(incident[e.B], idx)
		}
	}

	consumed := make([]bool, len(edges))
	seen := make([]bool, maxID+1)
	t := newTree(root, maxID+1)

	seen[root] = true
	stack := []int{root}
	children := make([]int, 0, 3)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children = children[:0]
		for _, idx := range incident[node] {
			if consumed[idx] {
				continue
			}
			consumed[idx] = true
			e := edges[idx]
			child := e.B
			if e.B == node {
				child = e.A
			}
			children = append(children, child)
		}

		switch len(children) {
		case 0:
			t.setLeaf(node)
		case 2:
			for _, c := range children {
				if seen[c] {
					return nil, fmt.Errorf("%w: node %d reached twice (cycle)", ErrMalformedTree, c)
				}
				seen[c] = true
			}
			t.setInternal(node, children[0], children[1])
			stack = append(stack, children[1], children[0])
		default:
			return nil, fmt.Errorf("%w: node %d has %d children, want 0 or 2", ErrMalformedTree, node, len(children))
		}
	}

	for idx, ok := range consumed {
		if !ok {
			e := edges[idx]
			return nil, fmt.Errorf("%w: edge (%d, %d) is not reachable from root %d", ErrMalformedTree, e.A, e.B, root)
		}
	}

	return t, nil
}

// ValidateEdges checks that an unrooted edge list forms a single tree: no
// negative ids, no cycles, and exactly one connected component.
func ValidateEdges(edges []Edge) error {
	if len(edges) == 0 {
		return fmt.Errorf("%w: empty edge list", ErrMalformedTree)
	}
	maxID := 0
	for _, e := range edges {
		if e.A < 0 || e.B < 0 {
			return fmt.Errorf("%w: negative id in edge (%d, %d)", ErrMalformedTree, e.A, e.B)
		}
		maxID = max(maxID, e.A, e.B)
	}

	present := make([]bool, maxID+1)
	vertices := 0
	uf := newUnionFind(maxID + 1)
	for _, e := range edges {
		for _, id := range [2]int{e.A, e.B} {
			if !present[id] {
				present[id] = true
				vertices++
			}
		}
		if !uf.union(e.A, e.B) {
			return fmt.Errorf("%w: edge (%d, %d) closes a cycle", ErrMalformedTree, e.A, e.B)
		}
	}

	// An acyclic graph with |E| = |V|-1 is connected.
	if len(edges) != vertices-1 {
		return fmt.Errorf("%w: %d edges over %d nodes form %d components",
			ErrMalformedTree, len(edges), vertices, vertices-len(edges))
	}
	return nil
}
