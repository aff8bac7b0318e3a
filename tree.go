package neighborjoin

// Node is one vertex of a rooted binary tree. A node is either a leaf or an
// internal node with exactly two children; no other shape is representable.
type Node struct {
	ID          int
	Left, Right int
	Leaf        bool
}

// Tree is a rooted binary tree stored as an arena indexed by node id.
// It is built by Assemble and is read-only afterwards.
type Tree struct {
	root    int
	nodes   []Node
	present []bool
	size    int
}

func newTree(root, capacity int) *Tree {
	return &Tree{
		root:    root,
		nodes:   make([]Node, capacity),
		present: make([]bool, capacity),
	}
}

func (t *Tree) setLeaf(id int) {
	t.nodes[id] = Node{ID: id, Left: -1, Right: -1, Leaf: true}
	t.present[id] = true
	t.size++
}

func (t *Tree) setInternal(id, left, right int) {
	t.nodes[id] = Node{ID: id, Left: left, Right: right}
	t.present[id] = true
	t.size++
}

// Root returns the root id.
func (t *Tree) Root() int { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return t.size }

// Node returns the node with the given id and whether it is in the tree.
func (t *Tree) Node(id int) (Node, bool) {
	if id < 0 || id >= len(t.nodes) || !t.present[id] {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Children returns the children of id in stored order, or nil for leaves
// and ids not in the tree.
func (t *Tree) Children(id int) []int {
	n, ok := t.Node(id)
	if !ok || n.Leaf {
		return nil
	}
	return []int{n.Left, n.Right}
}

// Leaves returns the leaf ids in ascending order.
func (t *Tree) Leaves() []int {
	var leaves []int
	for id, ok := range t.present {
		if ok && t.nodes[id].Leaf {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// EdgeCount returns the number of parent-child edges, which is Len()-1 for
// any tree Assemble returns.
func (t *Tree) EdgeCount() int {
	count := 0
	for id, ok := range t.present {
		if ok && !t.nodes[id].Leaf {
			count += 2
		}
	}
	return count
}

// Edges returns the directed parent-child edges (A is the parent) in
// breadth-first order from the root.
func (t *Tree) Edges() []Edge {
	edges := make([]Edge, 0, t.EdgeCount())
	for _, id := range t.BFS() {
		n := t.nodes[id]
		if !n.Leaf {
			edges = append(edges, Edge{A: id, B: n.Left}, Edge{A: id, B: n.Right})
		}
	}
	return edges
}
