package neighborjoin

// BFS returns the node ids in breadth-first order from the root, visiting
// children in stored order. The root is always first and every node appears
// exactly once.
func (t *Tree) BFS() []int {
	order := make([]int, 0, t.size)
	visited := make([]bool, len(t.nodes))
	queue := []int{t.root}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if visited[node] {
			continue
		}
		visited[node] = true
		order = append(order, node)

		if n := t.nodes[node]; !n.Leaf {
			queue = append(queue, n.Left, n.Right)
		}
	}

	return order
}
