package hierarchy

// Build turns a flat, single-team list of members into one tree and
// returns its root, or nil when records is empty.
//
// The root is the first record whose ParentID is empty, unknown or its
// own ID; failing that, the first record. Records with an unknown parent,
// and records whose parent link would close a cycle, hang directly under
// the root. Every record appears in the tree exactly once and children
// keep their input order.
func Build(records []Member) *Node {
	if len(records) == 0 {
		return nil
	}

	nodes := make([]*Node, len(records))
	index := make(map[string]int, len(records))
	for i, r := range records {
		nodes[i] = &Node{Member: r}
		if _, seen := index[r.ID]; !seen {
			index[r.ID] = i
		}
	}

	// parent holds the resolved parent index per record, -1 when none.
	parent := make([]int, len(records))
	root := -1
	for i, r := range records {
		parent[i] = -1
		if r.ParentID == "" {
			continue
		}
		if p, ok := index[r.ParentID]; ok && p != i {
			parent[i] = p
		}
	}
	for i := range records {
		if parent[i] == -1 {
			root = i
			break
		}
	}
	if root == -1 {
		root = 0
	}
	parent[root] = -1

	for i := range records {
		if i == root {
			continue
		}
		if parent[i] == -1 || closesCycle(parent, i) {
			parent[i] = root
		}
	}

	for i := range records {
		if i == root {
			continue
		}
		p := nodes[parent[i]]
		p.Children = append(p.Children, nodes[i])
	}
	return nodes[root]
}

// closesCycle reports whether walking up from i's parent leads back to i.
// The walk is bounded by the record count; a loop that does not pass
// through i is left for its own members to break.
func closesCycle(parent []int, i int) bool {
	cur := parent[i]
	for steps := 0; cur != -1 && steps < len(parent); steps++ {
		if cur == i {
			return true
		}
		cur = parent[cur]
	}
	return false
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	return total
}

// PathTo returns the members from the root down to the member with the
// given id, or nil if the id is not in the tree.
func PathTo(root *Node, id string) []Member {
	if root == nil {
		return nil
	}
	if root.Member.ID == id {
		return []Member{root.Member}
	}
	for _, c := range root.Children {
		if rest := PathTo(c, id); rest != nil {
			return append([]Member{root.Member}, rest...)
		}
	}
	return nil
}
