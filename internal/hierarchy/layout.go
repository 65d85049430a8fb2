package hierarchy

// Layout positions the tree rooted at root inside bounds. It returns nil
// for a nil root.
//
// Nodes at the same depth are spread evenly across the usable width in
// pre-order, so siblings never cross. Rows are spaced evenly over the
// usable height; a single-row chart sits on the top margin. Each edge
// gets an S-shaped cubic curve whose control points share the vertical
// midpoint of the edge.
func Layout(root *Node, bounds Bounds) *Chart {
	if root == nil {
		return nil
	}

	var levels [][]*PositionedNode
	seen := make(map[*Node]bool)
	size := 0

	var place func(n *Node, depth int) *PositionedNode
	place = func(n *Node, depth int) *PositionedNode {
		seen[n] = true
		size++
		p := &PositionedNode{Member: n.Member, Depth: depth}
		if depth == len(levels) {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], p)
		for _, c := range n.Children {
			if seen[c] {
				continue
			}
			p.Children = append(p.Children, place(c, depth+1))
		}
		return p
	}
	top := place(root, 0)

	maxDepth := len(levels) - 1
	rowHeight := 0.0
	if maxDepth > 0 {
		rowHeight = bounds.UsableHeight() / float64(maxDepth)
	}
	width := bounds.UsableWidth()
	for depth, level := range levels {
		step := width / float64(len(level))
		for i, p := range level {
			p.X = bounds.MarginLeft + (float64(i)+0.5)*step
			p.Y = bounds.MarginTop + float64(depth)*rowHeight
		}
	}

	chart := &Chart{
		Root:     top,
		Curves:   []Curve{},
		Bounds:   bounds,
		MaxDepth: maxDepth,
		Size:     size,
	}
	for _, p := range chart.Nodes() {
		for _, c := range p.Children {
			chart.Curves = append(chart.Curves, connect(p, c))
		}
	}
	return chart
}

func connect(parent, child *PositionedNode) Curve {
	midY := (parent.Y + child.Y) / 2
	return Curve{
		ParentID: parent.Member.ID,
		ChildID:  child.Member.ID,
		Start:    Point{X: parent.X, Y: parent.Y},
		Control1: Point{X: parent.X, Y: midY},
		Control2: Point{X: child.X, Y: midY},
		End:      Point{X: child.X, Y: child.Y},
	}
}
