package hierarchy

// Member is one entrant of an organization chart. ParentID names the
// reporting-line parent and is empty for the root.
type Member struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	LinkedInURL string `json:"linkedin_url,omitempty" yaml:"linkedin_url"`
	Team        string `json:"team" yaml:"team"`
	ParentID    string `json:"parent_id,omitempty" yaml:"parent_id"`
}

// Node wraps a Member with its direct reports in input order.
type Node struct {
	Member   Member
	Children []*Node
}

// Bounds is the drawing rectangle a chart is laid out in.
type Bounds struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"margin_top"`
	MarginRight  float64 `json:"margin_right"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
}

// UsableWidth is the horizontal extent left after margins.
func (b Bounds) UsableWidth() float64 { return b.Width - b.MarginLeft - b.MarginRight }

// UsableHeight is the vertical extent left after margins.
func (b Bounds) UsableHeight() float64 { return b.Height - b.MarginTop - b.MarginBottom }

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is a cubic connector from a parent to one of its children.
type Curve struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	Start    Point  `json:"start"`
	Control1 Point  `json:"control1"`
	Control2 Point  `json:"control2"`
	End      Point  `json:"end"`
}

// PositionedNode is a Node annotated with draw coordinates.
type PositionedNode struct {
	Member   Member            `json:"member"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Depth    int               `json:"depth"`
	Children []*PositionedNode `json:"children"`
}

// Chart is the result of laying out a tree.
type Chart struct {
	Root     *PositionedNode `json:"root"`
	Curves   []Curve         `json:"curves"`
	Bounds   Bounds          `json:"bounds"`
	MaxDepth int             `json:"max_depth"`
	Size     int             `json:"size"`
}

// Nodes returns every positioned node in pre-order.
func (c *Chart) Nodes() []*PositionedNode {
	if c == nil || c.Root == nil {
		return nil
	}
	out := make([]*PositionedNode, 0, c.Size)
	stack := []*PositionedNode{c.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}
