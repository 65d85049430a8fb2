package diagrams

import (
	"fmt"
	"strings"

	"github.com/ogtechminds/orgchart/internal/hierarchy"
)

// Mermaid renders a member tree as a mermaid graph TD diagram. Node IDs
// are assigned in pre-order so member IDs never need escaping.
func Mermaid(root *hierarchy.Node) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	if root == nil {
		return b.String()
	}

	next := 0
	var edges []string
	var walk func(n *hierarchy.Node) string
	walk = func(n *hierarchy.Node) string {
		id := fmt.Sprintf("n%d", next)
		next++
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, nodeLabel(n.Member)))
		for _, c := range n.Children {
			childID := walk(c)
			edges = append(edges, fmt.Sprintf("    %s --> %s\n", id, childID))
		}
		return id
	}
	walk(root)

	for _, e := range edges {
		b.WriteString(e)
	}
	return b.String()
}

func nodeLabel(m hierarchy.Member) string {
	name := m.Name
	if name == "" {
		name = m.ID
	}
	if m.Role == "" {
		return escapeMermaid(name)
	}
	return escapeMermaid(name) + "<br/>" + escapeMermaid(m.Role)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
