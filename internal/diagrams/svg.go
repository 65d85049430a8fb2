package diagrams

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/ogtechminds/orgchart/internal/hierarchy"
)

// SVGOptions controls how a chart is drawn.
type SVGOptions struct {
	NodeRadius float64
	Title      string
}

// SVG draws a laid-out chart: one cubic path per curve, then a circle
// with name and role per node. Nodes with an http(s) LinkedIn URL are
// wrapped in a link. A nil chart yields the empty-state drawing.
func SVG(chart *hierarchy.Chart, opts SVGOptions) string {
	if chart == nil {
		return EmptySVG(hierarchy.Bounds{Width: 400, Height: 200}, "No members yet")
	}
	r := opts.NodeRadius
	if r <= 0 {
		r = 18
	}

	var b strings.Builder
	openSVG(&b, chart.Bounds, opts.Title)

	b.WriteString(`<g class="links" fill="none" stroke="#9aa5b1" stroke-width="1.5">` + "\n")
	for _, c := range chart.Curves {
		fmt.Fprintf(&b, `<path data-parent="%s" data-child="%s" d="M%s,%s C%s,%s %s,%s %s,%s"/>`+"\n",
			attr(c.ParentID), attr(c.ChildID),
			num(c.Start.X), num(c.Start.Y),
			num(c.Control1.X), num(c.Control1.Y),
			num(c.Control2.X), num(c.Control2.Y),
			num(c.End.X), num(c.End.Y))
	}
	b.WriteString("</g>\n")

	b.WriteString(`<g class="nodes" font-family="sans-serif" text-anchor="middle">` + "\n")
	for _, n := range chart.Nodes() {
		link := profileURL(n.Member.LinkedInURL)
		if link != "" {
			fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer">`, attr(link))
		}
		fmt.Fprintf(&b, `<g class="node" data-id="%s" transform="translate(%s,%s)">`,
			attr(n.Member.ID), num(n.X), num(n.Y))
		fmt.Fprintf(&b, `<circle r="%s" fill="#2f80ed" stroke="#1b4f91" stroke-width="2"/>`, num(r))
		name := n.Member.Name
		if name == "" {
			name = n.Member.ID
		}
		fmt.Fprintf(&b, `<text y="%s" font-size="13" font-weight="600">%s</text>`, num(r+16), html.EscapeString(name))
		if n.Member.Role != "" {
			fmt.Fprintf(&b, `<text y="%s" font-size="11" fill="#52606d">%s</text>`, num(r+31), html.EscapeString(n.Member.Role))
		}
		b.WriteString("</g>")
		if link != "" {
			b.WriteString("</a>")
		}
		b.WriteString("\n")
	}
	b.WriteString("</g>\n</svg>\n")
	return b.String()
}

// EmptySVG draws a centered message in place of a chart.
func EmptySVG(bounds hierarchy.Bounds, message string) string {
	var b strings.Builder
	openSVG(&b, bounds, message)
	fmt.Fprintf(&b, `<text x="%s" y="%s" font-family="sans-serif" font-size="16" text-anchor="middle" fill="#7b8794">%s</text>`+"\n",
		num(bounds.Width/2), num(bounds.Height/2), html.EscapeString(message))
	b.WriteString("</svg>\n")
	return b.String()
}

func openSVG(b *strings.Builder, bounds hierarchy.Bounds, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img">`+"\n",
		num(bounds.Width), num(bounds.Height), num(bounds.Width), num(bounds.Height))
	if title != "" {
		fmt.Fprintf(b, "<title>%s</title>\n", html.EscapeString(title))
	}
}

// profileURL returns u if it is an absolute http(s) URL, else "".
func profileURL(u string) string {
	lower := strings.ToLower(strings.TrimSpace(u))
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return strings.TrimSpace(u)
	}
	return ""
}

func attr(s string) string { return html.EscapeString(s) }

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
