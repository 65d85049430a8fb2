package hierarchy

import (
	"fmt"
	"testing"
)

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Member.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// collect walks the tree and counts how often each id shows up.
func collect(n *Node, seen map[string]int) {
	seen[n.Member.ID]++
	for _, c := range n.Children {
		collect(c, seen)
	}
}

func TestBuildEmpty(t *testing.T) {
	if root := Build(nil); root != nil {
		t.Fatalf("Build(nil) = %+v, want nil", root)
	}
	if root := Build([]Member{}); root != nil {
		t.Fatalf("Build([]) = %+v, want nil", root)
	}
}

func TestBuildSimpleTree(t *testing.T) {
	root := Build([]Member{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob", ParentID: "1"},
		{ID: "3", Name: "Carol", ParentID: "1"},
	})
	if root == nil || root.Member.ID != "1" {
		t.Fatalf("root = %+v, want 1", root)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"2", "3"}) {
		t.Errorf("children = %v, want [2 3]", got)
	}
}

func TestBuildTwoCycle(t *testing.T) {
	root := Build([]Member{
		{ID: "1", ParentID: "2"},
		{ID: "2", ParentID: "1"},
	})
	if root == nil || root.Member.ID != "1" {
		t.Fatalf("root = %+v, want 1", root)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"2"}) {
		t.Errorf("children = %v, want [2]", got)
	}
	if len(root.Children[0].Children) != 0 {
		t.Errorf("child 2 should be a leaf, got %v", ids(root.Children[0].Children))
	}
}

func TestBuildCycleAwayFromRoot(t *testing.T) {
	root := Build([]Member{
		{ID: "r"},
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	})
	if root.Member.ID != "r" {
		t.Fatalf("root = %q, want r", root.Member.ID)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"a"}) {
		t.Fatalf("root children = %v, want [a]", got)
	}
	if got := ids(root.Children[0].Children); !equalStrings(got, []string{"b"}) {
		t.Errorf("a children = %v, want [b]", got)
	}
}

func TestBuildEntryPointIntoLaterCycle(t *testing.T) {
	root := Build([]Member{
		{ID: "r"},
		{ID: "i", ParentID: "x"},
		{ID: "x", ParentID: "y"},
		{ID: "y", ParentID: "x"},
	})
	seen := map[string]int{}
	collect(root, seen)
	if len(seen) != 4 {
		t.Fatalf("tree has %d distinct nodes, want 4: %v", len(seen), seen)
	}
	if Count(root) != 4 {
		t.Errorf("Count = %d, want 4", Count(root))
	}
	path := PathTo(root, "i")
	if len(path) < 2 || path[len(path)-2].ID != "x" {
		t.Errorf("i should keep x as its parent, path = %+v", path)
	}
}

func TestBuildSelfParent(t *testing.T) {
	root := Build([]Member{
		{ID: "a", ParentID: "a"},
		{ID: "b", ParentID: "a"},
	})
	if root.Member.ID != "a" {
		t.Fatalf("root = %q, want a", root.Member.ID)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"b"}) {
		t.Errorf("children = %v, want [b]", got)
	}
}

func TestBuildSelfParentNotRoot(t *testing.T) {
	root := Build([]Member{
		{ID: "r"},
		{ID: "s", ParentID: "s"},
	})
	if got := ids(root.Children); !equalStrings(got, []string{"s"}) {
		t.Errorf("children = %v, want [s]", got)
	}
}

func TestBuildUnresolvedParentsHangUnderRoot(t *testing.T) {
	root := Build([]Member{
		{ID: "a", ParentID: "ghost"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "missing"},
		{ID: "d"},
	})
	if root.Member.ID != "a" {
		t.Fatalf("root = %q, want a (first with unresolved parent)", root.Member.ID)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"b", "c", "d"}) {
		t.Errorf("children = %v, want [b c d]", got)
	}
}

func TestBuildRootNotFirstInInput(t *testing.T) {
	root := Build([]Member{
		{ID: "b", ParentID: "a"},
		{ID: "a"},
		{ID: "c", ParentID: "b"},
	})
	if root.Member.ID != "a" {
		t.Fatalf("root = %q, want a", root.Member.ID)
	}
	if got := ids(root.Children); !equalStrings(got, []string{"b"}) {
		t.Fatalf("children = %v, want [b]", got)
	}
	if got := ids(root.Children[0].Children); !equalStrings(got, []string{"c"}) {
		t.Errorf("b children = %v, want [c]", got)
	}
}

func TestBuildDuplicateIDsKeepEveryRecord(t *testing.T) {
	root := Build([]Member{
		{ID: "1"},
		{ID: "2", ParentID: "1"},
		{ID: "2", ParentID: "1", Name: "dup"},
		{ID: "3", ParentID: "2"},
	})
	if Count(root) != 4 {
		t.Fatalf("Count = %d, want 4", Count(root))
	}
	if got := ids(root.Children[0].Children); !equalStrings(got, []string{"3"}) {
		t.Errorf("first 2 children = %v, want [3]", got)
	}
}

func TestBuildCompletenessAndOrder(t *testing.T) {
	// A mix of chains, fan-outs, dangling parents and loops.
	var records []Member
	for i := 0; i < 40; i++ {
		m := Member{ID: fmt.Sprintf("m%d", i)}
		switch {
		case i == 0:
		case i%7 == 0:
			m.ParentID = fmt.Sprintf("m%d", i+3)
		case i%5 == 0:
			m.ParentID = "nobody"
		default:
			m.ParentID = fmt.Sprintf("m%d", i/3)
		}
		records = append(records, m)
	}

	root := Build(records)
	seen := map[string]int{}
	collect(root, seen)
	if len(seen) != len(records) {
		t.Fatalf("tree has %d ids, want %d", len(seen), len(records))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears %d times", id, n)
		}
	}

	pos := make(map[string]int, len(records))
	for i, r := range records {
		pos[r.ID] = i
	}
	var check func(n *Node)
	check = func(n *Node) {
		for i := 1; i < len(n.Children); i++ {
			if pos[n.Children[i-1].Member.ID] > pos[n.Children[i].Member.ID] {
				t.Errorf("children of %s out of input order: %v", n.Member.ID, ids(n.Children))
			}
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(root)
}

func TestPathTo(t *testing.T) {
	root := Build([]Member{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob", ParentID: "1"},
		{ID: "3", Name: "Carol", ParentID: "2"},
	})
	path := PathTo(root, "3")
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}
	if path[0].Name != "Alice" || path[2].Name != "Carol" {
		t.Errorf("path = %+v", path)
	}
	if PathTo(root, "404") != nil {
		t.Error("expected nil path for unknown id")
	}
}
