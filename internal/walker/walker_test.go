package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalkIncludeExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"tssm.json":             "[]",
		"jspm/board.yaml":       "[]",
		"jspm/old/board.yaml":   "[]",
		"notes.txt":             "x",
		".git/config.json":      "{}",
		"node_modules/x/a.json": "{}",
	})

	files, err := Walk(WalkerConfig{
		RootDir: root,
		Include: []string{"**/*.json", "**/*.yaml"},
		Exclude: []string{"jspm/old/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := relPaths(files)
	want := []string{"jspm/board.yaml", "tssm.json"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestWalkSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"members.yml": "[]"})
	files, err := Walk(WalkerConfig{RootDir: filepath.Join(root, "members.yml")})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "members.yml" {
		t.Errorf("got %+v", files)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(WalkerConfig{RootDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalkSkipsLargeFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"big.json": "0123456789", "small.json": "[]"})
	files, err := Walk(WalkerConfig{RootDir: root, MaxFileSize: 5})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "small.json" {
		t.Errorf("got %v", got)
	}
}

func TestMatchesIncludeEmptyMeansAll(t *testing.T) {
	if !MatchesInclude("any/file.json", nil) {
		t.Error("empty include should match everything")
	}
	if MatchesExclude("any/file.json", nil) {
		t.Error("empty exclude should match nothing")
	}
	if !MatchesInclude("deep/nested/team.yml", []string{"*.yml"}) {
		t.Error("basename pattern should match nested file")
	}
}
