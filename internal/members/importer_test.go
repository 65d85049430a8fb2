package members

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogtechminds/orgchart/internal/progress"
	"github.com/ogtechminds/orgchart/internal/walker"
)

func writeMemberFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func walkMembers(t *testing.T, dir string) []walker.FileInfo {
	t.Helper()
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: dir,
		Include: []string{"**/*.json", "**/*.yml", "**/*.yaml"},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return files
}

func TestImport(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	dir := writeMemberFiles(t, map[string]string{
		"a_tssm.json": `{"members":[
			{"id":"1","name":"Asha","role":"President","team":"TSSM"},
			{"id":"2","name":"Ravi","role":"Lead","team":"TSSM","parent_id":"1"}
		]}`,
		"b_jspm.yaml": "- id: \"9\"\n  name: Jay\n  role: President\n",
		"notes.txt":   "ignored",
	})

	var out bytes.Buffer
	obs := &recordingObserver{}
	res, err := Import(ctx, store, walkMembers(t, dir), ImportOptions{
		Teams:       testTeams,
		DefaultTeam: "JSPM",
		Actor:       "cli",
		Reporter:    &progress.LineReporter{Out: &out, Task: "Importing members"},
		Observers:   []Observer{obs},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Files != 2 || res.Count != 3 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Teams) != 2 || res.Teams[0] != "TSSM" || res.Teams[1] != "JSPM" {
		t.Errorf("teams = %v", res.Teams)
	}

	jay, err := store.Get(ctx, "9")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if jay.Team != "JSPM" {
		t.Errorf("default team not applied: %q", jay.Team)
	}

	if len(obs.changes) != 1 {
		t.Fatalf("expected 1 change notification, got %d", len(obs.changes))
	}
	c := obs.changes[0]
	if c.Action != ActionImported || c.Count != 3 || c.Actor != "cli" {
		t.Errorf("change = %+v", c)
	}
	if !strings.Contains(out.String(), "[2/2] b_jspm.yaml") {
		t.Errorf("progress output:\n%s", out.String())
	}
}

func TestImportRejectsInvalidRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	dir := writeMemberFiles(t, map[string]string{
		"a.json": `[{"id":"1","name":"Asha","team":"TSSM"}]`,
		"b.json": `[{"id":"2","name":"Ravi","team":"NOPE"}]`,
	})

	obs := &recordingObserver{}
	res, err := Import(ctx, store, walkMembers(t, dir), ImportOptions{Teams: testTeams, Observers: []Observer{obs}})
	if err == nil {
		t.Fatal("expected error for unknown team")
	}
	if !strings.Contains(err.Error(), "b.json: record 1") {
		t.Errorf("error should name the file and record: %v", err)
	}
	if res.Files != 1 {
		t.Errorf("files imported before failure = %d, want 1", res.Files)
	}
	if len(obs.changes) != 0 {
		t.Error("observers should not be notified on failure")
	}
	if _, err := store.Get(ctx, "2"); err == nil {
		t.Error("invalid record should not be stored")
	}
}

func TestImportTwiceKeepsPositions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	dir := writeMemberFiles(t, map[string]string{
		"m.json": `[{"id":"1","name":"Asha","team":"TSSM"},{"id":"2","name":"Ravi","team":"TSSM","parent_id":"1"}]`,
	})
	files := walkMembers(t, dir)

	for i := 0; i < 2; i++ {
		if _, err := Import(ctx, store, files, ImportOptions{Teams: testTeams}); err != nil {
			t.Fatalf("Import #%d: %v", i+1, err)
		}
	}
	ms, err := store.List(ctx, ListFilter{Team: "TSSM"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ms) != 2 || ms[0].ID != "1" || ms[1].ID != "2" {
		t.Errorf("unexpected members after re-import: %+v", ms)
	}
}
