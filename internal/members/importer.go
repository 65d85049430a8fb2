package members

import (
	"context"
	"fmt"

	"github.com/ogtechminds/orgchart/internal/progress"
	"github.com/ogtechminds/orgchart/internal/walker"
)

// ImportOptions controls an import run.
type ImportOptions struct {
	Teams       []string // configured team tags; records must use one
	DefaultTeam string   // applied to records without a team
	Actor       string
	Reporter    progress.Reporter
	Observers   []Observer
}

// ImportResult summarises an import run.
type ImportResult struct {
	Files int
	Count int
	Teams []string // teams touched, in first-seen order
}

// Import loads each file and upserts its members in file order. A file
// with an invalid record is rejected as a whole; files already imported
// stay imported. Observers are notified once at the end.
func Import(ctx context.Context, store *Store, files []walker.FileInfo, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	seen := make(map[string]bool)

	if opts.Reporter != nil {
		opts.Reporter.Start(len(files))
	}
	for i, f := range files {
		ms, err := LoadFile(f.Path)
		if err != nil {
			return res, err
		}
		for j := range ms {
			if ms[j].Team == "" {
				ms[j].Team = opts.DefaultTeam
			}
			if err := Validate(ms[j], opts.Teams); err != nil {
				return res, fmt.Errorf("%s: record %d: %w", f.RelPath, j+1, err)
			}
		}
		if err := store.Upsert(ctx, ms); err != nil {
			return res, fmt.Errorf("%s: %w", f.RelPath, err)
		}

		res.Files++
		res.Count += len(ms)
		for _, m := range ms {
			if !seen[m.Team] {
				seen[m.Team] = true
				res.Teams = append(res.Teams, m.Team)
			}
		}
		if opts.Reporter != nil {
			opts.Reporter.Update(i+1, f.RelPath)
		}
	}
	if opts.Reporter != nil {
		opts.Reporter.Finish()
	}

	if res.Count > 0 {
		c := Change{Action: ActionImported, Actor: opts.Actor, Teams: res.Teams, Count: res.Count}
		for _, o := range opts.Observers {
			o.MemberChanged(ctx, c)
		}
	}
	return res, nil
}
