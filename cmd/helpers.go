package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ogtechminds/orgchart/internal/config"
	"github.com/ogtechminds/orgchart/internal/db"
	"github.com/ogtechminds/orgchart/internal/members"
	"github.com/ogtechminds/orgchart/internal/orgchart"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `orgchart init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// dbPath is where the member database lives inside the data directory.
func dbPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "orgchart.db")
}

// openDatabase opens the member database named by the config.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(dbPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// chartService creates the chart service reading from store.
func chartService(cfg *config.Config, store orgchart.MemberLister) *orgchart.Service {
	return orgchart.NewService(store, orgchart.Options{
		Bounds:      cfg.Layout.Bounds(),
		NodeRadius:  cfg.Layout.NodeRadius,
		Teams:       cfg.Teams,
		DefaultTeam: cfg.DefaultTeam,
	})
}

// fileMembers serves members loaded from a file as if they came from the
// store, so charts can be rendered without a database.
type fileMembers []members.Member

func (f fileMembers) List(_ context.Context, filter members.ListFilter) ([]members.Member, error) {
	var out []members.Member
	for _, m := range f {
		if filter.Team == "" || m.Team == filter.Team {
			out = append(out, m)
		}
	}
	return out, nil
}
