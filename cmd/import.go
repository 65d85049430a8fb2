package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogtechminds/orgchart/internal/audit"
	"github.com/ogtechminds/orgchart/internal/members"
	"github.com/ogtechminds/orgchart/internal/progress"
	"github.com/ogtechminds/orgchart/internal/walker"
)

var (
	importTeam  string
	importActor string
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Import members from JSON or YAML files",
	Long: `Reads member records from .json files ({"members":[...]} or a bare array)
and .yml/.yaml files. Directories are walked and filtered with the import
include/exclude globs from the config. Records are upserted by id in file
order, so re-importing a file updates members in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if importTeam != "" && !cfg.HasTeam(importTeam) {
			return fmt.Errorf("unknown team %q (configured: %v)", importTeam, cfg.Teams)
		}

		var files []walker.FileInfo
		for _, arg := range args {
			found, err := walker.Walk(walker.WalkerConfig{
				RootDir: arg,
				Include: cfg.Import.Include,
				Exclude: cfg.Import.Exclude,
			})
			if err != nil {
				return fmt.Errorf("scanning %s: %w", arg, err)
			}
			files = append(files, found...)
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No member files found.")
			return nil
		}
		if verbose {
			for _, f := range files {
				fmt.Fprintf(os.Stderr, "  %s (%d bytes)\n", f.Path, f.Size)
			}
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		res, err := members.Import(cmd.Context(), members.NewStore(database), files, members.ImportOptions{
			Teams:       cfg.Teams,
			DefaultTeam: importTeam,
			Actor:       importActor,
			Reporter:    progress.NewReporter("Importing members"),
			Observers:   []members.Observer{audit.NewRecorder(audit.NewStore(database))},
		})
		if err != nil {
			return fmt.Errorf("importing members: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Imported %d member(s) from %d file(s) into %v\n", res.Count, res.Files, res.Teams)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importTeam, "team", "", "Team tag for records that do not set one")
	importCmd.Flags().StringVar(&importActor, "actor", "cli", "Actor recorded in the audit trail")
	rootCmd.AddCommand(importCmd)
}
