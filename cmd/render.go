package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogtechminds/orgchart/internal/diagrams"
	"github.com/ogtechminds/orgchart/internal/members"
	"github.com/ogtechminds/orgchart/internal/orgchart"
)

var (
	renderTeam   string
	renderFormat string
	renderOut    string
	renderFrom   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a team's org chart to a file",
	Long: `Builds and lays out one team's chart and writes it as JSON, SVG or Mermaid.
Members come from the database, or from a member file with --from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var lister orgchart.MemberLister
		if renderFrom != "" {
			ms, err := members.LoadFile(renderFrom)
			if err != nil {
				return err
			}
			lister = fileMembers(ms)
		} else {
			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			lister = members.NewStore(database)
		}

		charts := chartService(cfg, lister)
		team, err := charts.ResolveTeam(renderTeam)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var out []byte
		switch renderFormat {
		case "json":
			chart, err := charts.Chart(ctx, team)
			if err != nil {
				return err
			}
			out, err = json.MarshalIndent(orgchart.ChartResponse{Team: team, Empty: chart == nil, Chart: chart}, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding chart: %w", err)
			}
			out = append(out, '\n')
		case "svg":
			chart, err := charts.Chart(ctx, team)
			if err != nil {
				return err
			}
			if chart == nil {
				out = []byte(diagrams.EmptySVG(cfg.Layout.Bounds(), "No "+team+" members yet"))
			} else {
				out = []byte(diagrams.SVG(chart, diagrams.SVGOptions{NodeRadius: cfg.Layout.NodeRadius, Title: team}))
			}
		case "mermaid":
			root, err := charts.Tree(ctx, team)
			if err != nil {
				return err
			}
			out = []byte(diagrams.Mermaid(root))
		default:
			return fmt.Errorf("unknown format %q (want json, svg or mermaid)", renderFormat)
		}

		if renderOut == "" || renderOut == "-" {
			_, err := os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(renderOut, out, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOut, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s chart for %s to %s\n", renderFormat, team, renderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderTeam, "team", "", "Team tag (defaults to default_team)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "svg", "Output format: json, svg or mermaid")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().StringVar(&renderFrom, "from", "", "Read members from this JSON/YAML file instead of the database")
	rootCmd.AddCommand(renderCmd)
}
