package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ogtechminds/orgchart/internal/audit"
	"github.com/ogtechminds/orgchart/internal/config"
	"github.com/ogtechminds/orgchart/internal/members"
	"github.com/ogtechminds/orgchart/internal/orgchart"
	"github.com/ogtechminds/orgchart/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the org chart HTTP server",
	Long:  `Starts the orgchart server with the member REST API, chart endpoints (JSON, SVG, Mermaid), the live chart websocket and the audit trail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, database)

		registerAllRoutes(srv, cfg)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "orgchart server %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath(cfg))
		fmt.Fprintf(os.Stderr, "  Teams: %v (default %s)\n", cfg.Teams, cfg.DefaultTeam)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires up the feature routes. Member changes fan out
// to the audit trail and the live chart feed.
func registerAllRoutes(srv *server.Server, cfg *config.Config) {
	r := srv.Router()
	database := srv.Database()

	// Audit Trail
	auditStore := audit.NewStore(database)
	audit.RegisterRoutes(r, auditStore)

	// Charts and live feed
	memberStore := members.NewStore(database)
	charts := chartService(cfg, memberStore)
	hub := orgchart.NewHub(charts)
	orgchart.RegisterRoutes(r, charts, hub)

	// Members
	members.RegisterRoutes(r, members.NewHandler(memberStore, cfg.Teams, audit.NewRecorder(auditStore), hub))
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
