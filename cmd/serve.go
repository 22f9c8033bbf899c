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

	"github.com/web-inv/sitebuilder/internal/api"
	"github.com/web-inv/sitebuilder/internal/auth"
	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/config"
	"github.com/web-inv/sitebuilder/internal/dashboard"
	"github.com/web-inv/sitebuilder/internal/db"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/notifications"
	"github.com/web-inv/sitebuilder/internal/server"
)

// sweepInterval is how often idle builder sessions are checked.
const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the template marketplace and builder web server",
	Long:  `Starts the HTTP server with the template API, the builder API and websocket, sign-in endpoints, and the browser UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		open, _ := cmd.Flags().GetBool("open")

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})
		a := registerAllRoutes(srv, database, cfg)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go a.Run(ctx, sweepInterval)
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		url := fmt.Sprintf("http://localhost:%d", cfg.Port)
		fmt.Fprintf(os.Stderr, "webinv server %s starting on %s\n", Version, url)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Sign-in required: %v\n", cfg.RequireSignIn)
		if cfg.Google.Enabled() {
			fmt.Fprintln(os.Stderr, "  Google sign-in: enabled")
		}

		if open {
			go func() {
				time.Sleep(300 * time.Millisecond)
				openBrowser(url)
			}()
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires the feature packages onto the server router and
// returns the builder API so the caller can run its session sweeper.
func registerAllRoutes(srv *server.Server, database *db.DB, cfg *config.Config) *api.API {
	r := srv.Router()
	cat := catalog.Builtin()

	// Export log
	exports := exportlog.NewStore(database)
	exportlog.RegisterRoutes(r, exports)

	// Accounts, reset delivery and the optional Google federator
	var accountOpts []auth.AccountsOption
	if cfg.Notifications.WebhookURL != "" {
		dispatcher := notifications.NewDispatcher(cfg.Notifications.WebhookURL, cfg.Notifications.PublicURL)
		accountOpts = append(accountOpts, auth.WithResetNotifier(dispatcher.ResetNotifier()))
	}
	accounts := auth.NewAccounts(database, accountOpts...)
	var federator auth.Federator
	if cfg.Google.Enabled() {
		federator = auth.NewGoogleFederator(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}

	// Builder and template API
	sessions := builder.NewRegistry(cfg.SessionTTL)
	a := api.New(api.Options{
		Catalog:       cat,
		Sessions:      sessions,
		Exports:       exports,
		Accounts:      accounts,
		Federator:     federator,
		OptimizeDelay: cfg.OptimizeDelay,
		RequireSignIn: cfg.RequireSignIn,
		Site: api.Site{
			Title:       cfg.SiteTitle,
			Description: cfg.SiteDescription,
			Palette:     cfg.Palette,
		},
	})
	a.RegisterRoutes(r)

	// Dashboard (browser UI)
	dash := dashboard.New(cat, sessions, exports)
	dash.RegisterRoutes(r)

	return a
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser after starting")
	rootCmd.AddCommand(serveCmd)
}
