// Package cli is the connectmap command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/logger"
	"github.com/MyelinBots/connectmap-go/internal/seed"
	"github.com/MyelinBots/connectmap-go/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg config.Config
	log *zap.Logger
	// loadConfig is swapped in tests
	loadConfig func() config.Config
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	a := &app{loadConfig: config.LoadConfigOrPanic}
	return a.root()
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "connectmap",
		Short:         "ConnectMap backend: places, taste profiles and friends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = a.loadConfig()
			log, err := logger.New(a.cfg.AppConfig.LogLevel, a.cfg.AppConfig.APPName)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.AddCommand(a.serveCmd(), a.migrateCmd(), a.seedCmd(), a.computeCmd(), a.versionCmd())
	return root
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return server.Run(ctx, a.cfg, a.log)
		},
	}
}

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return db.MigrateUp(db.URL(a.cfg.DBConfig), a.log)
		},
	}
	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return db.MigrateDown(db.URL(a.cfg.DBConfig), steps, a.log)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(up, down)
	return cmd
}

// withDatabase opens the database for one-shot commands.
func (a *app) withDatabase(fn func(*db.DB) error) error {
	database, err := db.NewDatabase(a.cfg.DBConfig, a.log)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load default categories and sample places",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(database *db.DB) error {
				res, err := seed.Run(cmd.Context(), database, a.log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d places\n", res.Categories, res.Places)
				return nil
			})
		},
	}
}

func (a *app) computeCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute taste profiles for onboarding answers that never got one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return a.withDatabase(func(database *db.DB) error {
				svc, err := server.Build(ctx, a.cfg, database, nil, a.log)
				if err != nil {
					return err
				}
				n, err := svc.Onboarding.ProcessPending(ctx, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "computed %d taste profiles\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of pending responses to process")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.cfg.AppConfig.APPName, a.cfg.AppConfig.Version)
		},
	}
}
