package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/internal/logging"
	"github.com/mickamy/pressroom/internal/store"
	"github.com/mickamy/pressroom/orm"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type app struct {
	build BuildInfo

	configPath string
	dialect    string
	dsn        string
	verbosity  int

	cfg config.Config
}

// NewRootCommand assembles the pressroom command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:           "pressroom",
		Short:         "Pressroom - magazine, author and article records",
		Long:          `Pressroom stores authors, magazines and the articles that link them, and reports on who writes for whom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.dialect, "dialect", "", "Database dialect: sqlite, mysql or postgres (or set "+config.EnvDialect+")")
	root.PersistentFlags().StringVar(&a.dsn, "dsn", "", "Database DSN or SQLite path (or set "+config.EnvDSN+")")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	root.AddCommand(
		a.migrateCommand(),
		a.authorCommand(),
		a.magazineCommand(),
		a.articleCommand(),
		a.versionCommand(),
	)
	return root
}

// Execute runs the command tree against args and returns the process exit
// code.
func Execute(ctx context.Context, build BuildInfo, args []string) int {
	root := NewRootCommand(build)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		return 1
	}
	return 0
}

// configure layers flags over the config file and environment, then sets up
// logging.
func (a *app) configure() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dialect != "" {
		cfg.Database.Dialect = a.dialect
	}
	if a.dsn != "" {
		cfg.Database.DSN = a.dsn
	}
	switch {
	case a.verbosity >= 2:
		cfg.Log.Level = "trace"
	case a.verbosity == 1:
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Apply(cfg.Log)
	a.cfg = cfg
	return nil
}

// withStore opens the pool, brings the schema up to date and hands the DB to
// fn. The pool is closed when fn returns.
func (a *app) withStore(ctx context.Context, fn func(db *orm.DB) error) error {
	db, err := store.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return fn(db)
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Skip config loading so version works without a usable config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pressroom %s (commit: %s, built: %s)\n", a.build.Version, a.build.Commit, a.build.Date)
		},
	}
}

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withStore(ctx, func(db *orm.DB) error {
				version, err := store.SchemaVersion(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
				return nil
			})
		},
	}
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
