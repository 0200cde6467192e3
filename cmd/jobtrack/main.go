// Package main provides the jobtrack command line tool for listing and
// counting job applications.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/friendsofgo/errors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrfta/jobtrack/config"
	"github.com/nrfta/jobtrack/filter"
	"github.com/nrfta/jobtrack/jobs"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "jobtrack",
	Short:         "Query tracked job applications",
	Long:          "jobtrack lists and counts the job applications of a user with filters, sorting and pagination.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default ./jobtrack.yaml)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired dependencies of one command run.
type app struct {
	db      *sql.DB
	service *jobs.Service
	logger  *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database url is required (set JOBTRACK_DATABASE_URL or database_url)")
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	builder := jobs.NewQueryBuilder(
		filter.WithStrict(cfg.Filters.Strict),
		filter.WithLogger(logger),
	)
	repo := jobs.NewRepository(db,
		jobs.WithQueryBuilder(builder),
		jobs.WithPageOptions(cfg.PageOptions()...),
	)

	return &app{
		db:      db,
		service: jobs.NewService(db, repo, jobs.WithLogger(logger)),
		logger:  logger,
	}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
	a.db.Close()
}
