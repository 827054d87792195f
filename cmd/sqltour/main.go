// Command sqltour runs the access-layer tour: the same user table created,
// filled, queried and dropped through raw SQL, a statement builder and two
// object-mapping layers.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rowanlith/sqltour/internal/config"
	"github.com/rowanlith/sqltour/internal/tour"
	"github.com/rowanlith/sqltour/pkg/logger"
)

var (
	version = "dev"
)

// CLI flags
var (
	dbPath    string
	echo      bool
	keep      bool
	logLevel  string
	logFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sqltour [stage]",
		Short: "Walk a user table through four database access layers",
		Long: `sqltour creates, fills, queries and drops the same user table at four
levels of abstraction: raw textual SQL, squirrel-built statements over
table metadata, a schema-mapped repository, and GORM models.

With no argument all stages run in order. Pass a stage name (raw,
builder, mapper, record) to run a single stage.`,
		Args:    cobra.MaximumNArgs(1),
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH)")
	rootCmd.Flags().BoolVarP(&echo, "echo", "e", false, "log every SQL statement")
	rootCmd.Flags().BoolVar(&keep, "keep", false, "keep the database file after a full run")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	// Flags override the environment when set explicitly.
	if cmd.Flags().Changed("db") {
		cfg.DB.Path = dbPath
	}
	if cmd.Flags().Changed("echo") {
		cfg.DB.Echo = echo
	}
	if cmd.Flags().Changed("keep") {
		cfg.DB.Keep = keep
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logger.Format = logFormat
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	env := &tour.Env{
		DBPath:        cfg.DB.Path,
		Echo:          cfg.DB.Echo,
		SlowThreshold: time.Duration(cfg.Logger.SlowQuerySeconds * float64(time.Second)),
		Logger:        log,
	}

	stages := tour.Stages()
	fullRun := true
	if len(args) == 1 {
		stage, ok := tour.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown stage %q", args[0])
		}
		stages = []tour.Stage{stage}
		fullRun = false
	}

	if err := tour.Run(context.Background(), env, stages...); err != nil {
		return err
	}

	// The database file is an ephemeral artifact of the tour.
	if fullRun && !cfg.DB.Keep {
		if err := os.Remove(cfg.DB.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("could not remove database file", zap.String("path", cfg.DB.Path), zap.Error(err))
		}
	}

	log.Info("tour complete", zap.Int("stages", len(stages)))
	return nil
}
