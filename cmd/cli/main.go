package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/cmd/cli/commands"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/postgres"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/utils/logging"
)

var (
	env      string
	app      *commands.AppContext
	database *postgres.DB
)

func main() {
	// Commands capture the app context pointer at construction; initApp
	// fills it in before any RunE executes.
	app = &commands.AppContext{
		Ctx: context.Background(),
	}

	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Residency scheduler CLI - Generate and audit rotation schedules",
		Long:  `A CLI tool for generating residency rotation schedules, checking duty-hour compliance, and managing the roster.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects <env>_scheduler_config.yaml)")

	// Add all commands
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ValidateScheduleCmd(app))
	rootCmd.AddCommand(commands.EstimateComplexityCmd(app))
	rootCmd.AddCommand(commands.ListPeopleCmd(app))
	rootCmd.AddCommand(commands.ViewRunsCmd(app))
	rootCmd.AddCommand(commands.ImportPeopleCmd(app))
	rootCmd.AddCommand(commands.ImportAbsencesCmd(app))
	rootCmd.AddCommand(commands.ImportTemplatesCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, and the database connection
func initApp() error {
	// Load configuration first; the logger's file path comes from it
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded successfully")

	// Connect to PostgreSQL
	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Apply pending migrations
	app.Logger.Info("Running database migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
