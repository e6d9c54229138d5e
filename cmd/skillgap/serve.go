package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/config"
	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/pipeline"
	"github.com/jonathan/skill-gap-navigator/internal/server"
	"github.com/jonathan/skill-gap-navigator/internal/server/ratelimit"
	"github.com/jonathan/skill-gap-navigator/internal/skills"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the skill gap, roadmap, progress and resume endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before starting")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	if serveMigrate {
		if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	gen, err := loadGenerator(cfg.CatalogPath, cfg.AliasMatching)
	if err != nil {
		database.Close()
		return err
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		JWT:       server.NewJWTService(jwtConfig),
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger,
		Engine: pipeline.NewEngine(
			pipeline.WithLogger(logger),
			pipeline.WithGenerator(gen),
			pipeline.WithAnalyzer(skills.NewAnalyzer(skills.WithAliases(cfg.AliasMatching))),
			pipeline.WithProgress(func(ev pipeline.ProgressEvent) {
				logger.Debug("pipeline step", "step", ev.Step, "message", ev.Message)
			}),
		),
		OnShutdown: database.Close,
	}, database)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
