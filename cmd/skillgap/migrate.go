package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or update job roles from a seed file",
	Long: "Reads a JSON array of {\"domain\", \"roles\"} groups and upserts every role by title. " +
		"Existing roles are updated in place.",
	RunE: runSeed,
}

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to job role seed JSON (required)")
	if err := seedCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func databaseURL() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg.DatabaseURL, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	if err := db.RunMigrations(cmd.Context(), url); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

// loadSeedFile reads and checks a job role seed file.
func loadSeedFile(path string) ([]types.JobRoleSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed []types.JobRoleSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
	}

	for gi, group := range seed {
		for ri, role := range group.Roles {
			if role.Title == "" {
				return nil, fmt.Errorf("seed group %d (%s) role %d has no title", gi, group.Domain, ri)
			}
			if len(role.RequiredSkills) == 0 {
				return nil, fmt.Errorf("seed role %q has no required_skills", role.Title)
			}
		}
	}
	return seed, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	seed, err := loadSeedFile(seedFile)
	if err != nil {
		return err
	}
	url, err := databaseURL()
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), url)
	if err != nil {
		return err
	}
	defer database.Close()

	res, err := database.SeedJobRoles(cmd.Context(), seed)
	if err != nil {
		return fmt.Errorf("failed to seed job roles: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded job roles: %d created, %d updated\n", res.Created, res.Updated)
	return nil
}
