package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/config"
	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for a user ID",
	Long: "Signs a JWT for the given user with JWT_SECRET. Without --user a new random user ID is used " +
		"and the user row is created on the user's first write. With --email the user is registered " +
		"(or found) in DATABASE_URL first.",
	RunE: runToken,
}

var (
	tokenUser  string
	tokenEmail string
	tokenName  string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User UUID")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Register or look up the user by email")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name stored with --email")
	tokenCmd.MarkFlagsMutuallyExclusive("user", "email")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID := uuid.New()
	switch {
	case tokenUser != "":
		parsed, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = parsed
	case tokenEmail != "":
		registered, err := registerUser(cmd, tokenEmail, tokenName)
		if err != nil {
			return err
		}
		userID = registered
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return err
	}

	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "user_id: %s\nexpires in: %dh\n", userID, jwtConfig.ExpirationHours)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func registerUser(cmd *cobra.Command, email, name string) (uuid.UUID, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return uuid.Nil, fmt.Errorf("invalid --email: %q", email)
	}
	url, err := databaseURL()
	if err != nil {
		return uuid.Nil, err
	}
	database, err := db.Connect(cmd.Context(), url)
	if err != nil {
		return uuid.Nil, err
	}
	defer database.Close()

	return database.CreateUser(cmd.Context(), email, strings.TrimSpace(name))
}
