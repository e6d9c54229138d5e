package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/config"
	"github.com/jonathan/skill-gap-navigator/internal/observability"
	"github.com/jonathan/skill-gap-navigator/internal/roadmap"
	"github.com/jonathan/skill-gap-navigator/internal/schemas"
)

// loadConfig merges the environment with the optional --config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. serve logs JSON; other commands log text to stderr.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
}

// loadGenerator returns a roadmap generator over the configured catalog, or the built-in one.
func loadGenerator(catalogPath string, aliases bool) (*roadmap.Generator, error) {
	if catalogPath == "" {
		return roadmap.NewGenerator(nil, nil, roadmap.WithAliasLookup(aliases)), nil
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", catalogPath, err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := roadmap.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", catalogPath, err)
	}
	return roadmap.NewGenerator(catalog, nil, roadmap.WithAliasLookup(aliases)), nil
}

// printer returns a verbose-mode printer on stderr, or nil when --verbose is off.
func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// splitList parses a comma-separated flag value, dropping blank entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeOutput marshals data as indented JSON, validates it against schemaName when set,
// and writes it to outPath or stdout.
func writeOutput(cmd *cobra.Command, data any, schemaName, outPath string) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	if schemaName != "" {
		if err := schemas.ValidateJSON(schemaName, out); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("generated output is invalid: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
		}
	}

	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outPath, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
	return nil
}
