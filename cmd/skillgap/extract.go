package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/intake"
	"github.com/jonathan/skill-gap-navigator/internal/parsing"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract known skills from a resume",
	Long: "Scans a resume for skills from the built-in dictionary. Plain text, PDF and DOCX files are read; " +
		"use --file - to read plain text from stdin.",
	RunE:  runExtract,
}

var (
	extractFile   string
	extractOutput string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to a .txt, .pdf or .docx resume, or - for stdin (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Write JSON to this file instead of stdout")

	if err := extractCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	if extractFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(extractFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", extractFile, err)
	}

	contentType := ""
	if extractFile == "-" {
		contentType = intake.MimeText
	}
	text, err := intake.Text(cmd.Context(), data, contentType, filepath.Base(extractFile))
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", extractFile, err)
	}

	found := parsing.ExtractSkills(text)
	if p := printer(cmd); p != nil {
		p.PrintExtractedSkills(found)
	}
	return writeOutput(cmd, map[string][]string{"skills": found}, "", extractOutput)
}
